package frames

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

var unitBox = data.BoundingBox{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1, MinZ: 0, MaxZ: 3}

func defaultConfig() Config {
	return ConfigFromOptions(pipeline.NewOptions(pipeline.CommandRender))
}

func TestSequenceEightFrames(t *testing.T) {
	sequence, err := NewSequencer(defaultConfig()).Sequence(unitBox, 8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sequence.Angles(), test.ShouldResemble, []float64{0, 45, 90, 135, 180, 225, 270, 315})
	for i, frame := range sequence {
		test.That(t, frame.Index, test.ShouldEqual, i)
		test.That(t, frame.ElevationDeg, test.ShouldEqual, pipeline.DefaultCameraElevationDeg)
		test.That(t, frame.BoundingBox, test.ShouldResemble, unitBox)
	}
}

func TestSequenceUniformSpacing(t *testing.T) {
	sequencer := NewSequencer(defaultConfig())
	for _, n := range []int{1, 3, 7, 36, 100} {
		sequence, err := sequencer.Sequence(unitBox, n)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sequence, test.ShouldHaveLength, n)
		test.That(t, sequence[0].AngleDeg, test.ShouldEqual, 0.0)
		for k := 1; k < n; k++ {
			test.That(t, sequence[k].AngleDeg-sequence[k-1].AngleDeg, test.ShouldAlmostEqual, 360.0/float64(n), 1e-9)
		}
		test.That(t, sequence[n-1].AngleDeg, test.ShouldBeLessThan, 360.0)
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	sequencer := NewSequencer(defaultConfig())
	first, err := sequencer.Sequence(unitBox, 13)
	test.That(t, err, test.ShouldBeNil)
	second, err := sequencer.Sequence(unitBox, 13)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second, test.ShouldResemble, first)
}

func TestSequenceRoundTripFixture(t *testing.T) {
	sequence, err := NewSequencer(defaultConfig()).Sequence(unitBox, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sequence.Angles(), test.ShouldResemble, []float64{0, 90, 180, 270})
}

func TestSequenceAspect(t *testing.T) {
	t.Run("computed", func(t *testing.T) {
		sequence, err := NewSequencer(defaultConfig()).Sequence(unitBox, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sequence[0].Aspect, test.ShouldResemble, [3]float64{1, 1, 15})
		test.That(t, sequence[1].Aspect, test.ShouldResemble, sequence[0].Aspect)
	})

	t.Run("equal", func(t *testing.T) {
		config := defaultConfig()
		config.AspectMode = pipeline.AspectEqual
		sequence, err := NewSequencer(config).Sequence(unitBox, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sequence[0].Aspect, test.ShouldResemble, [3]float64{1, 1, 1})
	})

	t.Run("flat terrain", func(t *testing.T) {
		flat := unitBox
		flat.MaxZ = 0
		sequence, err := NewSequencer(defaultConfig()).Sequence(flat, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sequence[0].Aspect[2], test.ShouldEqual, 0.0)
	})
}

func TestSequenceErrors(t *testing.T) {
	sequencer := NewSequencer(defaultConfig())

	_, err := sequencer.Sequence(unitBox, 0)
	test.That(t, errors.Is(err, pipeline.ErrUsage), test.ShouldBeTrue)

	point := data.BoundingBox{MinX: 2, MaxX: 2, MinY: 5, MaxY: 5, MinZ: 0, MaxZ: 10}
	_, err = sequencer.Sequence(point, 4)
	test.That(t, errors.Is(err, pipeline.ErrDegenerateBounds), test.ShouldBeTrue)

	// a single horizontal axis with zero span is still a valid extent
	line := data.BoundingBox{MinX: 0, MaxX: 4, MinY: 5, MaxY: 5}
	_, err = sequencer.Sequence(line, 4)
	test.That(t, err, test.ShouldBeNil)

	config := defaultConfig()
	config.AspectMode = "SKEWED"
	_, err = NewSequencer(config).Sequence(unitBox, 4)
	test.That(t, errors.Is(err, pipeline.ErrUsage), test.ShouldBeTrue)
}
