package frames

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

// Camera state of a single output frame
type FrameDescriptor struct {
	Index        int
	AngleDeg     float64 // rotation about the vertical axis, in [0, 360)
	ElevationDeg float64 // constant camera tilt
	BoundingBox  data.BoundingBox
	Aspect       [3]float64 // relative x, y, z axis lengths
}

// Ordered frames of one full turn
type Sequence []FrameDescriptor

// Angles of the sequence in frame order
func (s Sequence) Angles() []float64 {
	angles := make([]float64, len(s))
	for i, f := range s {
		angles[i] = f.AngleDeg
	}
	return angles
}

type Config struct {
	CameraElevationDeg   float64
	VerticalExaggeration float64
	AspectMode           pipeline.AspectMode
}

// Builds the sequencer config from the run options
func ConfigFromOptions(opts *pipeline.Options) Config {
	return Config{
		CameraElevationDeg:   opts.CameraElevationDeg,
		VerticalExaggeration: opts.VerticalExaggeration,
		AspectMode:           opts.AspectMode,
	}
}

// Maps a bounding box and a frame count to the camera states of a loopable turn.
// Sequence is a pure function of the config and its arguments.
type Sequencer struct {
	config Config
}

func NewSequencer(config Config) *Sequencer {
	return &Sequencer{config: config}
}

func (s *Sequencer) Sequence(box data.BoundingBox, frameCount int) (Sequence, error) {
	if frameCount < 1 {
		return nil, errors.Wrapf(pipeline.ErrUsage, "frame count must be >= 1, got %d", frameCount)
	}
	if box.SpanX() == 0 && box.SpanY() == 0 {
		return nil, errors.Wrapf(pipeline.ErrDegenerateBounds, "zero horizontal extent at (%v, %v)", box.MinX, box.MinY)
	}

	aspect, err := s.aspect(box)
	if err != nil {
		return nil, err
	}

	step := 360.0 / float64(frameCount)
	sequence := make(Sequence, frameCount)
	for k := range sequence {
		sequence[k] = FrameDescriptor{
			Index:        k,
			AngleDeg:     float64(k) * step,
			ElevationDeg: s.config.CameraElevationDeg,
			BoundingBox:  box,
			Aspect:       aspect,
		}
	}
	return sequence, nil
}

func (s *Sequencer) aspect(box data.BoundingBox) ([3]float64, error) {
	switch s.config.AspectMode {
	case pipeline.AspectEqual:
		return [3]float64{1, 1, 1}, nil
	case pipeline.AspectComputed, "":
		z := box.SpanZ() * s.config.VerticalExaggeration
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return [3]float64{}, errors.Wrapf(pipeline.ErrUsage, "invalid vertical exaggeration %v", s.config.VerticalExaggeration)
		}
		return [3]float64{box.SpanX(), box.SpanY(), z}, nil
	}
	return [3]float64{}, errors.Wrapf(pipeline.ErrUsage, "unknown aspect mode %q", s.config.AspectMode)
}
