package io

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/frames"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/internal/render"
)

// Paints every frame with a gray level equal to its index
type indexRenderer struct {
	calls  int32
	failAt int
}

func (r *indexRenderer) RenderFrame(ctx context.Context, scene *render.Scene, frame frames.FrameDescriptor) (image.Image, error) {
	atomic.AddInt32(&r.calls, 1)
	if frame.Index == r.failAt {
		return nil, errors.Wrapf(pipeline.ErrRenderExport, "frame %d", frame.Index)
	}
	return solidImage(color.Gray{Y: uint8(frame.Index)}), nil
}

func testSequence(t *testing.T, n int) frames.Sequence {
	t.Helper()
	config := frames.Config{CameraElevationDeg: 45, VerticalExaggeration: 5, AspectMode: pipeline.AspectComputed}
	sequence, err := frames.NewSequencer(config).Sequence(data.BoundingBox{MaxX: 1, MaxY: 1}, n)
	test.That(t, err, test.ShouldBeNil)
	return sequence
}

func TestProducerEmitsEveryFrameInOrder(t *testing.T) {
	sequence := testSequence(t, 5)
	work := make(chan *WorkUnit, len(sequence))

	err := NewStandardProducer(&render.Scene{}, sequence).Produce(context.Background(), work)
	test.That(t, err, test.ShouldBeNil)

	indices := []int{}
	for unit := range work {
		indices = append(indices, unit.Frame.Index)
	}
	test.That(t, indices, test.ShouldResemble, []int{0, 1, 2, 3, 4})
}

func TestProducerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	work := make(chan *WorkUnit)
	err := NewStandardProducer(&render.Scene{}, testSequence(t, 5)).Produce(ctx, work)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)

	_, open := <-work
	test.That(t, open, test.ShouldBeFalse)
}

func TestConsumerRendersIntoSink(t *testing.T) {
	sequence := testSequence(t, 4)
	work := make(chan *WorkUnit, len(sequence))
	test.That(t, NewStandardProducer(&render.Scene{}, sequence).Produce(context.Background(), work), test.ShouldBeNil)

	renderer := &indexRenderer{failAt: -1}
	exporter := NewGifExporter(len(sequence), 10)
	err := NewStandardConsumer(renderer, exporter).Consume(context.Background(), work)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, atomic.LoadInt32(&renderer.calls), test.ShouldEqual, int32(4))

	for _, frame := range exporter.frames {
		test.That(t, frame, test.ShouldNotBeNil)
		test.That(t, frame.Bounds(), test.ShouldResemble, image.Rect(0, 0, 8, 8))
	}
}

func TestConsumerStopsOnRenderError(t *testing.T) {
	sequence := testSequence(t, 4)
	work := make(chan *WorkUnit, len(sequence))
	test.That(t, NewStandardProducer(&render.Scene{}, sequence).Produce(context.Background(), work), test.ShouldBeNil)

	renderer := &indexRenderer{failAt: 1}
	err := NewStandardConsumer(renderer, NewGifExporter(len(sequence), 10)).Consume(context.Background(), work)
	test.That(t, errors.Is(err, pipeline.ErrRenderExport), test.ShouldBeTrue)
	test.That(t, atomic.LoadInt32(&renderer.calls), test.ShouldEqual, int32(2))
}
