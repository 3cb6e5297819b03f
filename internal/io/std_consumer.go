package io

import (
	"context"

	"github.com/golang/glog"

	"github.com/ecopia-map/dem_animator/internal/render"
)

type StandardConsumer struct {
	renderer render.Renderer
	sink     FrameSink
}

func NewStandardConsumer(renderer render.Renderer, sink FrameSink) *StandardConsumer {
	return &StandardConsumer{
		renderer: renderer,
		sink:     sink,
	}
}

// Continually consumes WorkUnits from the work channel, rendering each frame into the sink.
// Returns when the channel is closed, on the first error, or when the context is cancelled.
func (c *StandardConsumer) Consume(ctx context.Context, work <-chan *WorkUnit) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case workUnit, ok := <-work:
			if !ok {
				// channel was closed by producer
				return nil
			}
			if err := c.doWork(ctx, workUnit); err != nil {
				return err
			}
		}
	}
}

// Renders a single frame and stores it at its index
func (c *StandardConsumer) doWork(ctx context.Context, workUnit *WorkUnit) error {
	glog.Infof("Current angle: %v", workUnit.Frame.AngleDeg)
	img, err := c.renderer.RenderFrame(ctx, workUnit.Scene, workUnit.Frame)
	if err != nil {
		return err
	}
	return c.sink.Put(workUnit.Frame.Index, img)
}
