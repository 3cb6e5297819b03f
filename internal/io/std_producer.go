package io

import (
	"context"

	"github.com/ecopia-map/dem_animator/internal/frames"
	"github.com/ecopia-map/dem_animator/internal/render"
)

type StandardProducer struct {
	scene    *render.Scene
	sequence frames.Sequence
}

func NewStandardProducer(scene *render.Scene, sequence frames.Sequence) *StandardProducer {
	return &StandardProducer{
		scene:    scene,
		sequence: sequence,
	}
}

// Submits a WorkUnit per frame to the work channel, in frame order. Closes the channel
// when all work is submitted or the context is cancelled.
func (p *StandardProducer) Produce(ctx context.Context, work chan<- *WorkUnit) error {
	defer close(work)
	for _, frame := range p.sequence {
		select {
		case work <- &WorkUnit{Scene: p.scene, Frame: frame}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
