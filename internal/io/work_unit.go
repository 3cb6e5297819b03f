package io

import (
	"github.com/ecopia-map/dem_animator/internal/frames"
	"github.com/ecopia-map/dem_animator/internal/render"
)

// Contains the minimal data needed to render a single frame of the animation
type WorkUnit struct {
	Scene *render.Scene
	Frame frames.FrameDescriptor
}
