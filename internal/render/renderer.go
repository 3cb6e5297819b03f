package render

import (
	"context"
	"image"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/delaunay"
	"github.com/ecopia-map/dem_animator/internal/frames"
)

// Read-only geometry shared by every frame of an animation
type Scene struct {
	Points        *data.PointSet
	Triangulation *delaunay.Triangulation
}

func NewScene(points *data.PointSet, triangulation *delaunay.Triangulation) *Scene {
	return &Scene{
		Points:        points,
		Triangulation: triangulation,
	}
}

// Rasterizes the scene as seen by the camera of a single frame. Implementations must
// be safe for concurrent use and must not modify the scene. Failures wrap
// pipeline.ErrRenderExport.
type Renderer interface {
	RenderFrame(ctx context.Context, scene *Scene, frame frames.FrameDescriptor) (image.Image, error)
}
