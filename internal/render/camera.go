package render

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/frames"
)

// Orthographic camera orbiting the center of the bounding box. Points are first mapped
// into a box centered on the origin whose edge lengths follow the frame aspect, the
// longest edge being 1.
type camera struct {
	box    data.BoundingBox
	axes   r3.Vector // normalized edge lengths
	eye    r3.Vector // unit vector from the origin towards the viewer
	right  r3.Vector
	up     r3.Vector
	scale  float64
	center float64
}

func newCamera(frame frames.FrameDescriptor, azimuthOffsetDeg float64, size int) *camera {
	axes := r3.Vector{X: frame.Aspect[0], Y: frame.Aspect[1], Z: frame.Aspect[2]}
	if longest := math.Max(axes.X, math.Max(axes.Y, axes.Z)); longest > 0 {
		axes = axes.Mul(1 / longest)
	}

	azimuth := (frame.AngleDeg + azimuthOffsetDeg) * math.Pi / 180
	elevation := frame.ElevationDeg * math.Pi / 180
	sinAz, cosAz := math.Sincos(azimuth)
	sinEl, cosEl := math.Sincos(elevation)

	radius := axes.Mul(0.5).Norm()
	if radius == 0 {
		radius = 1
	}

	return &camera{
		box:    frame.BoundingBox,
		axes:   axes,
		eye:    r3.Vector{X: cosEl * cosAz, Y: cosEl * sinAz, Z: sinEl},
		right:  r3.Vector{X: -sinAz, Y: cosAz},
		up:     r3.Vector{X: -sinEl * cosAz, Y: -sinEl * sinAz, Z: cosEl},
		scale:  0.8 * float64(size) / (2 * radius),
		center: float64(size) / 2,
	}
}

// Maps a data point into the normalized box
func (c *camera) normalize(p data.Point3D) r3.Vector {
	return r3.Vector{
		X: normalizeAxis(p.X, c.box.MinX, c.box.SpanX(), c.axes.X),
		Y: normalizeAxis(p.Y, c.box.MinY, c.box.SpanY(), c.axes.Y),
		Z: normalizeAxis(p.Z, c.box.MinZ, c.box.SpanZ(), c.axes.Z),
	}
}

func normalizeAxis(value, min, span, length float64) float64 {
	if span == 0 {
		return 0
	}
	return ((value-min)/span - 0.5) * length
}

// Screen position and depth of a normalized point. Larger depth is closer to the viewer.
func (c *camera) project(v r3.Vector) (x, y, depth float64) {
	x = c.center + c.scale*v.Dot(c.right)
	y = c.center - c.scale*v.Dot(c.up)
	return x, y, v.Dot(c.eye)
}

func (c *camera) projectPoint(p data.Point3D) (x, y, depth float64) {
	return c.project(c.normalize(p))
}
