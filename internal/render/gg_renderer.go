package render

import (
	"context"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/frames"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

var (
	defaultBackground = color.White
	defaultFill       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	defaultWireframe  = color.Black
	defaultAxis       = color.Gray{Y: 96}
)

// Context cancellation is checked every cancelCheckInterval triangles
const cancelCheckInterval = 4096

// Draws the surface with the painter's algorithm: triangles are filled back to front
// with a flat shade of the fill color and outlined with a thin wireframe.
type GGRenderer struct {
	Size             int
	AzimuthOffsetDeg float64
	AxisLabels       [3]string
	Background       color.Color
	Fill             color.Color
	Wireframe        color.Color
	LineWidth        float64
}

func NewGGRenderer(size int, azimuthOffsetDeg float64, axisLabels [3]string) *GGRenderer {
	return &GGRenderer{
		Size:             size,
		AzimuthOffsetDeg: azimuthOffsetDeg,
		AxisLabels:       axisLabels,
		Background:       defaultBackground,
		Fill:             defaultFill,
		Wireframe:        defaultWireframe,
		LineWidth:        0.5,
	}
}

// Builds the renderer from the run options
func NewGGRendererFromOptions(opts *pipeline.Options) *GGRenderer {
	return NewGGRenderer(opts.FrameSize, opts.AzimuthOffsetDeg, opts.AxisLabels)
}

type projectedTriangle struct {
	index int
	depth float64
	shade float64
}

func (r *GGRenderer) RenderFrame(ctx context.Context, scene *Scene, frame frames.FrameDescriptor) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Size <= 0 {
		return nil, errors.Wrapf(pipeline.ErrRenderExport, "invalid frame size %d", r.Size)
	}
	if scene == nil || scene.Points == nil || scene.Triangulation == nil {
		return nil, errors.Wrap(pipeline.ErrRenderExport, "incomplete scene")
	}

	cam := newCamera(frame, r.AzimuthOffsetDeg, r.Size)

	points := scene.Points
	screenX := make([]float64, points.Len())
	screenY := make([]float64, points.Len())
	depths := make([]float64, points.Len())
	normalized := make([]r3.Vector, points.Len())
	for i := 0; i < points.Len(); i++ {
		normalized[i] = cam.normalize(points.At(i))
		screenX[i], screenY[i], depths[i] = cam.project(normalized[i])
	}

	triangles := scene.Triangulation.Triangles
	order := make([]projectedTriangle, len(triangles))
	for i, tri := range triangles {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a, b, c := normalized[tri.A], normalized[tri.B], normalized[tri.C]
		order[i] = projectedTriangle{
			index: i,
			depth: (depths[tri.A] + depths[tri.B] + depths[tri.C]) / 3,
			shade: shade(a, b, c, cam.eye),
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].depth < order[j].depth
	})

	dc := gg.NewContext(r.Size, r.Size)
	dc.SetColor(r.Background)
	dc.Clear()

	r.drawAxes(dc, cam, false)

	dc.SetLineWidth(r.LineWidth)
	for n, item := range order {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		tri := triangles[item.index]
		dc.MoveTo(screenX[tri.A], screenY[tri.A])
		dc.LineTo(screenX[tri.B], screenY[tri.B])
		dc.LineTo(screenX[tri.C], screenY[tri.C])
		dc.ClosePath()
		dc.SetColor(scaleColor(r.Fill, item.shade))
		dc.FillPreserve()
		dc.SetColor(r.Wireframe)
		dc.Stroke()
	}

	r.drawAxes(dc, cam, true)

	return dc.Image(), nil
}

// Lambert factor of the triangle facing the viewer, kept within [0.35, 1]
func shade(a, b, c, eye r3.Vector) float64 {
	normal := b.Sub(a).Cross(c.Sub(a))
	if normal.Norm() == 0 {
		return 1
	}
	lambert := math.Abs(normal.Normalize().Dot(eye))
	return 0.35 + 0.65*lambert
}

func scaleColor(c color.Color, factor float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * factor),
		G: uint16(float64(g) * factor),
		B: uint16(float64(b) * factor),
		A: uint16(a),
	}
}

// Draws the three box edges meeting at the minimum corner. The edges are drawn once
// behind the surface and their labels once on top of it.
func (r *GGRenderer) drawAxes(dc *gg.Context, cam *camera, labels bool) {
	half := cam.axes.Mul(0.5)
	origin := half.Mul(-1)
	ends := [3]r3.Vector{
		{X: half.X, Y: origin.Y, Z: origin.Z},
		{X: origin.X, Y: half.Y, Z: origin.Z},
		{X: origin.X, Y: origin.Y, Z: half.Z},
	}

	ox, oy, _ := cam.project(origin)
	for i, end := range ends {
		ex, ey, _ := cam.project(end)
		if !labels {
			dc.SetColor(defaultAxis)
			dc.SetLineWidth(1)
			dc.DrawLine(ox, oy, ex, ey)
			dc.Stroke()
			continue
		}
		if r.AxisLabels[i] == "" {
			continue
		}
		dc.SetColor(defaultAxis)
		dc.DrawStringAnchored(r.AxisLabels[i], (ox+ex)/2, (oy+ey)/2, 0.5, 0.5)
	}
}
