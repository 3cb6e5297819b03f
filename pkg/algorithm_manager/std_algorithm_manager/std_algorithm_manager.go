package std_algorithm_manager

import (
	"github.com/ecopia-map/dem_animator/internal/converters"
	"github.com/ecopia-map/dem_animator/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/delaunay"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/internal/render"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options            *pipeline.Options
	elevationCorrector converters.ElevationCorrector
	triangulator       delaunay.Triangulator
	renderer           render.Renderer
}

func NewAlgorithmManager(opts *pipeline.Options) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:            opts,
		elevationCorrector: offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
		triangulator:       delaunay.NewSweepTriangulator(),
		renderer:           render.NewGGRendererFromOptions(opts),
	}
}

func (m *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return m.elevationCorrector
}

// The geographic converter is centered on the set, so a new one is built per input file
func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm(set *data.PointSet) converters.CoordinateConverter {
	if m.options.Geographic {
		return converters.NewGeographicConverterForSet(set)
	}
	return converters.NewIdentityConverter()
}

func (m *StandardAlgorithmManager) GetTriangulationAlgorithm() delaunay.Triangulator {
	return m.triangulator
}

func (m *StandardAlgorithmManager) GetRenderAlgorithm() render.Renderer {
	return m.renderer
}
