package algorithm_manager

import (
	"github.com/ecopia-map/dem_animator/internal/converters"
	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/delaunay"
	"github.com/ecopia-map/dem_animator/internal/render"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetCoordinateConverterAlgorithm(set *data.PointSet) converters.CoordinateConverter
	GetTriangulationAlgorithm() delaunay.Triangulator
	GetRenderAlgorithm() render.Renderer
}
