package converters

import (
	"github.com/ecopia-map/dem_animator/internal/data"
)

// Converts the horizontal coordinates of input points into the planar metric frame
// the triangulation and the renderer work in
type CoordinateConverter interface {
	ConvertCoordinate(point data.Point3D) (data.Point3D, error)
	Cleanup()
}

// Corrects the elevation of a point given its horizontal position
type ElevationCorrector interface {
	CorrectElevation(x, y, z float64) float64
}

// Runs every point of the set through the converter and the corrector, returning a new set
func NormalizePointSet(set *data.PointSet, converter CoordinateConverter, corrector ElevationCorrector) (*data.PointSet, error) {
	return set.Map(func(p data.Point3D) (data.Point3D, error) {
		q, err := converter.ConvertCoordinate(p)
		if err != nil {
			return data.Point3D{}, err
		}
		q.Z = corrector.CorrectElevation(q.X, q.Y, q.Z)
		return q, nil
	})
}
