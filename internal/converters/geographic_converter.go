package converters

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

// Mean earth radius in meters
const earthRadius = 6371008.8

// Projects longitude/latitude degrees onto a local equirectangular plane in meters
// centered on a reference position. Distortion is negligible at the extent of a
// single elevation grid.
type GeographicConverter struct {
	origin s2.LatLng
}

func NewGeographicConverter(originLon, originLat float64) CoordinateConverter {
	return &GeographicConverter{
		origin: s2.LatLngFromDegrees(originLat, originLon),
	}
}

// Builds a converter centered on the middle of the horizontal extent of the set.
// The longitude extent is the smallest one containing every point, so a grid
// crossing the antimeridian is centered on it.
func NewGeographicConverterForSet(set *data.PointSet) CoordinateConverter {
	rect := s2.EmptyRect()
	for _, p := range set.Points() {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Y, p.X))
	}
	if rect.IsEmpty() {
		box := set.BoundingBox()
		return NewGeographicConverter((box.MinX+box.MaxX)/2, (box.MinY+box.MaxY)/2)
	}
	center := rect.Center()
	return NewGeographicConverter(center.Lng.Degrees(), center.Lat.Degrees())
}

func (c *GeographicConverter) ConvertCoordinate(point data.Point3D) (data.Point3D, error) {
	ll := s2.LatLngFromDegrees(point.Y, point.X)
	if !ll.IsValid() {
		return data.Point3D{}, errors.Wrapf(pipeline.ErrMalformedInput, "invalid geographic coordinate lon=%v lat=%v", point.X, point.Y)
	}
	dLon := math.Remainder((ll.Lng - c.origin.Lng).Radians(), 2*math.Pi)
	dLat := (ll.Lat - c.origin.Lat).Radians()
	return data.Point3D{
		X: earthRadius * dLon * math.Cos(c.origin.Lat.Radians()),
		Y: earthRadius * dLat,
		Z: point.Z,
	}, nil
}

func (c *GeographicConverter) Cleanup() {}
