package converters

import "github.com/ecopia-map/dem_animator/internal/data"

// Leaves coordinates untouched, used when the input is already planar
type IdentityConverter struct{}

func NewIdentityConverter() CoordinateConverter {
	return &IdentityConverter{}
}

func (c *IdentityConverter) ConvertCoordinate(point data.Point3D) (data.Point3D, error) {
	return point, nil
}

func (c *IdentityConverter) Cleanup() {}
