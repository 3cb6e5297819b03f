package converters_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ecopia-map/dem_animator/internal/converters"
	"github.com/ecopia-map/dem_animator/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

func TestGeographicConverter(t *testing.T) {
	converter := converters.NewGeographicConverter(10, 50)
	defer converter.Cleanup()

	origin, err := converter.ConvertCoordinate(data.NewPoint3D(10, 50, 120))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, origin.X, test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, origin.Y, test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, origin.Z, test.ShouldEqual, 120.0)

	north, err := converter.ConvertCoordinate(data.NewPoint3D(10, 51, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, north.Y, test.ShouldAlmostEqual, 6371008.8*math.Pi/180, 1e-3)

	east, err := converter.ConvertCoordinate(data.NewPoint3D(11, 50, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, east.X, test.ShouldAlmostEqual, 6371008.8*math.Pi/180*math.Cos(50*math.Pi/180), 1e-3)

	_, err = converter.ConvertCoordinate(data.NewPoint3D(10, 95, 0))
	test.That(t, errors.Is(err, pipeline.ErrMalformedInput), test.ShouldBeTrue)
}

func TestGeographicConverterAcrossAntimeridian(t *testing.T) {
	converter := converters.NewGeographicConverter(180, 0)
	west, err := converter.ConvertCoordinate(data.NewPoint3D(-179.5, 0, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, west.X, test.ShouldAlmostEqual, 6371008.8*0.5*math.Pi/180, 1e-3)

	set := data.NewPointSet([]data.Point3D{
		data.NewPoint3D(179.995, 0, 10),
		data.NewPoint3D(-179.995, 0, 20),
		data.NewPoint3D(179.995, 0.01, 30),
	}, 3, 1)
	normalized, err := converters.NormalizePointSet(
		set,
		converters.NewGeographicConverterForSet(set),
		offset_elevation_corrector.NewOffsetElevationCorrector(0),
	)
	test.That(t, err, test.ShouldBeNil)

	box := normalized.BoundingBox()
	test.That(t, box.SpanX(), test.ShouldAlmostEqual, 6371008.8*0.01*math.Pi/180, 1e-3)
	test.That(t, box.SpanY(), test.ShouldAlmostEqual, 6371008.8*0.01*math.Pi/180, 1e-3)
	test.That(t, box.MinX, test.ShouldAlmostEqual, -box.MaxX, 1e-6)
}

func TestNormalizePointSet(t *testing.T) {
	set := data.NewPointSet([]data.Point3D{
		data.NewPoint3D(7.0, 46.0, 500),
		data.NewPoint3D(7.01, 46.01, 520),
	}, 1, 2)

	normalized, err := converters.NormalizePointSet(
		set,
		converters.NewGeographicConverterForSet(set),
		offset_elevation_corrector.NewOffsetElevationCorrector(-500),
	)
	test.That(t, err, test.ShouldBeNil)

	box := normalized.BoundingBox()
	test.That(t, box.MinZ, test.ShouldEqual, 0.0)
	test.That(t, box.MaxZ, test.ShouldEqual, 20.0)
	test.That(t, box.MinX, test.ShouldAlmostEqual, -box.MaxX, 1e-6)
	test.That(t, box.SpanY(), test.ShouldAlmostEqual, 6371008.8*0.01*math.Pi/180, 1e-3)
}

func TestIdentityConverter(t *testing.T) {
	p := data.NewPoint3D(1, 2, 3)
	converted, err := converters.NewIdentityConverter().ConvertCoordinate(p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, converted, test.ShouldResemble, p)
}
