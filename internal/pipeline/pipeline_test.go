package pipeline

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestExitCode(t *testing.T) {
	test.That(t, ExitCode(nil), test.ShouldEqual, ExitOK)
	test.That(t, ExitCode(errors.Wrap(ErrUsage, "bad flag")), test.ShouldEqual, ExitUsage)
	test.That(t, ExitCode(errors.Wrapf(ErrMalformedInput, "record %d", 3)), test.ShouldEqual, ExitMalformedInput)
	test.That(t, ExitCode(errors.Wrap(errors.Wrap(ErrInsufficientGeometry, "inner"), "outer")), test.ShouldEqual, ExitInsufficientGeometry)
	test.That(t, ExitCode(ErrDegenerateBounds), test.ShouldEqual, ExitDegenerateBounds)
	test.That(t, ExitCode(errors.Wrap(ErrRenderExport, "encoding gif")), test.ShouldEqual, ExitRenderExport)
	test.That(t, ExitCode(errors.New("disk full")), test.ShouldEqual, ExitFailure)
}

func validRenderOptions() *Options {
	opts := NewOptions(CommandRender)
	opts.Input = "terrain.xyz"
	opts.FrameCount = 36
	return opts
}

func TestValidate(t *testing.T) {
	test.That(t, validRenderOptions().Validate(), test.ShouldBeNil)

	invalid := map[string]func(opts *Options){
		"missing input":         func(opts *Options) { opts.Input = " " },
		"zero frames":           func(opts *Options) { opts.FrameCount = 0 },
		"unknown aspect":        func(opts *Options) { opts.AspectMode = ParseAspectMode("skewed") },
		"negative exaggeration": func(opts *Options) { opts.VerticalExaggeration = -1 },
		"nan exaggeration":      func(opts *Options) { opts.VerticalExaggeration = math.NaN() },
		"elevation too high":    func(opts *Options) { opts.CameraElevationDeg = 91 },
		"tiny frames":           func(opts *Options) { opts.FrameSize = 8 },
		"negative delay":        func(opts *Options) { opts.FrameDelay = -1 },
		"no workers":            func(opts *Options) { opts.Workers = 0 },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			opts := validRenderOptions()
			mutate(opts)
			err := opts.Validate()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrUsage), test.ShouldBeTrue)
		})
	}
}

func TestFrameCountOnlyRequiredForRender(t *testing.T) {
	opts := NewOptions(CommandMesh)
	opts.Input = "terrain.xyz"
	test.That(t, opts.Validate(), test.ShouldBeNil)
	test.That(t, opts.Output, test.ShouldEqual, DefaultMeshOutput)
	test.That(t, opts.MeshFormat, test.ShouldEqual, MeshFormatPly)

	opts.MeshFormat = ParseMeshFormat("obj")
	test.That(t, errors.Is(opts.Validate(), ErrUsage), test.ShouldBeTrue)
}

func TestParseMeshFormat(t *testing.T) {
	test.That(t, ParseMeshFormat(" ply"), test.ShouldEqual, MeshFormatPly)
	test.That(t, ParseMeshFormat("XYZ"), test.ShouldEqual, MeshFormatXyz)
	test.That(t, ParseMeshFormat("stl"), test.ShouldEqual, MeshFormat(""))
}

func TestParseAspectMode(t *testing.T) {
	test.That(t, ParseAspectMode(" computed "), test.ShouldEqual, AspectComputed)
	test.That(t, ParseAspectMode("Equal"), test.ShouldEqual, AspectEqual)
	test.That(t, ParseAspectMode("cube"), test.ShouldEqual, AspectMode(""))
	test.That(t, AspectEqual.String(), test.ShouldEqual, "EQUAL")
}

func TestParseAxisLabels(t *testing.T) {
	test.That(t, ParseAxisLabels(""), test.ShouldResemble, DefaultAxisLabels)
	test.That(t, ParseAxisLabels("East, North"), test.ShouldResemble, [3]string{"East", "North", "Höhe ü. M."})
	test.That(t, ParseAxisLabels("x,y,z,w"), test.ShouldResemble, [3]string{"x", "y", "z"})
}

func TestOptionsCopy(t *testing.T) {
	opts := validRenderOptions()
	copied := opts.Copy()
	copied.FrameCount = 1
	test.That(t, opts.FrameCount, test.ShouldEqual, 36)
}
