package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/ecopia-map/dem_animator/internal/io"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/dem_animator/tools"
)

func TestRunMeshExporter(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "square.xyz")
	writeInput(t, input, unitSquare)

	opts := pipeline.NewOptions(pipeline.CommandMesh)
	opts.Input = input
	opts.Output = filepath.Join(dir, "square.ply")

	err := NewMeshExporter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunMeshExporter(opts)
	test.That(t, err, test.ShouldBeNil)

	content, err := os.ReadFile(opts.Output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(content), test.ShouldStartWith, "ply\nformat ascii 1.0\n")
	test.That(t, string(content), test.ShouldContainSubstring, "element vertex 4\n")
	test.That(t, string(content), test.ShouldContainSubstring, "element face 2\n")
}

func TestRunMeshExporterPoints(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ridge.xyz")
	writeInput(t, input, "1 3\n0 0 1500\n1 1 1510\n2 2 1520\n")

	opts := pipeline.NewOptions(pipeline.CommandMesh)
	opts.Input = input
	opts.Output = filepath.Join(dir, "ridge_local.xyz")
	opts.MeshFormat = pipeline.MeshFormatXyz
	opts.ZOffset = -1500

	err := NewMeshExporter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunMeshExporter(opts)
	test.That(t, err, test.ShouldBeNil)

	content, err := os.ReadFile(opts.Output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(content), test.ShouldEqual, "1 3\n0 0 0\n1 1 10\n2 2 20\n")

	set, err := io.LoadPointSet(strings.NewReader(string(content)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, set.BoundingBox().MaxZ, test.ShouldEqual, 20.0)
}

func TestRunMeshExporterFolder(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, filepath.Join(dir, "in", "north.xyz"), unitSquare)

	opts := pipeline.NewOptions(pipeline.CommandMesh)
	opts.Input = filepath.Join(dir, "in")
	opts.Output = filepath.Join(dir, "meshes")
	opts.FolderProcessing = true

	err := NewMeshExporter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunMeshExporter(opts)
	test.That(t, err, test.ShouldBeNil)

	info, err := os.Stat(filepath.Join(dir, "meshes", "north.ply"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Mode().Perm(), test.ShouldEqual, tools.OutputFileMode)
}

func TestRunInfo(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "square.xyz")
	writeInput(t, input, unitSquare+"0 0 9\n")

	opts := pipeline.NewOptions(pipeline.CommandInfo)
	opts.Input = input

	var out bytes.Buffer
	err := NewInfoPrinter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunInfo(opts, &out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "points: 4\n")
	test.That(t, out.String(), test.ShouldContainSubstring, "dimensions: 2 2\n")
	test.That(t, out.String(), test.ShouldContainSubstring, "bounding box: 0 1/0 1/0 3\n")
	test.That(t, out.String(), test.ShouldContainSubstring, "triangles: 2\n")
	test.That(t, out.String(), test.ShouldContainSubstring, "merged points: 0\n")
}
