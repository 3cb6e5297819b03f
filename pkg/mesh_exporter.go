package pkg

import (
	stdio "io"
	"strconv"

	"github.com/ecopia-map/dem_animator/internal/io"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager"
	"github.com/ecopia-map/dem_animator/tools"
)

type IMeshExporter interface {
	RunMeshExporter(opts *pipeline.Options) error
}

// Writes the triangulated surface of every input file as a PLY mesh, or the
// normalized points in xyz format
type MeshExporter struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewMeshExporter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IMeshExporter {
	return &MeshExporter{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

func (exporter *MeshExporter) RunMeshExporter(opts *pipeline.Options) error {
	xyzFiles, err := exporter.fileFinder.GetXyzFilesToProcess(opts)
	if err != nil {
		return err
	}

	for i, filePath := range xyzFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(xyzFiles)))
		if opts.MeshFormat == pipeline.MeshFormatXyz {
			err = exporter.exportPoints(filePath, opts)
		} else {
			err = exporter.exportMesh(filePath, opts)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (exporter *MeshExporter) exportMesh(filePath string, opts *pipeline.Options) error {
	scene, err := prepareScene(filePath, opts, exporter.algorithmManager)
	if err != nil {
		return err
	}

	outputPath := outputPathFor(filePath, opts, ".ply")
	tools.LogOutput("> exporting mesh to", outputPath)
	return tools.ReplaceFileAtomically(outputPath, func(tmpPath string) error {
		return io.WritePlyMeshFile(tmpPath, scene.Points, scene.Triangulation)
	})
}

func (exporter *MeshExporter) exportPoints(filePath string, opts *pipeline.Options) error {
	set, err := loadPointSet(filePath, opts, exporter.algorithmManager)
	if err != nil {
		return err
	}

	outputPath := outputPathFor(filePath, opts, ".xyz")
	tools.LogOutput("> exporting points to", outputPath)
	return tools.WriteFileAtomically(outputPath, func(w stdio.Writer) error {
		return io.WritePointSet(w, set)
	})
}
