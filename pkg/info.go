package pkg

import (
	"fmt"
	stdio "io"

	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager"
	"github.com/ecopia-map/dem_animator/tools"
)

// Prints a summary of every input file: point count, grid dimensions, bounding box
// and number of triangles of the reconstructed surface
type InfoPrinter struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewInfoPrinter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) *InfoPrinter {
	return &InfoPrinter{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

func (printer *InfoPrinter) RunInfo(opts *pipeline.Options, w stdio.Writer) error {
	xyzFiles, err := printer.fileFinder.GetXyzFilesToProcess(opts)
	if err != nil {
		return err
	}

	for _, filePath := range xyzFiles {
		scene, err := prepareScene(filePath, opts, printer.algorithmManager)
		if err != nil {
			return err
		}
		rows, cols := scene.Points.Dimensions()
		_, err = fmt.Fprintf(w,
			"file: %s\npoints: %d\ndimensions: %d %d\nbounding box: %s\ntriangles: %d\nmerged points: %d\n",
			filePath,
			scene.Points.Len(),
			rows, cols,
			scene.Points.BoundingBox().String(),
			scene.Triangulation.Len(),
			scene.Triangulation.NumMerged,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
