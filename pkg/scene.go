package pkg

import (
	"path/filepath"

	"github.com/golang/glog"

	"github.com/ecopia-map/dem_animator/internal/converters"
	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/io"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
	"github.com/ecopia-map/dem_animator/internal/render"
	"github.com/ecopia-map/dem_animator/pkg/algorithm_manager"
	"github.com/ecopia-map/dem_animator/tools"
)

// Loads, normalizes and triangulates a single xyz file
func prepareScene(filePath string, opts *pipeline.Options, algorithmManager algorithm_manager.AlgorithmManager) (*render.Scene, error) {
	set, err := loadPointSet(filePath, opts, algorithmManager)
	if err != nil {
		return nil, err
	}

	tools.LogOutput("> triangulating...")
	triangulation, err := algorithmManager.GetTriangulationAlgorithm().Triangulate(set.Projected())
	if err != nil {
		return nil, err
	}
	if triangulation.NumMerged > 0 {
		glog.Warningf("%s: %d coincident points merged", filepath.Base(filePath), triangulation.NumMerged)
	}
	tools.LogOutput("> triangles:", triangulation.Len())

	return render.NewScene(set, triangulation), nil
}

// Loads a single xyz file and applies the coordinate normalization selected by opts
func loadPointSet(filePath string, opts *pipeline.Options, algorithmManager algorithm_manager.AlgorithmManager) (*data.PointSet, error) {
	tools.LogOutput("> reading data from xyz file...", filepath.Base(filePath))
	set, err := io.LoadPointSetFile(filePath)
	if err != nil {
		return nil, err
	}

	converter := algorithmManager.GetCoordinateConverterAlgorithm(set)
	defer converter.Cleanup()
	if opts.Geographic || opts.ZOffset != 0 {
		tools.LogOutput("> normalizing coordinates...")
		set, err = converters.NormalizePointSet(set, converter, algorithmManager.GetElevationCorrectionAlgorithm())
		if err != nil {
			return nil, err
		}
	}
	tools.LogOutput("Coordinates using for axis:", set.BoundingBox().String())
	return set, nil
}

// Output path of an input file: the output option itself for a single file, or a
// file named after the input inside the output folder
func outputPathFor(filePath string, opts *pipeline.Options, extension string) string {
	if !opts.FolderProcessing {
		return opts.Output
	}
	return filepath.Join(opts.Output, tools.GetFilenameWithoutExtension(filePath)+extension)
}
