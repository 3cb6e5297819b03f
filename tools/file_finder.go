package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

const XyzExtension = ".xyz"

type FileFinder interface {
	GetXyzFilesToProcess(opts *pipeline.Options) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetXyzFilesToProcess(opts *pipeline.Options) ([]string, error) {
	// If folder processing is not enabled then the xyz file is given by -input flag, otherwise look for xyz files in
	// the -input folder, eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.getXyzFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getXyzFilesFromInputFolder(opts *pipeline.Options) ([]string, error) {
	var xyzFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read input folder %s", opts.Input)
	}
	if !baseInfo.IsDir() {
		return nil, errors.Wrapf(pipeline.ErrUsage, "input %s is not a folder", opts.Input)
	}

	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			} else if !info.IsDir() && strings.ToLower(filepath.Ext(info.Name())) == XyzExtension {
				xyzFiles = append(xyzFiles, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", opts.Input)
	}

	sort.Strings(xyzFiles)
	return xyzFiles, nil
}
