//go:build !cgo || !plyfile

package io

import (
	"bufio"
	"os"

	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/delaunay"
)

// Writes the triangulated surface as an ASCII PLY file at filePath.
// Build with the plyfile tag and cgo to use the C plyfile library instead.
func WritePlyMeshFile(filePath string, set *data.PointSet, triangulation *delaunay.Triangulation) error {
	file, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", filePath)
	}
	buf := bufio.NewWriter(file)
	if err := WritePlyMesh(buf, set, triangulation); err != nil {
		_ = file.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
