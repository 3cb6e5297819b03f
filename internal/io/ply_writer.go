package io

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/delaunay"
)

// Writes the triangulated surface as an ASCII PLY mesh. Every point of the set is
// written as a vertex, merged duplicates included, so face indices match the set.
func WritePlyMesh(w io.Writer, set *data.PointSet, triangulation *delaunay.Triangulation) error {
	buf := bufio.NewWriter(w)

	header := "ply\n" +
		"format ascii 1.0\n" +
		"comment dem_animator surface\n" +
		fmt.Sprintf("element vertex %d\n", set.Len()) +
		"property double x\n" +
		"property double y\n" +
		"property double z\n" +
		fmt.Sprintf("element face %d\n", triangulation.Len()) +
		"property list uchar int vertex_indices\n" +
		"end_header\n"
	if _, err := buf.WriteString(header); err != nil {
		return err
	}

	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		line := formatFloat(p.X) + " " + formatFloat(p.Y) + " " + formatFloat(p.Z) + "\n"
		if _, err := buf.WriteString(line); err != nil {
			return err
		}
	}
	for _, tri := range triangulation.Triangles {
		if _, err := fmt.Fprintf(buf, "3 %d %d %d\n", tri.A, tri.B, tri.C); err != nil {
			return err
		}
	}
	return buf.Flush()
}
