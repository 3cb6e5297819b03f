package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ecopia-map/dem_animator/internal/data"
)

// Writes the point set in the format read by LoadPointSet
func WritePointSet(w io.Writer, set *data.PointSet) error {
	buf := bufio.NewWriter(w)
	rows, cols := set.Dimensions()
	if rows*cols != set.Len() {
		rows, cols = set.Len(), 1
	}
	if _, err := fmt.Fprintf(buf, "%d %d\n", rows, cols); err != nil {
		return err
	}
	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		line := formatFloat(p.X) + " " + formatFloat(p.Y) + " " + formatFloat(p.Z) + "\n"
		if _, err := buf.WriteString(line); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
