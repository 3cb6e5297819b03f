package io

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

// Reads a point grid file: two integers n m followed by n*m whitespace separated
// x y z triples. Anything after the last triple is ignored.
func LoadPointSet(r io.Reader) (*data.PointSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	reader := &tokenReader{scanner: scanner}

	n, err := reader.nextInt("n")
	if err != nil {
		return nil, err
	}
	m, err := reader.nextInt("m")
	if err != nil {
		return nil, err
	}
	if n < 1 || m < 1 {
		return nil, errors.Wrapf(pipeline.ErrMalformedInput, "grid dimensions must be >= 1, got %d x %d", n, m)
	}

	count := n * m
	if count/m != n {
		return nil, errors.Wrapf(pipeline.ErrMalformedInput, "grid dimensions %d x %d overflow", n, m)
	}

	points := make([]data.Point3D, 0, capacityHint(count))
	for i := 0; i < count; i++ {
		x, err := reader.nextFloat(i, "x")
		if err != nil {
			return nil, err
		}
		y, err := reader.nextFloat(i, "y")
		if err != nil {
			return nil, err
		}
		z, err := reader.nextFloat(i, "z")
		if err != nil {
			return nil, err
		}
		points = append(points, data.NewPoint3D(x, y, z))
	}

	return data.NewPointSet(points, n, m), nil
}

// Opens and reads a point grid file
func LoadPointSetFile(filePath string) (*data.PointSet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filePath)
	}
	defer func() { _ = file.Close() }()

	glog.Infof("reading point grid from %s", filePath)
	set, err := LoadPointSet(bufio.NewReader(file))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filePath)
	}
	rows, cols := set.Dimensions()
	glog.Infof("read dimensions: %d and %d, %d points", rows, cols, set.Len())
	return set, nil
}

// Caps the preallocation so a bogus header cannot exhaust memory before the data runs out
func capacityHint(count int) int {
	const maxHint = 1 << 20
	if count > maxHint {
		return maxHint
	}
	return count
}

type tokenReader struct {
	scanner *bufio.Scanner
}

func (t *tokenReader) next() (string, bool, error) {
	if t.scanner.Scan() {
		return t.scanner.Text(), true, nil
	}
	if err := t.scanner.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}

func (t *tokenReader) nextInt(name string) (int, error) {
	token, ok, err := t.next()
	if err != nil {
		return 0, errors.Wrapf(pipeline.ErrMalformedInput, "reading grid dimension %s: %v", name, err)
	}
	if !ok {
		return 0, errors.Wrapf(pipeline.ErrMalformedInput, "missing grid dimension %s", name)
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, errors.Wrapf(pipeline.ErrMalformedInput, "grid dimension %s is not an integer: %q", name, token)
	}
	return value, nil
}

func (t *tokenReader) nextFloat(record int, name string) (float64, error) {
	token, ok, err := t.next()
	if err != nil {
		return 0, errors.Wrapf(pipeline.ErrMalformedInput, "record %d: reading %s: %v", record, name, err)
	}
	if !ok {
		return 0, errors.Wrapf(pipeline.ErrMalformedInput, "record %d: truncated data, missing %s", record, name)
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, errors.Wrapf(pipeline.ErrMalformedInput, "record %d: %s is not a number: %q", record, name, token)
	}
	return value, nil
}
