package io

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/ecopia-map/dem_animator/internal/delaunay"
)

func TestWritePlyMesh(t *testing.T) {
	set, err := LoadPointSet(strings.NewReader(unitSquare))
	test.That(t, err, test.ShouldBeNil)
	triangulation, err := delaunay.Triangulate(set.Projected())
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, WritePlyMesh(&buf, set, triangulation), test.ShouldBeNil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.That(t, lines[0], test.ShouldEqual, "ply")
	test.That(t, buf.String(), test.ShouldContainSubstring, "element vertex 4\n")
	test.That(t, buf.String(), test.ShouldContainSubstring, "element face 2\n")

	end := 0
	for i, line := range lines {
		if line == "end_header" {
			end = i
		}
	}
	body := lines[end+1:]
	test.That(t, body, test.ShouldHaveLength, 6)
	test.That(t, body[3], test.ShouldEqual, "1 1 3")
	test.That(t, body[4], test.ShouldStartWith, "3 ")
}
