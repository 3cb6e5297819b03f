//go:build cgo && plyfile

package io

import (
	"math"
	"runtime"
	"unsafe"

	"github.com/cobaltgray/go-plyfile"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/data"
	"github.com/ecopia-map/dem_animator/internal/delaunay"
)

type plyVertex struct {
	X, Y, Z float64
}

// Face record read by the C writer: the index count followed by the address of the
// index list
type plyFace struct {
	Nverts byte
	Verts  [8]byte
}

var plyVertexProperties = []plyfile.PlyProperty{
	{Name: "x", External_type: plyfile.PLY_DOUBLE, Internal_type: plyfile.PLY_DOUBLE, Offset: int(unsafe.Offsetof(plyVertex{}.X))},
	{Name: "y", External_type: plyfile.PLY_DOUBLE, Internal_type: plyfile.PLY_DOUBLE, Offset: int(unsafe.Offsetof(plyVertex{}.Y))},
	{Name: "z", External_type: plyfile.PLY_DOUBLE, Internal_type: plyfile.PLY_DOUBLE, Offset: int(unsafe.Offsetof(plyVertex{}.Z))},
}

var plyFaceProperty = plyfile.PlyProperty{
	Name:           "vertex_indices",
	External_type:  plyfile.PLY_INT,
	Internal_type:  plyfile.PLY_INT,
	Offset:         int(unsafe.Offsetof(plyFace{}.Verts)),
	Is_list:        plyfile.PLY_LIST,
	Count_external: plyfile.PLY_UCHAR,
	Count_internal: plyfile.PLY_UCHAR,
	Count_offset:   int(unsafe.Offsetof(plyFace{}.Nverts)),
}

// Writes the triangulated surface as an ASCII PLY file at filePath through the C
// plyfile library
func WritePlyMeshFile(filePath string, set *data.PointSet, triangulation *delaunay.Triangulation) error {
	if set.Len() > math.MaxInt32 {
		return errors.Errorf("%d points do not fit 32 bit PLY indices", set.Len())
	}

	elementNames := []string{"vertex", "face"}
	var version float32
	ply := plyfile.PlyOpenForWriting(filePath, len(elementNames), elementNames, plyfile.PLY_ASCII, &version)
	if ply == nil {
		return errors.Errorf("cannot open %s for writing", filePath)
	}
	defer plyfile.PlyClose(ply)

	plyfile.PlyElementCount(ply, "vertex", set.Len())
	for _, prop := range plyVertexProperties {
		plyfile.PlyDescribeProperty(ply, "vertex", prop)
	}
	plyfile.PlyElementCount(ply, "face", triangulation.Len())
	plyfile.PlyDescribeProperty(ply, "face", plyFaceProperty)
	plyfile.PlyPutComment(ply, "dem_animator surface")
	plyfile.PlyHeaderComplete(ply)

	plyfile.PlyPutElementSetup(ply, "vertex")
	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		plyfile.PlyPutElement(ply, plyVertex{X: p.X, Y: p.Y, Z: p.Z})
	}

	// the C writer dereferences the index lists, they must stay reachable until written
	indices := make([][3]int32, triangulation.Len())
	plyfile.PlyPutElementSetup(ply, "face")
	for i, tri := range triangulation.Triangles {
		indices[i] = [3]int32{int32(tri.A), int32(tri.B), int32(tri.C)}
		face := plyFace{Nverts: 3}
		copy(face.Verts[:], plyfile.PointerToByteSlice(uintptr(unsafe.Pointer(&indices[i]))))
		plyfile.PlyPutElement(ply, face)
	}
	runtime.KeepAlive(indices)

	glog.Infof("wrote %d vertices and %d faces to %s", set.Len(), triangulation.Len(), filePath)
	return nil
}
