package world

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the fixed attribute layout every chunk buffer uses: position
// (3×f32), atlas coordinate (2×f32) and a normalised RGBA tint.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Color    [4]uint8
}

const (
	// VertexSize is the stride in bytes. The struct has no padding.
	VertexSize = int(unsafe.Sizeof(Vertex{}))

	// QuadSize is the byte footprint of one emitted face.
	QuadSize = 4 * VertexSize

	// QuadIndices is the number of index entries per face.
	QuadIndices = 6
)

// quadBytes reinterprets a quad as its raw GPU byte layout.
func quadBytes(q *[4]Vertex) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&q[0])), QuadSize)
}

// quadsBytes reinterprets the whole quad list as raw bytes.
func quadsBytes(qs [][4]Vertex) []byte {
	if len(qs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&qs[0][0])), len(qs)*QuadSize)
}

// indicesBytes reinterprets an index list as raw bytes.
func indicesBytes(idx []uint32) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*4)
}
