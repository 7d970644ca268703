package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockFace identifies one of the six faces of a block. The ordinals are
// arranged so that XOR-ing the low bit yields the geometric opposite
// (Back/Front, Right/Left, Top/Bottom).
type BlockFace uint8

const (
	FaceBack   BlockFace = iota // +Z
	FaceFront                   // -Z
	FaceRight                   // +X
	FaceLeft                    // -X
	FaceTop                     // +Y
	FaceBottom                  // -Y

	NumFaces = 6
)

// Faces lists all six faces in canonical order for iteration.
var Faces = [NumFaces]BlockFace{FaceBack, FaceFront, FaceRight, FaceLeft, FaceTop, FaceBottom}

func init() {
	// The opposite-pair arrangement is an invariant the codec and the mesh
	// engine both rely on, not a naming convention.
	for _, f := range Faces {
		if f.Flip().Flip() != f || f.Flip() == f {
			panic("world: BlockFace ordinals do not pair opposites on the low bit")
		}
		if f.Offset() != -f.Flip().Offset() {
			panic("world: BlockFace offsets are not symmetric")
		}
	}
}

func (f BlockFace) String() string {
	switch f {
	case FaceBack:
		return "back"
	case FaceFront:
		return "front"
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	}
	return "invalid"
}

// Flip returns the geometrically opposite face.
func (f BlockFace) Flip() BlockFace {
	return f ^ 1
}

// Offset returns the signed flat-index delta of the neighbouring block in
// this direction. Only valid when IsEdge reports false for the source index.
func (f BlockFace) Offset() int {
	switch f {
	case FaceRight:
		return 1
	case FaceLeft:
		return -1
	case FaceTop:
		return 1 << ChunkShift
	case FaceBottom:
		return -1 << ChunkShift
	case FaceBack:
		return 1 << (2 * ChunkShift)
	case FaceFront:
		return -1 << (2 * ChunkShift)
	}
	panic("world: invalid BlockFace")
}

// IsEdge reports whether the block at flat index i sits on the chunk
// boundary in this direction, i.e. Offset would wrap to an unrelated block.
func (f BlockFace) IsEdge(i int) bool {
	switch f {
	case FaceRight:
		return i&(ChunkSize-1) == ChunkSize-1
	case FaceLeft:
		return i&(ChunkSize-1) == 0
	case FaceTop:
		return i>>ChunkShift&(ChunkSize-1) == ChunkSize-1
	case FaceBottom:
		return i>>ChunkShift&(ChunkSize-1) == 0
	case FaceBack:
		return i>>(2*ChunkShift) == ChunkSize-1
	case FaceFront:
		return i>>(2*ChunkShift) == 0
	}
	panic("world: invalid BlockFace")
}

// Normal returns the unit outward normal of the face.
func (f BlockFace) Normal() mgl32.Vec3 {
	switch f {
	case FaceRight:
		return mgl32.Vec3{1, 0, 0}
	case FaceLeft:
		return mgl32.Vec3{-1, 0, 0}
	case FaceTop:
		return mgl32.Vec3{0, 1, 0}
	case FaceBottom:
		return mgl32.Vec3{0, -1, 0}
	case FaceBack:
		return mgl32.Vec3{0, 0, 1}
	case FaceFront:
		return mgl32.Vec3{0, 0, -1}
	}
	panic("world: invalid BlockFace")
}

// FaceFromDir maps a direction vector onto the face whose normal it rounds
// to. Returns false when the rounded vector is not a unit axis vector.
func FaceFromDir(dir mgl32.Vec3) (BlockFace, bool) {
	x := int(math.Round(float64(dir.X())))
	y := int(math.Round(float64(dir.Y())))
	z := int(math.Round(float64(dir.Z())))
	switch [3]int{x, y, z} {
	case [3]int{1, 0, 0}:
		return FaceRight, true
	case [3]int{-1, 0, 0}:
		return FaceLeft, true
	case [3]int{0, 1, 0}:
		return FaceTop, true
	case [3]int{0, -1, 0}:
		return FaceBottom, true
	case [3]int{0, 0, 1}:
		return FaceBack, true
	case [3]int{0, 0, -1}:
		return FaceFront, true
	}
	return 0, false
}

// On remaps a world-space face onto the local texture face of a block that
// has been rotated to look towards dir. A block facing Front keeps the
// identity mapping; Back mirrors the horizontal Front/Back pair; the lateral
// rotations swap Front/Back with the rotation axis. Top and Bottom always
// pass through for horizontal rotations.
func (f BlockFace) On(dir BlockFace) BlockFace {
	switch dir {
	case FaceFront:
		return f
	case FaceBack:
		if f == FaceTop || f == FaceBottom {
			return f
		}
		return f.Flip()
	default:
		switch {
		case f == FaceFront:
			return dir.Flip()
		case f == FaceBack:
			return dir
		case f == dir.Flip():
			return FaceBack
		case f == dir:
			return FaceFront
		default:
			return f
		}
	}
}
