package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxcraft/internal/profiling"
)

// rayEpsilon nudges each boundary crossing slightly past the integer plane
// so rays starting exactly on a boundary still make forward progress.
const rayEpsilon = 1e-4

// RayHit describes the first occupied block along a ray.
type RayHit struct {
	Chunk *Chunk
	// Index is the flat block index within Chunk.
	Index int
	// Face is the face through which the ray entered the block.
	Face BlockFace
}

// axisFaces maps an axis to the face of positive travel along it.
var axisFaces = [3]BlockFace{FaceRight, FaceTop, FaceBack}

// Raycast steps the ray through the integer block grid until it enters a
// non-air block or exceeds maxDist. dir must be a unit vector. Regions with
// no loaded chunk are skipped, not treated as solid.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxDist float32) (RayHit, bool) {
	defer profiling.Track("world.Raycast")()

	if dir.LenSqr() == 0 {
		return RayHit{}, false
	}

	pos := origin
	block := [3]int{
		int(math.Floor(float64(origin.X()))),
		int(math.Floor(float64(origin.Y()))),
		int(math.Floor(float64(origin.Z()))),
	}
	var travelled float32

	for {
		// Distance to the next integer boundary along each axis, infinite
		// where the ray runs parallel to the planes.
		var dist [3]float32
		for a := 0; a < 3; a++ {
			d := dir[a]
			if d == 0 {
				dist[a] = float32(math.Inf(1))
				continue
			}
			// For negative travel the floor itself is the next boundary;
			// from an exactly-aligned position the base distance is zero and
			// the epsilon alone carries the ray across.
			var next float64
			if d > 0 {
				next = math.Floor(float64(pos[a])) + 1
			} else {
				next = math.Floor(float64(pos[a]))
			}
			dist[a] = (float32(next)-pos[a])/d + rayEpsilon
		}

		axis := 0
		if dist[1] < dist[axis] {
			axis = 1
		}
		if dist[2] < dist[axis] {
			axis = 2
		}

		pos = pos.Add(dir.Mul(dist[axis]))
		travelled += dist[axis]
		if travelled > maxDist {
			return RayHit{}, false
		}

		var entered BlockFace
		if dir[axis] > 0 {
			block[axis]++
			entered = axisFaces[axis].Flip()
		} else {
			block[axis]--
			entered = axisFaces[axis]
		}

		coord := ChunkCoord{
			X: floorDiv(block[0], ChunkSize),
			Y: floorDiv(block[1], ChunkSize),
			Z: floorDiv(block[2], ChunkSize),
		}
		chunk, ok := w.chunks[coord]
		if !ok {
			continue
		}

		idx := BlockPosToIndex(
			block[0]-coord.X*ChunkSize,
			block[1]-coord.Y*ChunkSize,
			block[2]-coord.Z*ChunkSize,
		)
		if chunk.Blocks[idx].ID != BlockTypeAir {
			return RayHit{Chunk: chunk, Index: idx, Face: entered}, true
		}
	}
}
