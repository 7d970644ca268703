package world

import (
	"voxcraft/internal/gpu"
)

// World owns the block registry and the set of loaded chunks. Chunks are
// keyed by their position in chunk units; there is no streaming or
// eviction, a loaded chunk stays loaded.
type World struct {
	Registry *BlockRegistry
	chunks   map[ChunkCoord]*Chunk
}

// NewWorld creates an empty world over the given registry.
func NewWorld(reg *BlockRegistry) *World {
	return &World{
		Registry: reg,
		chunks:   make(map[ChunkCoord]*Chunk),
	}
}

// AddChunk inserts a chunk, replacing any chunk at the same coordinate.
func (w *World) AddChunk(c *Chunk) {
	w.chunks[c.Pos] = c
}

// Chunk returns the loaded chunk at the given coordinate.
func (w *World) Chunk(pos ChunkCoord) (*Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

// Chunks returns all loaded chunks in unspecified order.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, c)
	}
	return out
}

// Locate resolves world-space block coordinates to the owning chunk and the
// flat index inside it.
func (w *World) Locate(wx, wy, wz int) (*Chunk, int, bool) {
	coord := ChunkCoord{
		X: floorDiv(wx, ChunkSize),
		Y: floorDiv(wy, ChunkSize),
		Z: floorDiv(wz, ChunkSize),
	}
	c, ok := w.chunks[coord]
	if !ok {
		return nil, 0, false
	}
	idx := BlockPosToIndex(
		wx-coord.X*ChunkSize,
		wy-coord.Y*ChunkSize,
		wz-coord.Z*ChunkSize,
	)
	return c, idx, true
}

// PlaceBlock is the block-edit entry point the interaction layer calls.
func (w *World) PlaceBlock(dev gpu.Device, c *Chunk, idx int, id BlockType, dir BlockFace) error {
	return c.PlaceBlock(dev, w.Registry, idx, id, dir)
}

// floorDiv divides rounding towards negative infinity, so block
// coordinates map onto chunk coordinates correctly below zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
