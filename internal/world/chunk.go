package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"voxcraft/internal/gpu"
	"voxcraft/internal/logger"
	"voxcraft/internal/profiling"
)

const (
	// ChunkSize is the side length of the cubic block grid.
	ChunkSize  = 32
	ChunkShift = 5

	// ChunkVolume is the number of blocks per chunk.
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize

	// growSlack is the number of spare face slots the growth check demands;
	// a single block edit touches at most all six faces.
	growSlack = 6

	// minFaceCapacity is the smallest buffer allocation, in faces.
	minFaceCapacity = 1024
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// BlockIndexToPos expands a flat block index into local coordinates.
// The grid is 2^5 per axis, so the index splits into three 5-bit fields.
func BlockIndexToPos(i int) (x, y, z int) {
	return i & (ChunkSize - 1), i >> ChunkShift & (ChunkSize - 1), i >> (2 * ChunkShift)
}

// BlockPosToIndex is the inverse of BlockIndexToPos.
func BlockPosToIndex(x, y, z int) int {
	return x + y<<ChunkShift + z<<(2*ChunkShift)
}

// Chunk owns a 32³ block grid and the face mesh derived from it. The quad
// list is dense: the position of a quad inside it is the face slot recorded
// in the owning block, and vertex buffer bytes [slot*QuadSize, ...) mirror
// that quad at all times once the mesh is built.
type Chunk struct {
	Pos    ChunkCoord
	Blocks []ChunkBlock

	verts     [][4]Vertex
	vertexBuf gpu.Buffer
	indexBuf  gpu.Buffer
}

// NewChunk creates an all-air chunk with no mesh.
func NewChunk(pos ChunkCoord) *Chunk {
	c := &Chunk{
		Pos:    pos,
		Blocks: make([]ChunkBlock, ChunkVolume),
	}
	for i := range c.Blocks {
		c.Blocks[i].clearAllFaces()
	}
	return c
}

// Built reports whether the mesh has been generated. Block edits on an
// unbuilt chunk update only the block array; mesh work happens lazily on
// first draw.
func (c *Chunk) Built() bool { return c.vertexBuf != nil }

// VertexBuffer returns the GPU vertex buffer, nil while unbuilt.
func (c *Chunk) VertexBuffer() gpu.Buffer { return c.vertexBuf }

// IndexBuffer returns the GPU index buffer, nil while unbuilt.
func (c *Chunk) IndexBuffer() gpu.Buffer { return c.indexBuf }

// FaceCount returns the number of quads currently emitted.
func (c *Chunk) FaceCount() int { return len(c.verts) }

// IndexCount returns the number of index entries valid for drawing.
func (c *Chunk) IndexCount() int { return len(c.verts) * QuadIndices }

// Quad returns a copy of the quad at the given face slot.
func (c *Chunk) Quad(slot int) [4]Vertex { return c.verts[slot] }

// Origin returns the world-space translation of the chunk, applied
// uniformly to all its quads at draw time.
func (c *Chunk) Origin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.Pos.X * ChunkSize),
		float32(c.Pos.Y * ChunkSize),
		float32(c.Pos.Z * ChunkSize),
	}
}

// faceVisible applies the culling rule: a face is emitted exactly at the
// boundary between a non-air block and air or the chunk edge. A face is
// suppressed only when an in-chunk neighbour exists and is non-transparent.
func (c *Chunk) faceVisible(reg *BlockRegistry, i int, face BlockFace) bool {
	if face.IsEdge(i) {
		return true
	}
	return reg.Transparent(c.Blocks[i+face.Offset()].ID)
}

// GenMesh builds the whole mesh from scratch and uploads it. It is the only
// transition from unbuilt to built.
func (c *Chunk) GenMesh(dev gpu.Device, reg *BlockRegistry) error {
	defer profiling.Track("world.GenMesh")()

	c.verts = c.verts[:0]

	for i := range c.Blocks {
		block := &c.Blocks[i]
		if block.ID == BlockTypeAir {
			continue
		}
		x, y, z := BlockIndexToPos(i)
		pos := mgl32.Vec3{float32(x), float32(y), float32(z)}

		for _, face := range Faces {
			if !c.faceVisible(reg, i, face) {
				block.ClearFace(face)
				continue
			}
			block.SetFace(face, len(c.verts))
			c.verts = append(c.verts, block.GenFace(reg, pos, face))
		}
	}

	// Force fresh allocations so the full quad list is uploaded in one copy.
	if c.vertexBuf != nil {
		c.vertexBuf.Release()
		c.vertexBuf = nil
	}
	if c.indexBuf != nil {
		c.indexBuf.Release()
		c.indexBuf = nil
	}
	return c.ensureBufferCapacity(dev)
}

// AddFace appends one quad for the given block and direction and patches
// the vertex buffer. The caller must have run the growth check; appending
// past the buffer capacity is undefined on the GPU side.
func (c *Chunk) AddFace(reg *BlockRegistry, idx int, face BlockFace) {
	if !c.Built() {
		return
	}

	block := &c.Blocks[idx]
	slot := len(c.verts)
	block.SetFace(face, slot)

	x, y, z := BlockIndexToPos(idx)
	quad := block.GenFace(reg, mgl32.Vec3{float32(x), float32(y), float32(z)}, face)
	c.verts = append(c.verts, quad)
	c.vertexBuf.Write(slot*QuadSize, quadBytes(&quad))
}

// RemoveFace deletes the quad owned by the given block and direction.
//
// The quad list stays dense via swap-remove: the last quad moves into the
// vacated slot. The engine keeps no reverse map from slot to block, so the
// moved quad's owner is recovered geometrically: the face normal comes from
// the cross product of two edges, and stepping half a unit backwards from
// the quad centre along that normal lands inside the owning block's cell.
func (c *Chunk) RemoveFace(idx int, face BlockFace) {
	if !c.Built() {
		return
	}

	block := &c.Blocks[idx]
	slot, ok := block.Face(face)
	if !ok {
		return
	}
	block.ClearFace(face)

	last := len(c.verts) - 1
	c.verts[slot] = c.verts[last]
	c.verts = c.verts[:last]

	if slot == last {
		return
	}

	quad := &c.verts[slot]
	normal := quad[1].Position.Sub(quad[0].Position).
		Cross(quad[2].Position.Sub(quad[0].Position)).Normalize()
	middle := quad[0].Position.
		Add(quad[1].Position).
		Add(quad[2].Position).
		Add(quad[3].Position).
		Mul(0.25)
	inside := middle.Sub(normal.Mul(0.5))

	ownerIdx := BlockPosToIndex(
		int(math.Floor(float64(inside.X()))),
		int(math.Floor(float64(inside.Y()))),
		int(math.Floor(float64(inside.Z()))),
	)
	ownerFace, ok := FaceFromDir(normal)
	if !ok {
		panic("world: relocated quad has a non-axis normal")
	}

	if prev, ok := c.Blocks[ownerIdx].Face(ownerFace); !ok || prev != last {
		panic(fmt.Sprintf("world: relocated quad owner %d/%s does not point at slot %d", ownerIdx, ownerFace, last))
	}
	c.Blocks[ownerIdx].SetFace(ownerFace, slot)

	c.vertexBuf.Write(slot*QuadSize, quadBytes(quad))
}

// PlaceBlock changes the block at idx and patches the mesh incrementally,
// without a full rebuild. Air counts as transparent on both sides of the
// edit. On an unbuilt chunk only the block array changes.
func (c *Chunk) PlaceBlock(dev gpu.Device, reg *BlockRegistry, idx int, id BlockType, dir BlockFace) error {
	defer profiling.Track("world.PlaceBlock")()

	if idx < 0 || idx >= ChunkVolume {
		panic(fmt.Sprintf("world: block index %d out of range", idx))
	}

	block := &c.Blocks[idx]
	wasTransparent := reg.Transparent(block.ID)

	block.ID = id
	block.Dir = dir
	block.Data = nil

	isTransparent := reg.Transparent(id)

	if !c.Built() {
		return nil
	}
	if err := c.ensureBufferCapacity(dev); err != nil {
		return err
	}

	switch {
	case wasTransparent && isTransparent:
		// No mesh change.

	case wasTransparent && !isTransparent:
		// Solid block placed into air: swallow the neighbours' faces that
		// are now interior, expose this block everywhere else.
		for _, face := range Faces {
			if j, ok := c.opaqueNeighbour(reg, idx, face); ok {
				c.RemoveFace(j, face.Flip())
			} else {
				c.AddFace(reg, idx, face)
			}
		}

	case !wasTransparent && isTransparent:
		// Solid block removed: neighbours gain faces looking back into the
		// hole, this block's own faces go away.
		for _, face := range Faces {
			if j, ok := c.opaqueNeighbour(reg, idx, face); ok {
				c.AddFace(reg, j, face.Flip())
			} else {
				c.RemoveFace(idx, face)
			}
		}

	default:
		// Replacement, both solid: same slots, same list positions, only
		// the quad contents change.
		x, y, z := BlockIndexToPos(idx)
		pos := mgl32.Vec3{float32(x), float32(y), float32(z)}
		for _, face := range Faces {
			slot, ok := block.Face(face)
			if !ok {
				continue
			}
			quad := block.GenFace(reg, pos, face)
			c.verts[slot] = quad
			c.vertexBuf.Write(slot*QuadSize, quadBytes(&quad))
		}
	}
	return nil
}

// opaqueNeighbour returns the flat index of the in-chunk neighbour in the
// given direction when it exists and is non-transparent.
func (c *Chunk) opaqueNeighbour(reg *BlockRegistry, idx int, face BlockFace) (int, bool) {
	if face.IsEdge(idx) {
		return 0, false
	}
	j := idx + face.Offset()
	if reg.Transparent(c.Blocks[j].ID) {
		return 0, false
	}
	return j, true
}

// ensureBufferCapacity reallocates the GPU buffers when the quad list plus
// edit slack no longer fits. Capacity grows to max(1024, count*5/4) faces;
// the index buffer is pre-filled with the {0,1,2,2,3,0} pattern for the
// whole capacity so face additions never touch it.
func (c *Chunk) ensureBufferCapacity(dev gpu.Device) error {
	if c.vertexBuf != nil && (len(c.verts)+growSlack)*QuadSize <= c.vertexBuf.Size() {
		return nil
	}

	faceCap := len(c.verts) * 5 / 4
	if faceCap < minFaceCapacity {
		faceCap = minFaceCapacity
	}
	logger.Debug("recreating chunk buffers",
		zap.Int("faces", len(c.verts)),
		zap.Int("capacity", faceCap),
	)

	vertexBuf, err := dev.CreateBuffer(faceCap*QuadSize, quadsBytes(c.verts))
	if err != nil {
		return fmt.Errorf("chunk %v vertex buffer: %w", c.Pos, err)
	}
	if c.vertexBuf != nil {
		c.vertexBuf.Release()
	}
	c.vertexBuf = vertexBuf

	if c.indexBuf != nil && faceCap*QuadIndices*4 <= c.indexBuf.Size() {
		return nil
	}

	indices := make([]uint32, 0, faceCap*QuadIndices)
	for f := 0; f < faceCap; f++ {
		base := uint32(4 * f)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	indexBuf, err := dev.CreateBuffer(len(indices)*4, indicesBytes(indices))
	if err != nil {
		return fmt.Errorf("chunk %v index buffer: %w", c.Pos, err)
	}
	if c.indexBuf != nil {
		c.indexBuf.Release()
	}
	c.indexBuf = indexBuf
	return nil
}
