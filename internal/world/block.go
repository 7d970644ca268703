package world

import "fmt"

// BlockType is a handle into the block registry. Type 0 is always air.
type BlockType uint16

// BlockTypeAir never renders and never owns face slots.
const BlockTypeAir BlockType = 0

// faceSlotNone is the reserved all-ones 17-bit value meaning "no face
// emitted". Valid slot indices are [0, faceSlotNone).
const faceSlotNone = 1<<17 - 1

// ChunkBlock is the per-block state inside a chunk. Each of the six faces
// stores an optional 17-bit slot index into the chunk's quad list, packed as
// a 16-bit low word plus one high bit per face in facesHi. The packing keeps
// the per-block footprint at 13 bytes for all six directions.
type ChunkBlock struct {
	ID  BlockType
	Dir BlockFace

	faces   [NumFaces]uint16
	facesHi uint8

	// Data is a reserved per-block payload for block-specific state.
	Data []byte
}

// Face returns the quad slot this block owns in direction f, if any.
func (b *ChunkBlock) Face(f BlockFace) (int, bool) {
	v := int(b.facesHi>>f&1)<<16 | int(b.faces[f])
	if v == faceSlotNone {
		return 0, false
	}
	return v, true
}

// SetFace records slot as this block's quad index in direction f. Values
// outside the encodable range are a caller bug and panic rather than
// truncate, since truncation would silently corrupt the dense quad list.
func (b *ChunkBlock) SetFace(f BlockFace, slot int) {
	if slot < 0 || slot >= faceSlotNone {
		panic(fmt.Sprintf("world: face slot %d out of range for %s", slot, f))
	}
	b.storeFace(f, slot)
}

// ClearFace marks direction f as having no emitted quad.
func (b *ChunkBlock) ClearFace(f BlockFace) {
	b.storeFace(f, faceSlotNone)
}

func (b *ChunkBlock) storeFace(f BlockFace, v int) {
	b.facesHi &^= 1 << f
	b.facesHi |= uint8(v>>16&1) << f
	b.faces[f] = uint16(v)
}

func (b *ChunkBlock) clearAllFaces() {
	for i := range b.faces {
		b.faces[i] = 0xffff
	}
	b.facesHi = 0x3f
}

// Mesh looks up the block's mesh definition in the registry.
func (b *ChunkBlock) Mesh(reg *BlockRegistry) BlockMesh {
	return reg.Data(b.ID).Mesh
}
