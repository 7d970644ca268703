package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockTexture is a region of the shared block atlas plus an optional tint
// applied to every vertex that samples it.
type BlockTexture struct {
	Pos  mgl32.Vec2
	Size mgl32.Vec2

	Color [4]uint8
}

// NewBlockTexture builds an untinted atlas region.
func NewBlockTexture(pos, size mgl32.Vec2) BlockTexture {
	return BlockTexture{Pos: pos, Size: size}
}

// WithColor returns a copy of the texture with the given RGBA tint.
func (t BlockTexture) WithColor(color [4]uint8) BlockTexture {
	t.Color = color
	return t
}

// UV maps a corner parameter in [0,1]² into atlas coordinates.
func (t BlockTexture) UV(coords mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		t.Pos[0] + coords[0]*t.Size[0],
		t.Pos[1] + coords[1]*t.Size[1],
	}
}

// BlockMesh describes how a block type maps textures onto its faces.
//
// Texture receives both the world-space face being emitted and its remap
// through the block's orientation (BlockFace.On): Surrounded distinguishes
// the geometric top and bottom, Directional follows the rotated local face.
type BlockMesh interface {
	Transparent() bool
	Texture(face, local BlockFace) BlockTexture
}

// MeshTransparent never produces faces. Asking it for a texture is a
// contract violation: culling must prevent transparent blocks from ever
// reaching face generation.
type MeshTransparent struct{}

func (MeshTransparent) Transparent() bool { return true }

func (MeshTransparent) Texture(face, local BlockFace) BlockTexture {
	panic("world: transparent blocks are never rendered")
}

// MeshSameSided uses one texture region for all six faces.
type MeshSameSided struct {
	Tex BlockTexture
}

func (MeshSameSided) Transparent() bool { return false }

func (m MeshSameSided) Texture(face, local BlockFace) BlockTexture { return m.Tex }

// MeshSurrounded has distinct top and bottom regions and one region shared
// by the four side faces.
type MeshSurrounded struct {
	Top, Bottom, Sides BlockTexture
}

func (MeshSurrounded) Transparent() bool { return false }

func (m MeshSurrounded) Texture(face, local BlockFace) BlockTexture {
	switch face {
	case FaceTop:
		return m.Top
	case FaceBottom:
		return m.Bottom
	default:
		return m.Sides
	}
}

// MeshDirectional has a region per logical face, reinterpreted through the
// block's stored orientation.
type MeshDirectional struct {
	Right, Left, Top, Bottom, Front, Back BlockTexture
}

func (MeshDirectional) Transparent() bool { return false }

func (m MeshDirectional) Texture(face, local BlockFace) BlockTexture {
	switch local {
	case FaceRight:
		return m.Right
	case FaceLeft:
		return m.Left
	case FaceTop:
		return m.Top
	case FaceBottom:
		return m.Bottom
	case FaceFront:
		return m.Front
	case FaceBack:
		return m.Back
	}
	panic("world: invalid BlockFace")
}

// BlockData is one registry entry.
type BlockData struct {
	Name string
	Mesh BlockMesh
}

// BlockRegistry is the immutable catalog of block types. It is populated
// once at world initialisation and read-only afterwards.
type BlockRegistry struct {
	blocks []BlockData
	byName map[string]BlockType
}

// NewBlockRegistry creates a registry whose type 0 is air. Air is always
// transparent; that invariant is what lets the engine treat ID 0 checks and
// transparency checks interchangeably for empty cells.
func NewBlockRegistry() *BlockRegistry {
	r := &BlockRegistry{byName: make(map[string]BlockType)}
	r.Register(BlockData{Name: "air", Mesh: MeshTransparent{}})
	return r
}

// Register appends a block type and returns its handle.
func (r *BlockRegistry) Register(data BlockData) BlockType {
	if len(r.blocks) == 0 && !data.Mesh.Transparent() {
		panic("world: registry entry 0 must be transparent")
	}
	id := BlockType(len(r.blocks))
	r.blocks = append(r.blocks, data)
	r.byName[data.Name] = id
	return id
}

// Data returns the entry for a block type.
func (r *BlockRegistry) Data(id BlockType) *BlockData {
	return &r.blocks[id]
}

// Lookup resolves a block name to its handle.
func (r *BlockRegistry) Lookup(name string) (BlockType, error) {
	id, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("world: unknown block %q", name)
	}
	return id, nil
}

// Transparent reports whether a block type produces no faces.
func (r *BlockRegistry) Transparent(id BlockType) bool {
	return r.blocks[id].Mesh.Transparent()
}

// Len returns the number of registered block types.
func (r *BlockRegistry) Len() int { return len(r.blocks) }

// DefaultRegistry builds the stock block set against the 1024×1024 block
// atlas. Region coordinates are in pixels, normalised to atlas space.
func DefaultRegistry() *BlockRegistry {
	r := NewBlockRegistry()

	px := func(x, y float32) mgl32.Vec2 {
		return mgl32.Vec2{x / 1024.0, y / 1024.0}
	}
	size := px(16, 16)

	r.Register(BlockData{
		Name: "cobblestone",
		Mesh: MeshSameSided{Tex: NewBlockTexture(px(624, 272), size)},
	})
	r.Register(BlockData{
		Name: "dirt",
		Mesh: MeshSameSided{Tex: NewBlockTexture(px(768, 304), size)},
	})
	r.Register(BlockData{
		Name: "grass",
		Mesh: MeshSurrounded{
			Top:    NewBlockTexture(px(880, 320), size).WithColor([4]uint8{0x97, 0xc6, 0x67, 0xff}),
			Bottom: NewBlockTexture(px(768, 304), size),
			Sides:  NewBlockTexture(px(832, 320), size),
		},
	})
	r.Register(BlockData{
		Name: "furnace",
		Mesh: MeshDirectional{
			Right:  NewBlockTexture(px(656, 320), size),
			Left:   NewBlockTexture(px(656, 320), size),
			Top:    NewBlockTexture(px(672, 320), size),
			Bottom: NewBlockTexture(px(672, 320), size),
			Front:  NewBlockTexture(px(624, 320), size),
			Back:   NewBlockTexture(px(656, 320), size),
		},
	})
	r.Register(BlockData{
		Name: "observer",
		Mesh: MeshDirectional{
			Right:  NewBlockTexture(px(816, 368), size),
			Left:   NewBlockTexture(px(816, 368), size),
			Top:    NewBlockTexture(px(832, 368), size),
			Bottom: NewBlockTexture(px(832, 368), size),
			Front:  NewBlockTexture(px(800, 368), size),
			Back:   NewBlockTexture(px(768, 368), size),
		},
	})

	return r
}
