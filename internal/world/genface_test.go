package world_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxcraft/internal/world"
)

func genQuad(t *testing.T, reg *world.BlockRegistry, id world.BlockType, dir, face world.BlockFace) [4]world.Vertex {
	t.Helper()
	b := world.ChunkBlock{ID: id, Dir: dir}
	return b.GenFace(reg, mgl32.Vec3{0, 0, 0}, face)
}

// Every quad must lie flat on its face's plane of the unit cell, whatever
// the block orientation.
func TestGenFaceCornersOnFacePlane(t *testing.T) {
	reg := world.DefaultRegistry()
	furnace, err := reg.Lookup("furnace")
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range world.Faces {
		for _, face := range world.Faces {
			quad := genQuad(t, reg, furnace, dir, face)

			var axis int
			switch face {
			case world.FaceRight, world.FaceLeft:
				axis = 0
			case world.FaceTop, world.FaceBottom:
				axis = 1
			default:
				axis = 2
			}
			plane := float32(0)
			if face&1 == 0 {
				plane = 1
			}
			for k, v := range quad {
				if v.Position[axis] != plane {
					t.Errorf("face %s dir %s corner %d off plane: %v", face, dir, k, v.Position)
				}
				for a := 0; a < 3; a++ {
					if v.Position[a] < 0 || v.Position[a] > 1 {
						t.Errorf("face %s dir %s corner %d outside unit cell: %v", face, dir, k, v.Position)
					}
				}
			}
		}
	}
}

// The cross product of the first two quad edges must reproduce the face
// normal: the swap-remove reverse lookup depends on it.
func TestGenFaceWindingMatchesNormal(t *testing.T) {
	reg := world.DefaultRegistry()
	furnace, err := reg.Lookup("furnace")
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range world.Faces {
		for _, face := range world.Faces {
			quad := genQuad(t, reg, furnace, dir, face)
			normal := quad[1].Position.Sub(quad[0].Position).
				Cross(quad[2].Position.Sub(quad[0].Position)).Normalize()
			got, ok := world.FaceFromDir(normal)
			if !ok || got != face {
				t.Errorf("face %s dir %s winds with normal %v (%s, %v)", face, dir, normal, got, ok)
			}
		}
	}
}

func TestGenFaceTexCoordsWithinRegion(t *testing.T) {
	reg := world.DefaultRegistry()
	grass, err := reg.Lookup("grass")
	if err != nil {
		t.Fatal(err)
	}

	for _, face := range world.Faces {
		quad := genQuad(t, reg, grass, world.FaceFront, face)
		mesh := reg.Data(grass).Mesh
		tex := mesh.Texture(face, face)
		for k, v := range quad {
			for a := 0; a < 2; a++ {
				lo, hi := tex.Pos[a], tex.Pos[a]+tex.Size[a]
				if v.TexCoord[a] < lo || v.TexCoord[a] > hi {
					t.Errorf("face %s corner %d texcoord %v outside region [%v %v]", face, k, v.TexCoord, tex.Pos, tex.Size)
				}
			}
		}
	}
}

// A directional block rotated to face a lateral direction shows its front
// texture on that side.
func TestGenFaceDirectionalRotation(t *testing.T) {
	reg := world.DefaultRegistry()
	furnace, err := reg.Lookup("furnace")
	if err != nil {
		t.Fatal(err)
	}
	front := reg.Data(furnace).Mesh.(world.MeshDirectional).Front

	for _, dir := range []world.BlockFace{world.FaceFront, world.FaceBack, world.FaceRight, world.FaceLeft} {
		// The world face equal to the orientation maps to the local front.
		quad := genQuad(t, reg, furnace, dir, dir)
		for _, v := range quad {
			for a := 0; a < 2; a++ {
				lo, hi := front.Pos[a], front.Pos[a]+front.Size[a]
				if v.TexCoord[a] < lo || v.TexCoord[a] > hi {
					t.Fatalf("orientation %s does not show front texture on face %s", dir, dir)
				}
			}
		}
	}
}

func TestGenFaceTintColor(t *testing.T) {
	reg := world.DefaultRegistry()
	grass, err := reg.Lookup("grass")
	if err != nil {
		t.Fatal(err)
	}

	top := genQuad(t, reg, grass, world.FaceFront, world.FaceTop)
	want := [4]uint8{0x97, 0xc6, 0x67, 0xff}
	for _, v := range top {
		if v.Color != want {
			t.Errorf("top face color %v, want %v", v.Color, want)
		}
	}
	side := genQuad(t, reg, grass, world.FaceFront, world.FaceRight)
	for _, v := range side {
		if v.Color != ([4]uint8{}) {
			t.Errorf("side face unexpectedly tinted: %v", v.Color)
		}
	}
}

func TestTransparentTexturePanics(t *testing.T) {
	reg := world.DefaultRegistry()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when rendering a transparent block")
		}
	}()
	b := world.ChunkBlock{ID: world.BlockTypeAir, Dir: world.FaceFront}
	b.GenFace(reg, mgl32.Vec3{}, world.FaceTop)
}
