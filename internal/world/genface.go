package world

import "github.com/go-gl/mathgl/mgl32"

// faceCorners are the (i,j) parameters of the four quad corners, also used
// directly as texture-region coordinates.
var faceCorners = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// GenFace builds the quad for one face of this block at the given local
// position. The (i,j) corner parameters land on the two axes perpendicular
// to the face normal; which axis gets which parameter, and with which
// parity, depends on both the face and the block's orientation. The
// even-ordinal faces (Back, Right, Top) get their vertex order reversed so
// every emitted quad winds front-facing for backface culling.
func (b *ChunkBlock) GenFace(reg *BlockRegistry, pos mgl32.Vec3, face BlockFace) [4]Vertex {
	tex := b.Mesh(reg).Texture(face, face.On(b.Dir))

	// Positive-direction faces lie on the far plane of the unit cell.
	axis := float32((uint8(face) + 1) & 1)

	var quad [4]Vertex
	for k, corner := range faceCorners {
		i, j := corner[0], corner[1]

		var local mgl32.Vec3
		switch face {
		case FaceRight, FaceLeft:
			switch b.Dir {
			case FaceTop:
				local = mgl32.Vec3{axis, i, 1 - j}
			case FaceBottom:
				local = mgl32.Vec3{axis, 1 - i, j}
			default:
				local = mgl32.Vec3{axis, 1 - j, 1 - i}
			}
		case FaceFront, FaceBack:
			if b.Dir == FaceTop {
				local = mgl32.Vec3{1 - i, j, axis}
			} else {
				local = mgl32.Vec3{i, 1 - j, axis}
			}
		default: // FaceTop, FaceBottom
			switch b.Dir {
			case FaceLeft:
				local = mgl32.Vec3{1 - j, axis, i}
			case FaceBack, FaceBottom:
				local = mgl32.Vec3{i, axis, j}
			case FaceRight:
				local = mgl32.Vec3{j, axis, 1 - i}
			default:
				local = mgl32.Vec3{1 - i, axis, 1 - j}
			}
		}

		quad[k] = Vertex{
			Position: pos.Add(local),
			TexCoord: tex.UV(mgl32.Vec2{i, j}),
			Color:    tex.Color,
		}
	}

	if face&1 == 0 {
		quad[0], quad[3] = quad[3], quad[0]
		quad[1], quad[2] = quad[2], quad[1]
	}
	return quad
}
