package graphics

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxcraft/internal/gpu"
	"voxcraft/internal/player"
	"voxcraft/internal/profiling"
	"voxcraft/internal/world"
)

// Shader file paths
const (
	ShadersDir = "assets/shaders"

	ChunkVertShader     = "chunk.vert"
	ChunkFragShader     = "chunk.frag"
	WireframeVertShader = "wireframe.vert"
	WireframeFragShader = "wireframe.frag"
	CrosshairVertShader = "crosshair.vert"
	CrosshairFragShader = "crosshair.frag"
)

var crosshairVertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// cubeWireframeVertices traces the 12 edges of a unit cube as line segments.
var cubeWireframeVertices = []float32{
	0, 0, 0, 1, 0, 0,
	1, 0, 0, 1, 1, 0,
	1, 1, 0, 0, 1, 0,
	0, 1, 0, 0, 0, 0,
	0, 0, 1, 1, 0, 1,
	1, 0, 1, 1, 1, 1,
	1, 1, 1, 0, 1, 1,
	0, 1, 1, 0, 0, 1,
	0, 0, 0, 0, 0, 1,
	1, 0, 0, 1, 0, 1,
	1, 1, 0, 1, 1, 1,
	0, 1, 0, 0, 1, 1,
}

type chunkMesh struct {
	vao  uint32
	vbuf gpu.Buffer // buffers the VAO was built against
	ibuf gpu.Buffer
}

// Renderer draws the world's chunk meshes plus the block highlight and
// crosshair overlays.
type Renderer struct {
	chunkShader     *Shader
	wireframeShader *Shader
	crosshairShader *Shader
	camera          *Camera

	atlasTexture uint32

	wireframeVAO uint32
	wireframeVBO uint32
	crosshairVAO uint32
	crosshairVBO uint32

	// VAOs per chunk, rebuilt whenever the chunk's buffers are reallocated
	meshes map[*world.Chunk]*chunkMesh

	// Frustum culling margin in blocks (inflates AABBs before testing)
	frustumMargin float32
}

func NewRenderer(width, height int, fov float32, atlasPath string) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	// Face generation emits CCW front faces
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	chunkShader, err := NewShader(
		filepath.Join(ShadersDir, ChunkVertShader),
		filepath.Join(ShadersDir, ChunkFragShader),
	)
	if err != nil {
		return nil, err
	}

	wireframeShader, err := NewShader(
		filepath.Join(ShadersDir, WireframeVertShader),
		filepath.Join(ShadersDir, WireframeFragShader),
	)
	if err != nil {
		return nil, err
	}

	crosshairShader, err := NewShader(
		filepath.Join(ShadersDir, CrosshairVertShader),
		filepath.Join(ShadersDir, CrosshairFragShader),
	)
	if err != nil {
		return nil, err
	}

	atlasTexture, _, _, err := LoadTexture(atlasPath)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		chunkShader:     chunkShader,
		wireframeShader: wireframeShader,
		crosshairShader: crosshairShader,
		camera:          NewCamera(width, height, fov),
		atlasTexture:    atlasTexture,
		meshes:          make(map[*world.Chunk]*chunkMesh),
		frustumMargin:   1.0,
	}
	r.setupWireframeVAO()
	r.setupCrosshairVAO()

	return r, nil
}

func (r *Renderer) setupWireframeVAO() {
	gl.GenVertexArrays(1, &r.wireframeVAO)
	gl.BindVertexArray(r.wireframeVAO)

	gl.GenBuffers(1, &r.wireframeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.wireframeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeWireframeVertices)*4, gl.Ptr(cubeWireframeVertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
}

func (r *Renderer) setupCrosshairVAO() {
	gl.GenVertexArrays(1, &r.crosshairVAO)
	gl.BindVertexArray(r.crosshairVAO)

	gl.GenBuffers(1, &r.crosshairVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.crosshairVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(crosshairVertices)*4, gl.Ptr(crosshairVertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *Camera {
	return r.camera
}

// UpdateViewport updates the camera's viewport dimensions
func (r *Renderer) UpdateViewport(width, height int) {
	r.camera.SetViewport(width, height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Render(w *world.World, p *player.Player) {
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := p.ViewMatrix()
	projection := r.camera.GetProjectionMatrix()

	r.renderChunks(w, view, projection)

	if hit, ok := p.Hovered(); ok {
		x, y, z := world.BlockIndexToPos(hit.Index)
		origin := hit.Chunk.Origin()
		pos := mgl32.Vec3{origin.X() + float32(x), origin.Y() + float32(y), origin.Z() + float32(z)}
		r.renderHighlightedBlock(pos, view, projection)
	}

	r.renderCrosshair()
}

func (r *Renderer) renderChunks(w *world.World, view, projection mgl32.Mat4) {
	defer profiling.Track("renderer.renderChunks")()

	r.chunkShader.Use()
	r.chunkShader.SetMatrix4("proj", &projection[0])
	r.chunkShader.SetMatrix4("view", &view[0])
	r.chunkShader.SetInt("atlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTexture)

	planes := extractFrustumPlanes(projection.Mul4(view))
	sizef := float32(world.ChunkSize)

	for _, ch := range w.Chunks() {
		if !ch.Built() || ch.FaceCount() == 0 {
			continue
		}

		origin := ch.Origin()
		m := r.frustumMargin
		min := mgl32.Vec3{origin.X() - m, origin.Y() - m, origin.Z() - m}
		max := mgl32.Vec3{origin.X() + sizef + m, origin.Y() + sizef + m, origin.Z() + sizef + m}
		if !aabbIntersectsFrustum(min, max, planes) {
			continue
		}

		mesh := r.ensureChunkVAO(ch)
		if mesh == nil {
			continue
		}

		r.chunkShader.SetVector3("origin", origin.X(), origin.Y(), origin.Z())
		gl.BindVertexArray(mesh.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(ch.IndexCount()), gl.UNSIGNED_INT, 0)
	}
}

// ensureChunkVAO keeps one VAO per chunk, rebuilt when the chunk's buffers
// have been reallocated by mesh growth.
func (r *Renderer) ensureChunkVAO(ch *world.Chunk) *chunkMesh {
	vbuf, vok := ch.VertexBuffer().(*GLBuffer)
	ibuf, iok := ch.IndexBuffer().(*GLBuffer)
	if !vok || !iok {
		return nil
	}

	mesh := r.meshes[ch]
	if mesh != nil && mesh.vbuf == ch.VertexBuffer() && mesh.ibuf == ch.IndexBuffer() {
		return mesh
	}

	if mesh == nil {
		mesh = &chunkMesh{}
		r.meshes[ch] = mesh
	} else if mesh.vao != 0 {
		gl.DeleteVertexArrays(1, &mesh.vao)
	}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	stride := int32(world.VertexSize)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbuf.ID())
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, 5*4)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibuf.ID())

	mesh.vbuf = ch.VertexBuffer()
	mesh.ibuf = ch.IndexBuffer()
	return mesh
}

func (r *Renderer) renderHighlightedBlock(pos mgl32.Vec3, view, projection mgl32.Mat4) {
	defer profiling.Track("renderer.renderHighlight")()

	r.wireframeShader.Use()
	r.wireframeShader.SetMatrix4("proj", &projection[0])
	r.wireframeShader.SetMatrix4("view", &view[0])

	model := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.Scale3D(1.01, 1.01, 1.01)).
		Mul4(mgl32.Translate3D(-0.005, -0.005, -0.005))
	r.wireframeShader.SetMatrix4("model", &model[0])
	r.wireframeShader.SetVector3("color", 0.0, 0.0, 0.0)

	gl.BindVertexArray(r.wireframeVAO)
	gl.LineWidth(2.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeWireframeVertices)/3))
}

func (r *Renderer) renderCrosshair() {
	r.crosshairShader.Use()
	r.crosshairShader.SetFloat("aspectRatio", r.camera.AspectRatio)

	gl.BindVertexArray(r.crosshairVAO)
	gl.LineWidth(2.0)
	gl.DrawArrays(gl.LINES, 0, 4)
}

// Dispose releases all GL resources owned by the renderer.
func (r *Renderer) Dispose() {
	for _, mesh := range r.meshes {
		if mesh.vao != 0 {
			gl.DeleteVertexArrays(1, &mesh.vao)
		}
	}
	r.meshes = nil

	if r.wireframeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.wireframeVAO)
		gl.DeleteBuffers(1, &r.wireframeVBO)
	}
	if r.crosshairVAO != 0 {
		gl.DeleteVertexArrays(1, &r.crosshairVAO)
		gl.DeleteBuffers(1, &r.crosshairVBO)
	}
	if r.atlasTexture != 0 {
		gl.DeleteTextures(1, &r.atlasTexture)
	}

	r.chunkShader.Delete()
	r.wireframeShader.Delete()
	r.crosshairShader.Delete()
}
