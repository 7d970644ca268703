package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"voxcraft/internal/gpu"
)

// GLDevice allocates OpenGL buffer objects behind the gpu.Device interface.
// It must only be used from the thread that owns the GL context.
type GLDevice struct{}

func NewGLDevice() *GLDevice { return &GLDevice{} }

func (*GLDevice) CreateBuffer(size int, data []byte) (gpu.Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("graphics: negative buffer size %d", size)
	}
	if len(data) > size {
		return nil, fmt.Errorf("graphics: initial contents (%d bytes) exceed buffer size %d", len(data), size)
	}

	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return &GLBuffer{id: id, size: size}, nil
}

// GLBuffer is a buffer object owned by the GL context.
type GLBuffer struct {
	id   uint32
	size int
}

// ID returns the GL buffer object name for VAO setup.
func (b *GLBuffer) ID() uint32 { return b.id }

func (b *GLBuffer) Size() int { return b.size }

func (b *GLBuffer) Write(offset int, data []byte) {
	if offset < 0 || offset+len(data) > b.size {
		panic(fmt.Sprintf("graphics: write of %d bytes at %d exceeds buffer size %d", len(data), offset, b.size))
	}
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *GLBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}
