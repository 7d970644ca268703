package gpu

import "fmt"

// MemDevice is an in-memory Device. It backs headless worlds and the test
// suite; its bounds checking mirrors what a GL write past the buffer end
// would corrupt silently.
type MemDevice struct{}

// NewMemDevice returns a Device backed by plain byte slices.
func NewMemDevice() *MemDevice { return &MemDevice{} }

func (*MemDevice) CreateBuffer(size int, data []byte) (Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("gpu: negative buffer size %d", size)
	}
	if len(data) > size {
		return nil, fmt.Errorf("gpu: initial contents (%d bytes) exceed buffer size %d", len(data), size)
	}
	b := &MemBuffer{data: make([]byte, size)}
	copy(b.data, data)
	return b, nil
}

// MemBuffer is the buffer type MemDevice allocates. Tests reach through
// Bytes to compare buffer contents against the engine's CPU-side quad list.
type MemBuffer struct {
	data     []byte
	released bool
}

func (b *MemBuffer) Write(offset int, data []byte) {
	if b.released {
		panic("gpu: write to released buffer")
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		panic(fmt.Sprintf("gpu: write of %d bytes at %d exceeds buffer size %d", len(data), offset, len(b.data)))
	}
	copy(b.data[offset:], data)
}

func (b *MemBuffer) Size() int { return len(b.data) }

func (b *MemBuffer) Release() { b.released = true }

// Bytes exposes the backing store for verification.
func (b *MemBuffer) Bytes() []byte { return b.data }
