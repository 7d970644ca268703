// Package gpu abstracts the buffer objects the mesh engine writes into.
// The render path provides a GL-backed Device; headless runs and tests use
// MemDevice, which exercises identical allocation and write patterns.
package gpu

// Buffer is a fixed-capacity GPU-visible allocation. Writes past the end
// are a caller bug; implementations fail fast rather than truncate.
type Buffer interface {
	// Write replaces len(data) bytes starting at byte offset.
	Write(offset int, data []byte)
	// Size returns the allocated capacity in bytes.
	Size() int
	// Release frees the underlying allocation.
	Release()
}

// Device allocates buffers. Creation failure (device out of memory) is
// unrecoverable for the owning chunk and must be propagated.
type Device interface {
	// CreateBuffer allocates size bytes and copies in the initial contents,
	// which may be shorter than size or nil.
	CreateBuffer(size int, data []byte) (Buffer, error)
}
