// Package pool provides a pooled, amortized-growth byte buffer used as the
// backing store for bitbuffer.Buffer.
//
// A PER message is typically small (tens to low-thousands of bytes), so the
// default and maximum sizes below are tuned for that range rather than for
// multi-kilobyte payloads.
package pool

import "sync"

// Default and maximum sizes for pooled buffers. Most PER-encoded messages
// are well under 1KiB; the default pre-allocation avoids a reallocation for
// the common case while the threshold keeps one-off huge messages from
// bloating the pool.
const (
	BufferDefaultSize  = 512        // 512B
	BufferMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a growable byte slice with an amortized growth strategy.
// bitbuffer.Buffer uses it as its underlying storage; the bit buffer owns
// the bit cursor, this type only owns the bytes.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. If the buffer has sufficient capacity, Grow does nothing.
//
// Growth strategy:
//   - Small buffers (<=4x default): grow by BufferDefaultSize.
//   - Larger buffers: grow by 25% of current capacity.
//
// Either way, growth is at least requiredBytes so a single large write
// never needs a second grow.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BufferDefaultSize
	if cap(bb.B) > 4*BufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// AppendByte grows the buffer by one byte if needed and appends b.
func (bb *ByteBuffer) AppendByte(b byte) {
	bb.Grow(1)
	bb.B = append(bb.B, b)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// ByteBufferPool pools ByteBuffers to minimize allocations across repeated
// encode/decode calls. One bit buffer is used per operation and discarded
// (or returned to the pool) afterward — buffers are never shared across
// concurrent operations.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse. Buffers whose capacity
// exceeds maxThreshold are discarded instead of pooled, so one outsized
// message can't permanently bloat the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(BufferDefaultSize, BufferMaxThreshold)

// GetBuffer retrieves a ByteBuffer from the default pool.
func GetBuffer() *ByteBuffer {
	return defaultPool.Get()
}

// PutBuffer returns a ByteBuffer to the default pool.
func PutBuffer(bb *ByteBuffer) {
	defaultPool.Put(bb)
}
