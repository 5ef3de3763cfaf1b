// Package pool provides a reusable scratch byte buffer, used by the
// numeric codec's digit-group encoding loop and by the LZ4 transport
// codec's compress/decompress destination buffers, so repeated calls
// don't allocate a fresh buffer each time.
package pool

import "sync"

// defaultSize is the starting capacity for a fresh scratch buffer.
// Sized for a few hundred fixed-width digit groups before the first grow.
const defaultSize = 1024

// growthThreshold is the capacity above which growth switches from
// doubling to a more conservative 25% increment.
const growthThreshold = 32 * 1024

// ByteBuffer is a growable byte slice with amortized growth, mirroring
// the teacher's buffer growth strategy: double below the threshold,
// grow by 25% above it.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity <= 0 {
		capacity = defaultSize
	}
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow ensures the buffer can accept n more bytes without reallocating.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	need := len(bb.B) + n
	newCap := cap(bb.B)
	if newCap == 0 {
		newCap = defaultSize
	}
	for newCap < need {
		if newCap < growthThreshold {
			newCap *= 2
		} else {
			newCap += newCap / 4
		}
	}

	grown := make([]byte, len(bb.B), newCap)
	copy(grown, bb.B)
	bb.B = grown
}

// WriteByte appends a single byte, growing the buffer if necessary.
func (bb *ByteBuffer) WriteByte(b byte) {
	bb.Grow(1)
	bb.B = append(bb.B, b)
}

// Bytes returns the accumulated bytes. The slice is only valid until
// the next mutating call.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// SetLength sets the buffer's length to n, growing its backing array
// first if needed. Bytes beyond the previous length are left
// uninitialized; callers that use this to hand a fixed-size
// destination slice to a decompressor must not assume it's zeroed.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 {
		panic("SetLength: invalid length")
	}
	if extra := n - len(bb.B); extra > 0 {
		bb.Grow(extra)
	}
	bb.B = bb.B[:n]
}

// Slice returns the portion of the backing array from start to end,
// growing it first if end exceeds the current length. Used by callers
// (e.g. the LZ4 transport codec) that need a fixed-size scratch
// destination without tracking capacity themselves.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start {
		panic("Slice: invalid indices")
	}
	if end > len(bb.B) {
		bb.SetLength(end)
	}
	return bb.B[start:end]
}

// bufferPool pools ByteBuffer instances for reuse across Encode calls.
var bufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(defaultSize)
	},
}

// Get retrieves a reset ByteBuffer from the pool.
func Get() *ByteBuffer {
	bb, _ := bufferPool.Get().(*ByteBuffer)
	bb.Reset()
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func Put(bb *ByteBuffer) {
	bufferPool.Put(bb)
}
