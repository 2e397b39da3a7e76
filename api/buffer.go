// Package api
// Author: momentics <momentics@gmail.com>
//
// ByteBuffer is a concrete, reusable []byte-backed payload meant to be
// managed by pool.Pool[ByteBuffer] — a realistic stand-in for the
// network/sensor-frame buffers real-time pipelines pass around.

package api

// ByteBuffer is a growable byte buffer suitable for use as a pooled
// payload. Its Reset method can serve as a pool's configured Destroy
// function, which the deletion policies call in place of a destructor,
// since Go has none; recycling does not call it. Reset truncates the
// backing array without releasing its capacity, so reuse across
// acquisitions does not re-allocate.
type ByteBuffer struct {
	data []byte
}

// Bytes returns the buffer's current contents.
func (b *ByteBuffer) Bytes() []byte { return b.data }

// Append grows the buffer by p, reusing spare capacity where possible.
func (b *ByteBuffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Reset truncates the buffer to zero length without shrinking capacity.
func (b *ByteBuffer) Reset() {
	b.data = b.data[:0]
}

// BufferPoolStats aggregates buffer allocation/reuse stats a pool exposes
// for observability, independent of which recycling strategy it uses.
type BufferPoolStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
}
