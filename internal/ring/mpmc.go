// File: internal/ring/mpmc.go
// Package ring implements a bounded, lock-free ring buffer for cross-thread
// producer/consumer use.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// MPMC uses Dmitry Vyukov's sequence-number pattern: each cell carries its
// own sequence counter so producers and consumers can race on the same
// slot index without a single global lock, at the cost of a fixed
// power-of-two capacity fixed at construction.
package ring

import (
	"sync/atomic"

	"github.com/momentics/bufpool/api"
)

const cacheLinePad = 64

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// MPMC is a bounded multi-producer/multi-consumer ring buffer.
type MPMC[T any] struct {
	head uint64
	_    [cacheLinePad]byte
	tail uint64
	_    [cacheLinePad]byte
	mask uint64
	cells []cell[T]
}

// NewMPMC allocates a ring with capacity rounded up to the next power of two.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	r := &MPMC[T]{
		mask:  uint64(size - 1),
		cells: make([]cell[T], size),
	}
	for i := range r.cells {
		r.cells[i].sequence.Store(uint64(i))
	}
	return r
}

// Enqueue adds val; returns false if the ring is full.
func (r *MPMC[T]) Enqueue(val T) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		c := &r.cells[tail&r.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				c.data = val
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false
		default:
			// another producer moved tail first, retry
		}
	}
}

// Dequeue removes and returns the oldest item; ok is false if empty.
func (r *MPMC[T]) Dequeue() (item T, ok bool) {
	for {
		head := atomic.LoadUint64(&r.head)
		c := &r.cells[head&r.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&r.head, head, head+1) {
				item = c.data
				c.sequence.Store(head + r.mask + 1)
				return item, true
			}
		case dif < 0:
			var zero T
			return zero, false
		default:
			// another consumer moved head first, retry
		}
	}
}

// Cap returns the ring's fixed capacity.
func (r *MPMC[T]) Cap() int {
	return len(r.cells)
}

// Len reports the approximate number of queued items. Because head and
// tail are loaded without synchronising with each other, the result may be
// stale by the time the caller observes it; it is meant for metrics and
// diagnostics, not for correctness decisions.
func (r *MPMC[T]) Len() int {
	tail := atomic.LoadUint64(&r.tail)
	head := atomic.LoadUint64(&r.head)
	if tail < head {
		return 0
	}
	return int(tail - head)
}

var _ api.Ring[int] = (*MPMC[int])(nil)
