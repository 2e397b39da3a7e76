// File: tracker/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// QueueTracker collects unused buffers in a free-list queue rather than
// scanning an array; O(1) acquire at the cost of requiring a capacity
// bound known up front (see freelist.go). Grounded on the original RRLib
// QueueBased management policy
// (_examples/original_source/policies/management/QueueBased.h).
package tracker

import (
	"sync/atomic"

	"github.com/momentics/bufpool/token"
)

// QueueTracker is the Queue buffer tracker (spec.md §4.1.2).
type QueueTracker[T any] struct {
	free  freeList[T]
	count atomic.Int64
}

// NewQueueTracker constructs a Queue tracker. capacity bounds the free
// list's size and must be at least the number of buffers ever registered
// with Add; it is ignored at LevelNone, where the backing FIFO grows on
// demand.
func NewQueueTracker[T any](level Level, capacity int) *QueueTracker[T] {
	var fl freeList[T]
	if level == LevelNone {
		fl = newSingleFreeList[T]()
	} else {
		fl = newRingFreeList[T](capacity)
	}
	return &QueueTracker[T]{free: fl}
}

// Add registers buffer v as in use and returns a token that points back at
// this tracker. Per spec.md §4.1.2 the buffer is not enqueued here — it is
// handed to the caller as the next in-use buffer, exactly like Add-then-
// Acquire.
func (q *QueueTracker[T]) Add(v *T) token.InfoToken {
	q.count.Add(1)
	return token.From(q)
}

// Acquire dequeues one free buffer; ok is false if the free list is empty.
func (q *QueueTracker[T]) Acquire() (*T, token.InfoToken, bool) {
	v, ok := q.free.pop()
	if !ok {
		return nil, token.InfoToken{}, false
	}
	return v, token.From(q), true
}

// recycle enqueues v back onto the free list. Unexported: external callers
// reach it only through the static QueueRecycle free function, matching the
// "recycle is static" contract of spec.md §4.1.
func (q *QueueTracker[T]) recycle(v *T) {
	q.free.push(v)
}

// Sweep dequeues and destroys every free buffer, returning the number of
// buffers still outstanding. Neither ringFreeList nor singleFreeList
// retains a sentinel element, so — per the "queue tracker residual offset"
// open question (spec.md §9) — no constant is subtracted here; the
// original's cMINIMUM_ELEMENTS_IN_QEUEUE correction becomes zero.
func (q *QueueTracker[T]) Sweep(del func(*T)) int {
	var destroyed int64
	for {
		v, ok := q.free.pop()
		if !ok {
			break
		}
		del(v)
		destroyed++
	}
	q.count.Add(-destroyed)
	return int(q.count.Load())
}

// QueueRecycle reconstructs the owning *QueueTracker[T] from tok and
// enqueues v, invoking T's recycle notification hook first if it opts in.
func QueueRecycle[T any](tok token.InfoToken, v *T) {
	tr := token.To[QueueTracker[T]](tok)
	if n, ok := any(v).(Notifiable); ok {
		n.OnRecycle()
	}
	tr.recycle(v)
}
