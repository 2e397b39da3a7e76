// File: tracker/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// freeList abstracts the two queue backends a QueueTracker may use,
// selected by concurrency level (spec.md §4.1.3): a lock-free MPMC ring for
// any level admitting concurrent access, and a single-threaded growable
// FIFO for LevelNone.
package tracker

import (
	eapacheq "github.com/eapache/queue"

	"github.com/momentics/bufpool/internal/ring"
)

type freeList[T any] interface {
	push(v *T) bool
	pop() (*T, bool)
}

// ringFreeList backs every concurrency level above LevelNone with the
// package's lock-free MPMC ring (grounded on the teacher's
// core/concurrency/ring.go Vyukov-style implementation). Its capacity must
// be sized to the maximum number of buffers the pool will ever register,
// since this package targets explicit, non-growing pools (spec.md §1
// Non-goals: no automatic growth beyond AddBuffer).
type ringFreeList[T any] struct {
	r *ring.MPMC[*T]
}

func newRingFreeList[T any](capacity int) *ringFreeList[T] {
	return &ringFreeList[T]{r: ring.NewMPMC[*T](capacity)}
}

func (f *ringFreeList[T]) push(v *T) bool { return f.r.Enqueue(v) }
func (f *ringFreeList[T]) pop() (*T, bool) { return f.r.Dequeue() }

// singleFreeList backs LevelNone pools with github.com/eapache/queue, a
// growable single-threaded ring queue — the teacher's go.mod already
// declared this dependency; this is where it is actually exercised.
type singleFreeList[T any] struct {
	q *eapacheq.Queue
}

func newSingleFreeList[T any]() *singleFreeList[T] {
	return &singleFreeList[T]{q: eapacheq.New()}
}

func (f *singleFreeList[T]) push(v *T) bool {
	f.q.Add(v)
	return true
}

func (f *singleFreeList[T]) pop() (*T, bool) {
	if f.q.Length() == 0 {
		return nil, false
	}
	return f.q.Remove().(*T), true
}
