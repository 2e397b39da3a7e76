// File: tracker/tracker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package tracker

import "github.com/momentics/bufpool/token"

// Tracker is the Mgmt contract from spec.md §4.1: register a buffer,
// atomically claim a free one, and sweep all currently-free buffers on
// teardown.
// Recycle is intentionally absent here — per spec.md §4.1 it is "static":
// the array tracker's recycle needs no tracker reference at all (it writes
// straight to the slot address in the token), while the queue tracker's
// recycle reconstructs its receiver from the token. See ArrayRecycle and
// QueueRecycle.
type Tracker[T any] interface {
	Sweeper[T]

	// Add registers an owned, currently free-standing buffer as in use
	// (the caller holds it, as if just acquired) and returns the token the
	// matching recycle call must be given.
	Add(v *T) token.InfoToken

	// Acquire atomically transitions one free buffer to in-use, returning
	// it with its token; ok is false if none is free.
	Acquire() (*T, token.InfoToken, bool)
}

// Sweeper is the subset of Tracker the deletion policies need: destroy all
// currently-free buffers with del, returning the count still in use.
type Sweeper[T any] interface {
	Sweep(del func(*T)) int
}

// Notifiable is implemented by payload types that opt into a recycle
// notification hook. The queue tracker invokes it immediately before a
// buffer re-enters the free list (spec.md §4.1.2, §8 scenario S6).
type Notifiable interface {
	OnRecycle()
}

var (
	_ Tracker[int] = (*ArrayTracker[int])(nil)
	_ Tracker[int] = (*QueueTracker[int])(nil)
)
