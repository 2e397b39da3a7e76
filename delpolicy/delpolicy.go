// File: delpolicy/delpolicy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package delpolicy implements the two Del strategies a pool can close
// with (spec.md §4.3): complain-and-always-destroy, and collect-garbage
// (defer destruction of still-outstanding trackers to the process-wide
// registry). Grounded on the original's ComplainOnMissingBuffers and
// CollectGarbage deleting policies
// (_examples/original_source/policies/deleting/{ComplainOnMissingBuffers,
// CollectGarbage}.h).
package delpolicy

import (
	"github.com/momentics/bufpool/internal/diag"
	"github.com/momentics/bufpool/registry"
)

// sweeper is the capability delpolicy needs from a tracker: destroy every
// currently-free buffer with del, reporting how many remain in use.
type sweeper[T any] interface {
	Sweep(del func(*T)) int
}

// Policy runs at pool Close time, given the tracker (as a Sweeper) and the
// payload destructor the pool was configured with.
type Policy[T any] func(tr sweeper[T], del func(*T))

// Complain destroys every free buffer unconditionally and logs an error if
// any buffers were still outstanding — callers are responsible for not
// touching those buffers afterward, since Go's garbage collector (unlike
// the original's manual memory management) will not turn a stray reference
// into undefined behaviour, only a logic error (see SPEC_FULL.md §9).
func Complain[T any]() Policy[T] {
	return func(tr sweeper[T], del func(*T)) {
		missing := tr.Sweep(del)
		if missing > 0 {
			diag.Errorf("buffer pool closed with %d buffer(s) still in use; they will not be destroyed", missing)
		}
	}
}

// Collect destroys every free buffer, and if any remain outstanding hands
// the tracker to the process-wide registry for later retry instead of
// logging an error, mirroring the original's CollectGarbage policy.
func Collect[T any]() Policy[T] {
	return func(tr sweeper[T], del func(*T)) {
		missing := tr.Sweep(del)
		if missing <= 0 {
			return
		}
		registry.Default().Register(registry.NewNode[T](tr, del))
	}
}
