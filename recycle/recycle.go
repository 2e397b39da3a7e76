// File: recycle/recycle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package recycle implements the three ways a reclaimed buffer can carry
// enough information to find its way back to the tracker it came from
// (spec.md §4.2, the Rec policy axis): info-in-deleter, info-in-container,
// and info-in-payload. Grounded on the original RRLib recycling policies
// (_examples/original_source/policies/recycling/{StoreOwnerInUniquePointer,
// UseBufferContainer,UseOwnerStorageInBuffer}.h).
package recycle

import (
	"unsafe"

	"github.com/momentics/bufpool/api"
	"github.com/momentics/bufpool/token"
)

var _ api.Handle[int] = (*Handle[int])(nil)

// Tokened is implemented by payload types used with the info-in-payload
// (R3) strategy: the type carries its own recycle token, mirroring the
// original's requirement that T derive from tBufferManagementInfo.
type Tokened interface {
	SetToken(tok token.InfoToken)
	Token() token.InfoToken
}

// Handle is the uniform acquired-buffer handle for all three recycling
// strategies. Where the original distinguishes single-word and two-word
// unique_ptr deleter shapes for queueability, Go's garbage collector
// removes the motivation for that distinction entirely (see SPEC_FULL.md
// Data Model notes) — Handle always carries a pointer plus a release
// closure, and the strategies differ only in how that closure is built.
type Handle[T any] struct {
	ptr     *T
	release func()
	done    bool
}

// Get returns the acquired buffer. Calling Get after Release returns the
// buffer's last value but must not be relied upon — the buffer may already
// have been reused.
func (h *Handle[T]) Get() *T { return h.ptr }

// Release returns the buffer to its owning pool. Release is idempotent:
// calling it more than once is a no-op after the first call.
func (h *Handle[T]) Release() {
	if h.done {
		return
	}
	h.done = true
	h.release()
}

// WrapRelease returns a Handle identical to h except that fn also runs,
// after h's own release, when Release is called. It lets a caller
// (such as a Pool tracking in-use statistics) observe recycling without
// reaching into Handle's unexported fields.
func WrapRelease[T any](h Handle[T], fn func()) Handle[T] {
	return Handle[T]{
		ptr: h.ptr,
		release: func() {
			h.release()
			fn()
		},
	}
}

// NewHandleR1 builds a Handle using the info-in-deleter strategy: tok is
// captured directly in the closure, so T needs no special shape at all.
func NewHandleR1[T any](v *T, tok token.InfoToken, recycle func(token.InfoToken, *T)) Handle[T] {
	return Handle[T]{
		ptr:     v,
		release: func() { recycle(tok, v) },
	}
}

// NewHandleR3 builds a Handle using the info-in-payload strategy: T stores
// its own token via the Tokened interface, so the closure only needs v.
func NewHandleR3[T any, PT interface {
	*T
	Tokened
}](v *T, tok token.InfoToken, recycle func(token.InfoToken, *T)) Handle[T] {
	PT(v).SetToken(tok)
	return Handle[T]{
		ptr: v,
		release: func() {
			recycle(PT(v).Token(), v)
		},
	}
}

// Container wraps a payload with its own token field for the
// info-in-container strategy (R2): the tracker manages *Container[T]
// values, and Payload is handed out to callers while the container itself
// carries the recycle token.
type Container[T any] struct {
	tok     token.InfoToken
	Payload T
}

// NewContainer allocates a fresh Container wrapping a zero-value payload.
func NewContainer[T any]() *Container[T] {
	return &Container[T]{}
}

func (c *Container[T]) setToken(tok token.InfoToken) { c.tok = tok }
func (c *Container[T]) token() token.InfoToken        { return c.tok }

// ContainerFromPayload recovers the owning *Container[T] given only a
// pointer to its Payload field, via pointer arithmetic against Payload's
// offset within Container — the same technique the original's
// UseBufferContainer policy uses to step from T* back to tBufferContainer<T>*.
func ContainerFromPayload[T any](payload *T) *Container[T] {
	var zero Container[T]
	offset := unsafe.Offsetof(zero.Payload)
	return (*Container[T])(unsafe.Pointer(uintptr(unsafe.Pointer(payload)) - offset))
}

// NewHandleR2 builds a Handle using the info-in-container strategy. recycle
// receives the container's token and its payload pointer, and is expected
// to recover the container itself via ContainerFromPayload.
func NewHandleR2[T any](c *Container[T], tok token.InfoToken, recycle func(token.InfoToken, *T)) Handle[T] {
	c.setToken(tok)
	return Handle[T]{
		ptr: &c.Payload,
		release: func() {
			recycle(c.token(), &c.Payload)
		},
	}
}
