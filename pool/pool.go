// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool[T] is the public façade composing one Mgmt tracker, one Rec
// strategy, and one Del policy (spec.md §4 Component Design). The three
// recycling strategies are exposed as three constructors — NewR1, NewR2,
// NewR3 — rather than a runtime switch, since R3's requirement that T
// implement recycle.Tokened is a compile-time constraint, not a value.
// Grounded on the original's tBufferPool template
// (_examples/original_source/tBufferPool.h).
package pool

import (
	"sync/atomic"

	"github.com/momentics/bufpool/api"
	"github.com/momentics/bufpool/delpolicy"
	"github.com/momentics/bufpool/recycle"
	"github.com/momentics/bufpool/token"
	"github.com/momentics/bufpool/tracker"
)

// Pool manages a set of reusable buffers of type T. The zero value is not
// usable; construct with NewR1, NewR2, or NewR3.
//
// Pool satisfies api.BufferPool[T] in spirit — AddBuffer/GetUnused/Close
// with the same meaning — but not by direct interface assertion: Go does
// not allow a method to satisfy an interface by returning a different
// concrete type than the one the interface declares, even when that type
// implements the interface's own Handle contract. Callers that need the
// abstract contract wrap a *Pool[T] themselves.
type Pool[T any] struct {
	addFn     func(*T) recycle.Handle[T]
	acquireFn func() (recycle.Handle[T], bool)
	closeFn   func()
	internal  any
	closed    atomic.Bool
	allocated atomic.Int64
	inUse     atomic.Int64
}

// Stats reports allocation and in-use accounting, independent of which
// recycling strategy the pool uses.
func (p *Pool[T]) Stats() api.BufferPoolStats {
	alloc := p.allocated.Load()
	inUse := p.inUse.Load()
	return api.BufferPoolStats{
		TotalAlloc: alloc,
		TotalFree:  alloc - inUse,
		InUse:      inUse,
	}
}

// finalize wraps raw add/acquire closures with in-use accounting common to
// every tracker/recycling combination, then assembles the Pool.
func finalize[T any](internal any, rawAdd func(*T) recycle.Handle[T], rawAcquire func() (recycle.Handle[T], bool), closeFn func()) *Pool[T] {
	p := &Pool[T]{internal: internal, closeFn: closeFn}
	p.addFn = func(v *T) recycle.Handle[T] {
		p.allocated.Add(1)
		p.inUse.Add(1)
		h := rawAdd(v)
		return recycle.WrapRelease(h, func() { p.inUse.Add(-1) })
	}
	p.acquireFn = func() (recycle.Handle[T], bool) {
		h, ok := rawAcquire()
		if !ok {
			return h, false
		}
		p.inUse.Add(1)
		return recycle.WrapRelease(h, func() { p.inUse.Add(-1) }), true
	}
	return p
}

// Acquire is a diagnostic-friendly wrapper around GetUnused that reports why
// a caller got nothing back: a structured *api.Error wrapping
// api.ErrPoolClosed once Close has run, or one wrapping api.ErrPoolExhausted
// if the pool is simply out of free buffers right now. Callers that only
// need classification can still use errors.Is against either sentinel.
func (p *Pool[T]) Acquire() (recycle.Handle[T], error) {
	if p.closed.Load() {
		err := api.NewError(api.ErrCodeUnavailable, "buffer pool is closed").
			WithCause(api.ErrPoolClosed).
			WithContext("allocated", p.allocated.Load())
		return recycle.Handle[T]{}, err
	}
	h, ok := p.GetUnused()
	if !ok {
		err := api.NewError(api.ErrCodeResourceExhausted, "no unused buffer available").
			WithCause(api.ErrPoolExhausted).
			WithContext("inUse", p.inUse.Load())
		return recycle.Handle[T]{}, err
	}
	return h, nil
}

// AddBuffer registers a newly allocated buffer with the pool and returns it
// as an in-use Handle, exactly as if it had just been acquired. A buffer
// must only ever be added to one pool. Pools built with NewR2 copy *v into
// a fresh container, so their Handle points at that copy rather than at v.
func (p *Pool[T]) AddBuffer(v *T) recycle.Handle[T] {
	return p.addFn(v)
}

// GetUnused returns a handle to a currently-free buffer, or ok=false if the
// pool has none available right now.
func (p *Pool[T]) GetUnused() (recycle.Handle[T], bool) {
	return p.acquireFn()
}

// Internal returns the pool's backing tracker for advanced manual tweaking.
// Its concrete type depends on which constructor and TrackerKind were used;
// most callers never need this.
func (p *Pool[T]) Internal() any {
	return p.internal
}

// Close destroys every currently-free buffer and applies the pool's
// configured deletion policy to whatever remains outstanding. Close is
// idempotent.
func (p *Pool[T]) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.closeFn()
}

// New constructs a Pool using the info-in-deleter recycling strategy (R1),
// the only one expressible without an extra compile-time type parameter on
// T, after checking cfg for the runtime-checkable policy/type-capability
// mismatches spec.md §7 calls for (e.g. a queue tracker with no capacity
// configured). It returns a structured *api.Error rather than panicking.
// Callers whose T satisfies recycle.Tokened and want R3, or who want the
// container-based R2 strategy, use NewR2/NewR3 directly; Go cannot express
// R3's struct-embedding requirement inside a single New[T] for arbitrary T.
func New[T any](cfg Config[T]) (*Pool[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return NewR1(cfg), nil
}

// NewR1 constructs a Pool using the info-in-deleter recycling strategy
// (spec.md §4.2, R1): the recycle token lives in the Handle's release
// closure, so T needs no special shape.
func NewR1[T any](cfg Config[T]) *Pool[T] {
	del := cfg.destroy()
	switch cfg.Tracker {
	case TrackerQueue:
		tr := tracker.NewQueueTracker[T](cfg.Level, cfg.QueueCapacity)
		return finalize[T](tr,
			func(v *T) recycle.Handle[T] {
				tok := tr.Add(v)
				return recycle.NewHandleR1(v, tok, tracker.QueueRecycle[T])
			},
			func() (recycle.Handle[T], bool) {
				v, tok, ok := tr.Acquire()
				if !ok {
					return recycle.Handle[T]{}, false
				}
				return recycle.NewHandleR1(v, tok, tracker.QueueRecycle[T]), true
			},
			func() { applyDeletion(cfg.Deletion, tr, del) },
		)
	default:
		tr := tracker.NewArrayTracker[T](cfg.Level)
		return finalize[T](tr,
			func(v *T) recycle.Handle[T] {
				tok := tr.Add(v)
				return recycle.NewHandleR1(v, tok, tracker.ArrayRecycle[T])
			},
			func() (recycle.Handle[T], bool) {
				v, tok, ok := tr.Acquire()
				if !ok {
					return recycle.Handle[T]{}, false
				}
				return recycle.NewHandleR1(v, tok, tracker.ArrayRecycle[T]), true
			},
			func() { applyDeletion(cfg.Deletion, tr, del) },
		)
	}
}

// NewR2 constructs a Pool using the info-in-container recycling strategy
// (spec.md §4.2, R2): buffers are wrapped in a recycle.Container[T] which
// carries the token, so T itself may be any movable type.
func NewR2[T any](cfg Config[T]) *Pool[T] {
	del := cfg.destroy()
	containerDel := func(c *recycle.Container[T]) { del(&c.Payload) }
	switch cfg.Tracker {
	case TrackerQueue:
		tr := tracker.NewQueueTracker[recycle.Container[T]](cfg.Level, cfg.QueueCapacity)
		recycleFn := func(tok token.InfoToken, payload *T) {
			tracker.QueueRecycle(tok, recycle.ContainerFromPayload(payload))
		}
		return finalize[T](tr,
			func(v *T) recycle.Handle[T] {
				c := recycle.NewContainer[T]()
				c.Payload = *v
				tok := tr.Add(c)
				return recycle.NewHandleR2(c, tok, recycleFn)
			},
			func() (recycle.Handle[T], bool) {
				c, tok, ok := tr.Acquire()
				if !ok {
					return recycle.Handle[T]{}, false
				}
				return recycle.NewHandleR2(c, tok, recycleFn), true
			},
			func() { applyDeletion(cfg.Deletion, tr, containerDel) },
		)
	default:
		tr := tracker.NewArrayTracker[recycle.Container[T]](cfg.Level)
		recycleFn := func(tok token.InfoToken, payload *T) {
			tracker.ArrayRecycle(tok, recycle.ContainerFromPayload(payload))
		}
		return finalize[T](tr,
			func(v *T) recycle.Handle[T] {
				c := recycle.NewContainer[T]()
				c.Payload = *v
				tok := tr.Add(c)
				return recycle.NewHandleR2(c, tok, recycleFn)
			},
			func() (recycle.Handle[T], bool) {
				c, tok, ok := tr.Acquire()
				if !ok {
					return recycle.Handle[T]{}, false
				}
				return recycle.NewHandleR2(c, tok, recycleFn), true
			},
			func() { applyDeletion(cfg.Deletion, tr, containerDel) },
		)
	}
}

// NewR3 constructs a Pool using the info-in-payload recycling strategy
// (spec.md §4.2, R3): T embeds its own token via the recycle.Tokened
// interface, implemented on *T (PT).
func NewR3[T any, PT interface {
	*T
	recycle.Tokened
}](cfg Config[T]) *Pool[T] {
	del := cfg.destroy()
	switch cfg.Tracker {
	case TrackerQueue:
		tr := tracker.NewQueueTracker[T](cfg.Level, cfg.QueueCapacity)
		return finalize[T](tr,
			func(v *T) recycle.Handle[T] {
				tok := tr.Add(v)
				return recycle.NewHandleR3[T, PT](v, tok, tracker.QueueRecycle[T])
			},
			func() (recycle.Handle[T], bool) {
				v, tok, ok := tr.Acquire()
				if !ok {
					return recycle.Handle[T]{}, false
				}
				return recycle.NewHandleR3[T, PT](v, tok, tracker.QueueRecycle[T]), true
			},
			func() { applyDeletion(cfg.Deletion, tr, del) },
		)
	default:
		tr := tracker.NewArrayTracker[T](cfg.Level)
		return finalize[T](tr,
			func(v *T) recycle.Handle[T] {
				tok := tr.Add(v)
				return recycle.NewHandleR3[T, PT](v, tok, tracker.ArrayRecycle[T])
			},
			func() (recycle.Handle[T], bool) {
				v, tok, ok := tr.Acquire()
				if !ok {
					return recycle.Handle[T]{}, false
				}
				return recycle.NewHandleR3[T, PT](v, tok, tracker.ArrayRecycle[T]), true
			},
			func() { applyDeletion(cfg.Deletion, tr, del) },
		)
	}
}

func applyDeletion[T any](kind DeletionKind, tr interface {
	Sweep(del func(*T)) int
}, del func(*T)) {
	var policy delpolicy.Policy[T]
	if kind == DeletionCollect {
		policy = delpolicy.Collect[T]()
	} else {
		policy = delpolicy.Complain[T]()
	}
	policy(tr, del)
}
