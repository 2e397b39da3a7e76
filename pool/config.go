// File: pool/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package pool

import (
	"github.com/momentics/bufpool/api"
	"github.com/momentics/bufpool/tracker"
)

// TrackerKind selects the Mgmt policy a Pool uses internally (spec.md §4.1).
type TrackerKind int

const (
	// TrackerArray scans a chunked array of slots to find a free buffer.
	TrackerArray TrackerKind = iota
	// TrackerQueue pops a free buffer off a free-list in O(1).
	TrackerQueue
)

// DeletionKind selects the Del policy a Pool applies when Close is called
// with buffers still outstanding (spec.md §4.3).
type DeletionKind int

const (
	// DeletionComplain destroys every free buffer and logs an error if any
	// remain outstanding.
	DeletionComplain DeletionKind = iota
	// DeletionCollect defers destruction of outstanding buffers' tracker
	// to the process-wide reclamation registry.
	DeletionCollect
)

// Config gathers everything needed to construct a Pool[T]: concurrency
// level, which tracker and deletion policy to use, a payload destructor,
// and (for TrackerQueue) an upper bound on the number of buffers ever
// registered with AddBuffer.
type Config[T any] struct {
	Level         tracker.Level
	Tracker       TrackerKind
	Deletion      DeletionKind
	Destroy       func(*T)
	QueueCapacity int
}

func (c Config[T]) destroy() func(*T) {
	if c.Destroy != nil {
		return c.Destroy
	}
	return func(*T) {}
}

// validate reports the runtime-checkable tracker/recycler capability
// mismatches spec.md §7 calls "policy/type-capability mismatch": the ones
// Go's type system cannot reject at compile time because they depend on a
// Config value rather than T's shape. Compile-time-checkable mismatches
// (R2/R3's required struct/interface shape) are instead rejected by the
// NewR2/NewR3 type parameters themselves.
func (c Config[T]) validate() error {
	if c.Tracker == TrackerQueue && c.QueueCapacity <= 0 {
		return api.NewError(api.ErrCodeInvalidArgument,
			"TrackerQueue requires a positive QueueCapacity").
			WithContext("queueCapacity", c.QueueCapacity)
	}
	if c.Level < tracker.LevelNone || c.Level > tracker.LevelFull {
		return api.NewError(api.ErrCodeInvalidArgument, "unknown concurrency Level").
			WithContext("level", int(c.Level))
	}
	if c.Tracker != TrackerArray && c.Tracker != TrackerQueue {
		return api.NewError(api.ErrCodeInvalidArgument, "unknown TrackerKind").
			WithContext("tracker", int(c.Tracker))
	}
	if c.Deletion != DeletionComplain && c.Deletion != DeletionCollect {
		return api.NewError(api.ErrCodeInvalidArgument, "unknown DeletionKind").
			WithContext("deletion", int(c.Deletion))
	}
	return nil
}
