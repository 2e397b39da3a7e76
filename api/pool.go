// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract pooling contract implemented by pool.Pool[T],
// decoupled from its concrete recycling strategy so callers can depend on
// the interface rather than a specific constructor's return type.

package api

// BufferPool is the public contract a reusable buffer pool satisfies,
// regardless of which Mgmt tracker or Rec strategy backs it.
type BufferPool[T any] interface {
	// AddBuffer registers a newly allocated buffer with the pool and
	// returns it as an in-use handle.
	AddBuffer(v *T) Handle[T]

	// GetUnused returns a handle to a currently-free buffer, or ok=false
	// if none is available right now.
	GetUnused() (Handle[T], bool)

	// Close destroys every currently-free buffer and applies the pool's
	// deletion policy to whatever remains outstanding.
	Close()
}

// Handle is the minimal shape api.BufferPool exposes for an acquired
// buffer, satisfied by *recycle.Handle[T] without api needing to import the
// recycle package's concrete type.
type Handle[T any] interface {
	Get() *T
	Release()
}
