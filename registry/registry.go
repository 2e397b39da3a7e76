// File: registry/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package registry implements the process-wide deferred-reclamation
// registry (spec.md §4.3, the Reg component): when a pool using the D2
// "collect garbage" deletion policy is closed while buffers are still
// outstanding, its tracker is handed here instead of destroyed, and a
// background reaper periodically retries sweeping it to zero. Grounded on
// the original's tGarbageFromDeletedBufferPools
// (_examples/original_source/tGarbageFromDeletedBufferPools.h) and, for the
// reaper goroutine's lifecycle and affinity handling, on the teacher's
// singleton/worker patterns.
package registry

import (
	"sync"
	"time"

	"github.com/momentics/bufpool/api"
	"github.com/momentics/bufpool/internal/affinity"
	"github.com/momentics/bufpool/internal/diag"
)

var _ api.GracefulShutdown = (*Registry)(nil)

// node is a type-erased handle to one abandoned tracker. trySweep retries
// destruction of every still-free buffer and reports how many remain
// outstanding; once it returns zero the node is dropped from the registry.
type node struct {
	trySweep func() int
}

// NewNode erases sweeper's type parameter so the Registry can hold trackers
// for arbitrarily many distinct payload types in one slice. del is the
// payload destructor the pool was configured with.
func NewNode[T any](sweeper interface{ Sweep(func(*T)) int }, del func(*T)) *node {
	return &node{trySweep: func() int { return sweeper.Sweep(del) }}
}

// Registry is the process-wide collection of abandoned trackers awaiting
// final reclamation. The zero value is not usable; use Default or New.
type Registry struct {
	mu       sync.Mutex
	pending  []*node
	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide singleton registry, constructing it (and
// starting its background reaper) on first use — mirroring the original's
// Meyers-singleton-style global instance.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
		defaultReg.StartReaper(5 * time.Second)
	})
	return defaultReg
}

// New constructs a standalone registry; most callers want Default.
func New() *Registry {
	return &Registry{stopCh: make(chan struct{})}
}

// Register hands a tracker whose pool has been closed with buffers still
// outstanding to the registry for later reclamation.
func (r *Registry) Register(n *node) {
	r.mu.Lock()
	r.pending = append(r.pending, n)
	r.mu.Unlock()
	diag.Debugf("registry: tracker registered for deferred reclamation")
}

// Reap retries every pending node once, dropping the ones that have reached
// zero outstanding buffers, and returns how many nodes remain.
func (r *Registry) Reap() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.pending[:0]
	for _, n := range r.pending {
		if remaining := n.trySweep(); remaining > 0 {
			kept = append(kept, n)
		}
	}
	r.pending = kept
	return len(r.pending)
}

// Len reports how many trackers are currently pending reclamation.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// StartReaper launches a background goroutine that calls Reap every
// interval until Shutdown is called. Each call starts another reaper
// goroutine; Shutdown stops all of them.
func (r *Registry) StartReaper(interval time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := affinity.PinCurrentThread(0); err != nil {
			diag.Debugf("registry: reaper affinity pin skipped: %v", err)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ticker.C:
				if n := r.Reap(); n > 0 {
					diag.Debugf("registry: %d tracker(s) still pending reclamation", n)
				}
			}
		}
	}()
}

// Shutdown stops the background reaper, waits for it to exit, then performs
// one final Reap and logs a warning naming the residual count if any
// trackers are still pending (spec.md §4.4, §7 "Registry non-empty at
// shutdown"). Shutdown always succeeds; it returns error to satisfy
// api.GracefulShutdown.
func (r *Registry) Shutdown() error {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()

	if remaining := r.Reap(); remaining > 0 {
		diag.WithFields(map[string]any{"residual": remaining}).
			Warnf("registry: shutting down with %d tracker(s) still pending reclamation", remaining)
	}
	return nil
}
