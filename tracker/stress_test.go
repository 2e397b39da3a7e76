// File: tracker/stress_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stress-tests the universal "a buffer is claimed by at most one acquirer"
// property (spec.md §8, property 2) under sustained add/acquire/recycle
// churn, using testify's assertions for the pass/fail bookkeeping.
package tracker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayTrackerStressNoDoubleAcquire(t *testing.T) {
	const nBuffers = 128
	const nWorkers = 16
	const roundsPerWorker = 2000

	tr := NewArrayTracker[int32](LevelFull)
	inUse := make([]atomic.Bool, nBuffers)
	bufs := make([]*int32, nBuffers)
	for i := range bufs {
		idx := int32(i)
		bufs[i] = &idx
		tok := tr.Add(bufs[i])
		ArrayRecycle(tok, bufs[i])
	}

	var violations atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < roundsPerWorker; r++ {
				v, tok, ok := tr.Acquire()
				if !ok {
					continue
				}
				idx := *v
				if !inUse[idx].CompareAndSwap(false, true) {
					violations.Add(1)
				}
				inUse[idx].Store(false)
				ArrayRecycle(tok, v)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, violations.Load(), "no buffer should ever be observed acquired twice concurrently")
	assert.Equal(t, int64(0), violations.Load())
}

func TestQueueTrackerStressNoDoubleAcquire(t *testing.T) {
	const nBuffers = 128
	const nWorkers = 16
	const roundsPerWorker = 2000

	tr := NewQueueTracker[int32](LevelFull, nBuffers)
	inUse := make([]atomic.Bool, nBuffers)
	bufs := make([]*int32, nBuffers)
	for i := range bufs {
		idx := int32(i)
		bufs[i] = &idx
		tok := tr.Add(bufs[i])
		QueueRecycle(tok, bufs[i])
	}

	var violations atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < roundsPerWorker; r++ {
				v, tok, ok := tr.Acquire()
				if !ok {
					continue
				}
				idx := *v
				if !inUse[idx].CompareAndSwap(false, true) {
					violations.Add(1)
				}
				inUse[idx].Store(false)
				QueueRecycle(tok, v)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, violations.Load(), "no buffer should ever be observed acquired twice concurrently")
}
