// File: delpolicy/delpolicy_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package delpolicy

import (
	"testing"

	"github.com/momentics/bufpool/registry"
	"github.com/momentics/bufpool/tracker"
)

func TestComplainDestroysFreeBuffersRegardlessOfResidual(t *testing.T) {
	tr := tracker.NewArrayTracker[int](tracker.LevelNone)
	free := new(int)
	inUse := new(int)
	freeTok := tr.Add(free)
	_ = tr.Add(inUse)
	tracker.ArrayRecycle(freeTok, free)

	var destroyed int
	Complain[int]()(tr, func(*int) { destroyed++ })

	if destroyed != 1 {
		t.Fatalf("expected 1 destroyed buffer, got %d", destroyed)
	}
}

func TestRegistryKeepsTrackerPendingWhileBuffersOutstanding(t *testing.T) {
	reg := registry.New()
	tr := tracker.NewArrayTracker[int](tracker.LevelNone)
	_ = tr.Add(new(int)) // never recycled: stays outstanding

	// Exercise the registration path directly against a private registry so
	// the test does not depend on process-wide singleton state.
	reg.Register(registry.NewNode[int](tr, func(*int) {}))

	if reg.Len() != 1 {
		t.Fatalf("expected 1 pending tracker, got %d", reg.Len())
	}
	if remaining := reg.Reap(); remaining != 1 {
		t.Fatalf("expected tracker to remain pending (buffer still outstanding), got %d", remaining)
	}
}

func TestCollectDoesNotRegisterWhenFullyReclaimed(t *testing.T) {
	tr := tracker.NewArrayTracker[int](tracker.LevelNone)
	v := new(int)
	tok := tr.Add(v)
	tracker.ArrayRecycle(tok, v)

	before := registry.Default().Len()
	var destroyed int
	Collect[int]()(tr, func(*int) { destroyed++ })

	if destroyed != 1 {
		t.Fatalf("expected the free buffer to be destroyed immediately, got %d", destroyed)
	}
	if after := registry.Default().Len(); after != before {
		t.Fatalf("expected no tracker registered, pending went from %d to %d", before, after)
	}
}
