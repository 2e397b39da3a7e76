// File: registry/registry_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package registry

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/momentics/bufpool/internal/diag"
	"github.com/momentics/bufpool/tracker"
)

type countingSweeper struct {
	outstanding int
}

func (c *countingSweeper) Sweep(del func(*int)) int {
	return c.outstanding
}

func TestRegisterAndReapDropsSatisfiedNodes(t *testing.T) {
	reg := New()
	s := &countingSweeper{outstanding: 1}
	reg.Register(NewNode[int](s, func(*int) {}))

	if reg.Len() != 1 {
		t.Fatalf("expected 1 pending node, got %d", reg.Len())
	}
	if remaining := reg.Reap(); remaining != 1 {
		t.Fatalf("expected node to remain while outstanding > 0, got %d", remaining)
	}

	s.outstanding = 0
	if remaining := reg.Reap(); remaining != 0 {
		t.Fatalf("expected node to be dropped once outstanding reaches 0, got %d", remaining)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected registry to be empty, got %d", reg.Len())
	}
}

func TestRegistryWithRealArrayTracker(t *testing.T) {
	reg := New()
	tr := tracker.NewArrayTracker[int](tracker.LevelNone)
	v := new(int)
	tok := tr.Add(v)
	reg.Register(NewNode[int](tr, func(*int) {}))

	if remaining := reg.Reap(); remaining != 1 {
		t.Fatalf("expected buffer still outstanding, got %d", remaining)
	}

	tracker.ArrayRecycle(tok, v)
	if remaining := reg.Reap(); remaining != 0 {
		t.Fatalf("expected buffer to be reclaimed after recycle, got %d", remaining)
	}
}

func TestStartReaperAndShutdown(t *testing.T) {
	reg := New()
	s := &countingSweeper{outstanding: 1}
	reg.Register(NewNode[int](s, func(*int) {}))

	reg.StartReaper(10 * time.Millisecond)
	s.outstanding = 0

	deadline := time.After(2 * time.Second)
	for reg.Len() > 0 {
		select {
		case <-deadline:
			t.Fatal("reaper did not reclaim the node in time")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := reg.Shutdown(); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}

func TestShutdownReapsOnceAndWarnsOnResidual(t *testing.T) {
	var buf bytes.Buffer
	diag.SetOutput(&buf)
	defer diag.SetOutput(os.Stderr)

	reg := New()
	s := &countingSweeper{outstanding: 1}
	reg.Register(NewNode[int](s, func(*int) {}))

	if err := reg.Shutdown(); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected the residual node to remain pending, got %d", reg.Len())
	}
	if !strings.Contains(buf.String(), "1 tracker(s)") {
		t.Fatalf("expected shutdown to warn naming the residual count, got %q", buf.String())
	}
}

func TestShutdownReapsCleanlyWithNoResidual(t *testing.T) {
	var buf bytes.Buffer
	diag.SetOutput(&buf)
	defer diag.SetOutput(os.Stderr)

	reg := New()
	s := &countingSweeper{outstanding: 0}
	reg.Register(NewNode[int](s, func(*int) {}))

	if err := reg.Shutdown(); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected the satisfied node to be reaped, got %d", reg.Len())
	}
	if strings.Contains(buf.String(), "pending reclamation") {
		t.Fatalf("expected no residual warning when nothing remains, got %q", buf.String())
	}
}

func TestDefaultReturnsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Fatal("expected Default() to return the same instance every call")
	}
}
