package heartbeat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xainag/xain/participants"
)

type fakeCoordinator struct {
	registry *participants.Registry

	mu      sync.Mutex
	removed []string
}

func (f *fakeCoordinator) Registry() *participants.Registry { return f.registry }

func (f *fakeCoordinator) RemoveParticipant(id string) {
	f.registry.Remove(id)
	f.mu.Lock()
	f.removed = append(f.removed, id)
	f.mu.Unlock()
}

func (f *fakeCoordinator) removedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.removed))
	copy(out, f.removed)
	return out
}

// TestP7HeartbeatEviction mirrors property P7: a participant past its
// deadline is removed within one monitor cycle.
func TestP7HeartbeatEviction(t *testing.T) {
	registry := participants.New(0, 0) // deadline == now, so Add() already expires it
	registry.Add("p1")

	fc := &fakeCoordinator{registry: registry}
	m := New(fc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	require.Eventually(t, func() bool {
		return len(fc.removedIDs()) == 1
	}, time.Second, time.Millisecond, "monitor should evict the expired participant")

	require.False(t, registry.Contains("p1"))
}

func TestStopTerminatesLoop(t *testing.T) {
	registry := participants.New(time.Hour, time.Hour)
	fc := &fakeCoordinator{registry: registry}
	m := New(fc)

	m.Start(context.Background())
	m.Stop() // must return, not hang

	require.Empty(t, fc.removedIDs())
}
