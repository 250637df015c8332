// Package heartbeat implements the background task that evicts
// participants whose heartbeat deadline has elapsed (spec.md §4.6).
package heartbeat

import (
	"context"
	"time"

	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/participants"
)

var logger = logging.GetLogger("heartbeat")

const epsilon = 10 * time.Millisecond

// Coordinator is the subset of *coordinator.Coordinator the monitor needs.
// Declaring it here (rather than importing package coordinator directly)
// keeps the dependency direction the spec's component table describes:
// C6 reads C1 and calls C5, not the other way around.
type Coordinator interface {
	Registry() *participants.Registry
	RemoveParticipant(id string)
}

// Monitor periodically evicts participants whose deadline has elapsed. It
// holds no locks across its sleep (spec.md §5 "suspension points").
type Monitor struct {
	coordinator Coordinator

	stopCh chan struct{}
	doneCh chan struct{}
}

// New constructs a Monitor for the given Coordinator. Call Start to begin
// the background loop.
func New(c Coordinator) *Monitor {
	return &Monitor{
		coordinator: c,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the monitor loop in a new goroutine. It returns immediately.
func (m *Monitor) Start(ctx context.Context) {
	go m.run(ctx)
}

// Stop signals the monitor to exit and waits for it to do so.
func (m *Monitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.doneCh)

	logger.Info("heartbeat monitor starting")
	registry := m.coordinator.Registry()

	for {
		now := time.Now()
		for _, id := range registry.Expired(now) {
			logger.Info("evicting expired participant", "participant_id", id)
			m.coordinator.RemoveParticipant(id)
		}

		sleepUntil := registry.NextExpiration()
		if min := now.Add(epsilon); sleepUntil.Before(min) {
			sleepUntil = min
		}

		timer := time.NewTimer(time.Until(sleepUntil))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logger.Info("heartbeat monitor stopping: context cancelled")
			return
		case <-m.stopCh:
			timer.Stop()
			logger.Info("heartbeat monitor stopping")
			return
		}
	}
}
