// Package participants implements the Coordinator's registry of connected
// participants and their heartbeat deadlines.
package participants

import (
	"sync"
	"time"

	"github.com/xainag/xain/common/logging"
)

var logger = logging.GetLogger("participants")

// Record describes a single connected participant.
type Record struct {
	// ID is the opaque identifier the participant rendezvoused with.
	ID string
	// Deadline is the absolute time beyond which the participant is
	// considered dead if no heartbeat has refreshed it.
	Deadline time.Time
}

// Registry is a thread-safe set of connected participants, each carrying a
// heartbeat deadline. All operations are serialized by a single mutex held
// for the entire body, per the locking discipline in spec.md §4.1.
type Registry struct {
	mu sync.Mutex

	heartbeatPeriod  time.Duration
	heartbeatTimeout time.Duration

	byID map[string]*Record
}

// New constructs an empty Registry. heartbeatPeriod and heartbeatTimeout are
// the configured values from which every new or refreshed deadline is
// computed (now + heartbeatPeriod + heartbeatTimeout).
func New(heartbeatPeriod, heartbeatTimeout time.Duration) *Registry {
	return &Registry{
		heartbeatPeriod:  heartbeatPeriod,
		heartbeatTimeout: heartbeatTimeout,
		byID:             make(map[string]*Record),
	}
}

func (r *Registry) deadline() time.Time {
	return time.Now().Add(r.heartbeatPeriod + r.heartbeatTimeout)
}

// Add inserts or replaces the record for id, setting its deadline to
// now + heartbeatPeriod + heartbeatTimeout. Idempotent on key.
func (r *Registry) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[id] = &Record{ID: id, Deadline: r.deadline()}
	logger.Debug("participant added", "participant_id", id, "size", len(r.byID))
}

// Remove deletes id if present; no-op otherwise.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	logger.Debug("participant removed", "participant_id", id, "size", len(r.byID))
}

// Refresh updates the deadline of an existing id to
// now + heartbeatPeriod + heartbeatTimeout. The behavior is undefined (it
// panics) if id is absent; callers must check Contains first.
func (r *Registry) Refresh(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		panic("participants: refresh of unknown id " + id)
	}
	rec.Deadline = r.deadline()
}

// Contains reports whether id is currently registered.
func (r *Registry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byID[id]
	return ok
}

// IDs returns a snapshot of all registered participant ids. Iteration order
// is unspecified.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids
}

// Size returns the number of registered participants.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byID)
}

// NextExpiration returns the minimum deadline across all records, or
// now + heartbeatPeriod + heartbeatTimeout if the registry is empty. The
// caller (the heartbeat monitor) must not hold any lock while sleeping on
// the result; this method itself never sleeps.
func (r *Registry) NextExpiration() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.byID) == 0 {
		return r.deadline()
	}

	var min time.Time
	for _, rec := range r.byID {
		if min.IsZero() || rec.Deadline.Before(min) {
			min = rec.Deadline
		}
	}
	return min
}

// Expired returns the ids of all participants whose deadline precedes now.
func (r *Registry) Expired(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []string
	for id, rec := range r.byID {
		if rec.Deadline.Before(now) {
			expired = append(expired, id)
		}
	}
	return expired
}
