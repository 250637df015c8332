// Package round implements the per-round update collector (spec.md §4.3):
// it tracks which participants were selected for a round and the local
// updates they have submitted, enforcing at most one update per
// participant.
package round

import (
	"errors"
	"sync"

	"github.com/xainag/xain/tensor"
)

// ErrDuplicatedUpdate is returned by Submit when the participant already
// has an update recorded for this round.
var ErrDuplicatedUpdate = errors.New("round: participant already submitted an update this round")

// Update is a single participant's contribution to a round: the updated
// weights, the number of samples it trained on (the weight used for
// weighted averaging), and optional per-round metrics the core never
// interprets (spec.md §3, preserved per SPEC_FULL.md's supplemented
// features).
type Update struct {
	ParticipantID string
	Weights       tensor.List
	SampleCount   uint64
	Metrics       map[string][]float64
}

// Round manages the state of a single global training round. All
// operations are serialized by a mutex independent of the participant
// registry's mutex (spec.md §4.3, §5).
type Round struct {
	mu sync.Mutex

	selected []string
	index    map[string]int // participant id -> position in selected, for O(1) remove
	updates  map[string]Update
}

// New creates a Round for the given selected participant ids, preserving
// their insertion order for deterministic aggregation ordering.
func New(selected []string) *Round {
	r := &Round{
		selected: append([]string(nil), selected...),
		index:    make(map[string]int, len(selected)),
		updates:  make(map[string]Update),
	}
	for i, id := range r.selected {
		r.index[id] = i
	}
	return r
}

// Selected returns a snapshot of the participants selected for this round,
// in insertion order.
func (r *Round) Selected() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.selected))
	copy(out, r.selected)
	return out
}

// AddSelected extends participants_selected, preserving insertion order.
// No deduplication check is performed, matching spec.md §4.3.
func (r *Round) AddSelected(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		r.index[id] = len(r.selected)
		r.selected = append(r.selected, id)
	}
}

// RemoveSelected removes id from participants_selected if present; silent
// no-op otherwise.
func (r *Round) RemoveSelected(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return
	}

	r.selected = append(r.selected[:pos], r.selected[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.selected); i++ {
		r.index[r.selected[i]] = i
	}
}

// Submit records a participant's update. It returns ErrDuplicatedUpdate if
// the participant already has one recorded this round. Submit does not
// check membership in participants_selected; that check is the caller's
// (the Coordinator's) responsibility (spec.md §4.3).
func (r *Round) Submit(update Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.updates[update.ParticipantID]; ok {
		return ErrDuplicatedUpdate
	}
	r.updates[update.ParticipantID] = update
	return nil
}

// IsFinished reports whether every selected participant has a recorded
// update.
func (r *Round) IsFinished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.isFinishedLocked()
}

func (r *Round) isFinishedLocked() bool {
	for _, id := range r.selected {
		if _, ok := r.updates[id]; !ok {
			return false
		}
	}
	return true
}

// Snapshot returns the weights and sample counts of every selected
// participant's update, in participants_selected order. Callers must only
// invoke Snapshot once IsFinished is true; behavior is otherwise
// unspecified, per spec.md §4.3 (here: it panics on a missing entry, which
// can only happen if the caller skipped the IsFinished check).
func (r *Round) Snapshot() ([]tensor.List, []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	weights := make([]tensor.List, 0, len(r.selected))
	counts := make([]uint64, 0, len(r.selected))
	for _, id := range r.selected {
		u, ok := r.updates[id]
		if !ok {
			panic("round: Snapshot called before IsFinished; missing update for " + id)
		}
		weights = append(weights, u.Weights)
		counts = append(counts, u.SampleCount)
	}
	return weights, counts
}

// HasUpdate reports whether id already submitted an update this round.
func (r *Round) HasUpdate(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.updates[id]
	return ok
}

// IsSelected reports whether id is among participants_selected.
func (r *Round) IsSelected(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.index[id]
	return ok
}
