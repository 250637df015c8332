// Package selection implements the Coordinator's participant-selection
// policy for a round.
package selection

import (
	"math"
	"math/rand"
)

// Selector picks a subset of candidate participant ids for the next round.
// Implementations must satisfy the size law in spec.md §4.2:
//
//	k = clamp(1, ceil(len(candidates) * fraction), len(candidates))
//
// Determinism is not required.
type Selector interface {
	Select(candidates []string, fraction float64) []string
}

// NumToSelect computes the size law from spec.md §4.2. It panics if
// candidates is empty or fraction is outside (0, 1], since both are
// admission-control invariants the caller (the Coordinator) must already
// have established before selecting.
func NumToSelect(numCandidates int, fraction float64) int {
	if numCandidates <= 0 {
		panic("selection: no candidates to select from")
	}
	if fraction <= 0 || fraction > 1 {
		panic("selection: fraction must be in (0, 1]")
	}

	k := int(math.Ceil(float64(numCandidates) * fraction))
	if k < 1 {
		k = 1
	}
	if k > numCandidates {
		k = numCandidates
	}
	return k
}

// Random is the reference Selector: uniform sampling without replacement.
type Random struct{}

// Select implements Selector by shuffling candidates and truncating to
// NumToSelect(len(candidates), fraction). The result order is random; the
// Coordinator uses it as the resulting Round's insertion order.
func (Random) Select(candidates []string, fraction float64) []string {
	k := NumToSelect(len(candidates), fraction)

	pool := make([]string, len(candidates))
	copy(pool, candidates)

	// Partial Fisher-Yates: only shuffle the first k slots, since that's
	// all that's needed for a uniform sample without replacement.
	for i := 0; i < k; i++ {
		j := i + rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	selected := make([]string, k)
	copy(selected, pool[:k])
	return selected
}
