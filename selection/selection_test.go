package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumToSelectClamps(t *testing.T) {
	require.Equal(t, 1, NumToSelect(1, 0.01))
	require.Equal(t, 10, NumToSelect(10, 1.0))
	require.Equal(t, 5, NumToSelect(10, 0.5))
	require.Equal(t, 1, NumToSelect(3, 0.1))
}

func TestRandomSelectSizeLaw(t *testing.T) {
	candidates := make([]string, 17)
	for i := range candidates {
		candidates[i] = string(rune('a' + i))
	}

	for _, fraction := range []float64{0.1, 0.3, 0.5, 0.9, 1.0} {
		selected := (Random{}).Select(candidates, fraction)
		require.Equal(t, NumToSelect(len(candidates), fraction), len(selected))

		seen := make(map[string]bool, len(selected))
		for _, id := range selected {
			require.False(t, seen[id], "selection without replacement must not repeat ids")
			seen[id] = true
		}
	}
}

func TestRandomSelectAllWhenFractionIsOne(t *testing.T) {
	candidates := []string{"p1", "p2", "p3"}
	selected := (Random{}).Select(candidates, 1.0)
	require.ElementsMatch(t, candidates, selected)
}
