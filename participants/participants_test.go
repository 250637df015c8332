package participants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddIdempotent(t *testing.T) {
	r := New(10*time.Second, 5*time.Second)

	r.Add("p1")
	require.Equal(t, 1, r.Size())

	r.Add("p1")
	require.Equal(t, 1, r.Size(), "re-adding an already-present id must not grow the registry")
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	r := New(10*time.Second, 5*time.Second)
	require.NotPanics(t, func() { r.Remove("ghost") })
	require.Equal(t, 0, r.Size())
}

func TestContainsAndIDs(t *testing.T) {
	r := New(10*time.Second, 5*time.Second)
	r.Add("p1")
	r.Add("p2")

	require.True(t, r.Contains("p1"))
	require.False(t, r.Contains("p3"))
	require.ElementsMatch(t, []string{"p1", "p2"}, r.IDs())
}

func TestRefreshExtendsDeadline(t *testing.T) {
	r := New(10*time.Second, 5*time.Second)
	r.Add("p1")

	before := r.NextExpiration()
	time.Sleep(time.Millisecond)
	r.Refresh("p1")
	after := r.NextExpiration()

	require.True(t, after.After(before) || after.Equal(before))
}

func TestNextExpirationEmptyRegistry(t *testing.T) {
	r := New(10*time.Second, 5*time.Second)
	before := time.Now()
	exp := r.NextExpiration()
	require.True(t, exp.After(before.Add(14*time.Second)))
}

func TestExpired(t *testing.T) {
	r := New(0, 0)
	r.Add("p1")

	time.Sleep(time.Millisecond)
	expired := r.Expired(time.Now())
	require.Contains(t, expired, "p1")
}
