package round

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xainag/xain/tensor"
)

func TestSubmitAndIsFinished(t *testing.T) {
	r := New([]string{"p1", "p2"})
	require.False(t, r.IsFinished())

	require.NoError(t, r.Submit(Update{ParticipantID: "p1", SampleCount: 10}))
	require.False(t, r.IsFinished())

	require.NoError(t, r.Submit(Update{ParticipantID: "p2", SampleCount: 20}))
	require.True(t, r.IsFinished())
}

func TestSubmitDuplicateRejected(t *testing.T) {
	r := New([]string{"p1"})
	require.NoError(t, r.Submit(Update{ParticipantID: "p1", SampleCount: 1}))

	err := r.Submit(Update{ParticipantID: "p1", SampleCount: 2})
	require.ErrorIs(t, err, ErrDuplicatedUpdate)
	require.True(t, r.HasUpdate("p1"))
}

func TestSnapshotPreservesSelectionOrder(t *testing.T) {
	r := New([]string{"c", "a", "b"})
	require.NoError(t, r.Submit(Update{ParticipantID: "a", SampleCount: 2, Weights: tensor.List{{Data: []float64{2}}}}))
	require.NoError(t, r.Submit(Update{ParticipantID: "b", SampleCount: 3, Weights: tensor.List{{Data: []float64{3}}}}))
	require.NoError(t, r.Submit(Update{ParticipantID: "c", SampleCount: 1, Weights: tensor.List{{Data: []float64{1}}}}))

	require.True(t, r.IsFinished())
	weights, counts := r.Snapshot()

	require.Equal(t, []uint64{1, 2, 3}, counts)
	require.Equal(t, float64(1), weights[0][0].Data[0])
	require.Equal(t, float64(2), weights[1][0].Data[0])
	require.Equal(t, float64(3), weights[2][0].Data[0])
}

func TestAddAndRemoveSelected(t *testing.T) {
	r := New([]string{"p1"})
	r.AddSelected([]string{"p2", "p3"})
	require.Equal(t, []string{"p1", "p2", "p3"}, r.Selected())

	r.RemoveSelected("p2")
	require.Equal(t, []string{"p1", "p3"}, r.Selected())

	r.RemoveSelected("ghost")
	require.Equal(t, []string{"p1", "p3"}, r.Selected())
}

func TestIsSelected(t *testing.T) {
	r := New([]string{"p1"})
	require.True(t, r.IsSelected("p1"))
	require.False(t, r.IsSelected("p2"))
}
