package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xainag/xain/tensor"
)

func TestWriteThenRead(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	defer b.Cleanup()

	weights := tensor.List{
		{Dtype: "f64", Shape: []int64{2, 2}, Data: []float64{1, 2, 3, 4}},
	}
	require.NoError(t, b.Write(context.Background(), 3, weights))

	got, err := b.Read(3)
	require.NoError(t, err)
	require.Equal(t, weights, got)
}

func TestReadMissingRoundErrors(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	defer b.Cleanup()

	_, err = b.Read(99)
	require.Error(t, err)
}

func TestWriteOverwritesPriorValueForSameRound(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	defer b.Cleanup()

	first := tensor.List{{Dtype: "f64", Shape: []int64{1}, Data: []float64{1}}}
	second := tensor.List{{Dtype: "f64", Shape: []int64{1}, Data: []float64{2}}}

	require.NoError(t, b.Write(context.Background(), 1, first))
	require.NoError(t, b.Write(context.Background(), 1, second))

	got, err := b.Read(1)
	require.NoError(t, err)
	require.Equal(t, second, got)
}
