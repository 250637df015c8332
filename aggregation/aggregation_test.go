package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xainag/xain/tensor"
)

func single(v ...float64) tensor.List {
	return tensor.List{{Dtype: "f64", Shape: []int64{int64(len(v))}, Data: v}}
}

func TestFedAvgSingleInputEqualsInput(t *testing.T) {
	agg := FedAvg{}
	in := single(1, 2, 3, 4)

	out, err := agg.Aggregate([]tensor.List{in}, []uint64{1})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, out[0].Data)
}

func TestFedAvgWeightedBySampleCount(t *testing.T) {
	agg := FedAvg{}
	a := single(0, 0)
	b := single(10, 10)

	out, err := agg.Aggregate([]tensor.List{a, b}, []uint64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{5, 5}, out[0].Data)

	out, err = agg.Aggregate([]tensor.List{a, b}, []uint64{3, 1})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2.5, 2.5}, out[0].Data, 1e-9)
}

func TestFedAvgEmptyInput(t *testing.T) {
	_, err := (FedAvg{}).Aggregate(nil, nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestFedAvgShapeMismatch(t *testing.T) {
	a := single(1, 2)
	b := single(1, 2, 3)

	_, err := (FedAvg{}).Aggregate([]tensor.List{a, b}, []uint64{1, 1})
	require.Error(t, err)
}
