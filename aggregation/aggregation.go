// Package aggregation implements the pluggable aggregation step (spec.md
// §4.4): folding the local updates collected for a round into a new global
// weight vector.
package aggregation

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/xainag/xain/tensor"
)

// Aggregator is a pure function from (weights, sample counts) to a new
// weights value. Implementations must not retain or mutate their inputs.
type Aggregator interface {
	Aggregate(weights []tensor.List, sampleCounts []uint64) (tensor.List, error)
}

// ErrEmptyInput is returned when Aggregate is called with no updates.
var ErrEmptyInput = fmt.Errorf("aggregation: no updates to aggregate")

// FedAvg is the reference Aggregator: element-wise weighted mean, with
// weights proportional to each update's sample count (spec.md §4.4,
// GLOSSARY "Federated averaging").
type FedAvg struct{}

// Aggregate implements Aggregator.
func (FedAvg) Aggregate(weights []tensor.List, sampleCounts []uint64) (tensor.List, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyInput
	}
	if len(weights) != len(sampleCounts) {
		return nil, fmt.Errorf("aggregation: %d weight updates but %d sample counts", len(weights), len(sampleCounts))
	}

	numTensors := len(weights[0])
	var shapeErrs *multierror.Error
	for i, w := range weights {
		if len(w) != numTensors {
			shapeErrs = multierror.Append(shapeErrs, fmt.Errorf("update %d has %d tensors, want %d", i, len(w), numTensors))
			continue
		}
		for j, t := range w {
			if !t.ShapeEqual(weights[0][j]) {
				shapeErrs = multierror.Append(shapeErrs, fmt.Errorf("update %d tensor %d has shape %v, want %v", i, j, t.Shape, weights[0][j].Shape))
			}
		}
	}
	if shapeErrs.ErrorOrNil() != nil {
		return nil, shapeErrs
	}

	var totalSamples uint64
	for _, c := range sampleCounts {
		totalSamples += c
	}
	if totalSamples == 0 {
		return nil, fmt.Errorf("aggregation: total sample count is zero")
	}

	out := make(tensor.List, numTensors)
	for j := 0; j < numTensors; j++ {
		shape := weights[0][j].Shape
		data := make([]float64, weights[0][j].NumElements())
		for i, w := range weights {
			frac := float64(sampleCounts[i]) / float64(totalSamples)
			for k, v := range w[j].Data {
				data[k] += frac * v
			}
		}
		out[j] = tensor.Tensor{Dtype: weights[0][j].Dtype, Shape: shape, Data: data}
	}
	return out, nil
}
