// Package tensor defines the opaque numeric value the Coordinator passes
// around as model weights. The core never inspects tensor contents beyond
// shape compatibility; see spec.md §3 "Weights" and §4.4.
package tensor

import "fmt"

// Tensor is a single multidimensional numeric array, opaque to the
// Coordinator. Dtype and Shape describe the layout of Data; the Coordinator
// treats Data as a raw buffer it neither interprets nor mutates.
type Tensor struct {
	Dtype string
	Shape []int64
	Data  []float64
}

// ShapeEqual reports whether t and other have identical shapes (dtype is
// not compared; the reference aggregator only needs element-wise
// compatibility).
func (t Tensor) ShapeEqual(other Tensor) bool {
	if len(t.Shape) != len(other.Shape) {
		return false
	}
	for i := range t.Shape {
		if t.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return true
}

// NumElements returns the product of t's shape, i.e. len(t.Data) for a
// well-formed Tensor.
func (t Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= int(d)
	}
	return n
}

func (t Tensor) String() string {
	return fmt.Sprintf("tensor(dtype=%s, shape=%v)", t.Dtype, t.Shape)
}

// List is an ordered sequence of tensors, matching spec.md §3's "Weights".
type List []Tensor

// ShapeEqual reports whether l and other have the same number of tensors,
// each pairwise shape-compatible.
func (l List) ShapeEqual(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].ShapeEqual(other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of l, used by the Coordinator when handing out
// a weights snapshot so that later aggregation can never mutate what a
// participant already read (spec.md §5 "Shared-resource policy").
func (l List) Clone() List {
	out := make(List, len(l))
	for i, t := range l {
		data := make([]float64, len(t.Data))
		copy(data, t.Data)
		shape := make([]int64, len(t.Shape))
		copy(shape, t.Shape)
		out[i] = Tensor{Dtype: t.Dtype, Shape: shape, Data: data}
	}
	return out
}
