// Package wire converts between the domain tensor.List type and the
// wire-level coordinatorpb.Tensor messages, snappy-compressing each
// tensor's flattened buffer (spec.md §6.1: "Tensors on the wire are a
// length-prefixed sequence of typed multidimensional arrays ... the core
// treats them opaquely"). Both the server (package rpc) and the reference
// client (package client) share this codec so the framing only has one
// implementation.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/golang/snappy"

	"github.com/xainag/xain/internal/coordinatorpb"
	"github.com/xainag/xain/tensor"
)

// TensorsToWire converts a tensor.List into wire Tensor messages.
func TensorsToWire(list tensor.List) []*coordinatorpb.Tensor {
	out := make([]*coordinatorpb.Tensor, len(list))
	for i, t := range list {
		out[i] = &coordinatorpb.Tensor{
			Dtype: t.Dtype,
			Shape: append([]int64(nil), t.Shape...),
			Data:  snappy.Encode(nil, float64sToBytes(t.Data)),
		}
	}
	return out
}

// TensorsFromWire is the inverse of TensorsToWire.
func TensorsFromWire(wire []*coordinatorpb.Tensor) (tensor.List, error) {
	out := make(tensor.List, len(wire))
	for i, w := range wire {
		raw, err := snappy.Decode(nil, w.GetData())
		if err != nil {
			return nil, fmt.Errorf("wire: decompress tensor %d: %w", i, err)
		}
		data, err := bytesToFloat64s(raw)
		if err != nil {
			return nil, fmt.Errorf("wire: decode tensor %d: %w", i, err)
		}
		out[i] = tensor.Tensor{
			Dtype: w.GetDtype(),
			Shape: append([]int64(nil), w.GetShape()...),
			Data:  data,
		}
	}
	return out, nil
}

// MetricsToWire converts the domain metrics map into wire MetricValues
// messages.
func MetricsToWire(m map[string][]float64) map[string]*coordinatorpb.MetricValues {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]*coordinatorpb.MetricValues, len(m))
	for k, v := range m {
		out[k] = &coordinatorpb.MetricValues{Values: v}
	}
	return out
}

// MetricsFromWire is the inverse of MetricsToWire.
func MetricsFromWire(wire map[string]*coordinatorpb.MetricValues) map[string][]float64 {
	if len(wire) == 0 {
		return nil
	}
	out := make(map[string][]float64, len(wire))
	for k, v := range wire {
		out[k] = v.GetValues()
	}
	return out
}

func float64sToBytes(data []float64) []byte {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func bytesToFloat64s(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("wire: tensor buffer length %d is not a multiple of 8", len(buf))
	}
	out := make([]float64, len(buf)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8 : i*8+8]))
	}
	return out, nil
}
