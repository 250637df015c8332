// Package plugin lets the Coordinator load an Aggregator implementation out
// of process, via github.com/hashicorp/go-plugin. This gives the "variant
// implementations... without touching C5" design note in spec.md §9 a
// concrete, swappable mechanism beyond the in-process Aggregator interface:
// operators can ship a median or trimmed-mean aggregator as a separate
// binary without relinking the Coordinator.
package plugin

import (
	"errors"
	"net/rpc"
	"os/exec"

	hplugin "github.com/hashicorp/go-plugin"
	"github.com/xainag/xain/aggregation"
	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/tensor"
)

var logger = logging.GetLogger("aggregation/plugin")

// Handshake is shared between host and plugin binaries so that go-plugin
// refuses to load a mismatched or unrelated executable.
var Handshake = hplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "XAIN_AGGREGATOR_PLUGIN",
	MagicCookieValue: "fedavg-or-better",
}

// aggregatorPlugin adapts aggregation.Aggregator to go-plugin's net/rpc
// plugin interface.
type aggregatorPlugin struct {
	Impl aggregation.Aggregator
}

func (p *aggregatorPlugin) Server(*hplugin.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.Impl}, nil
}

func (p *aggregatorPlugin) Client(_ *hplugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

// Serve is the entry point an out-of-process aggregator plugin binary
// calls from its own main(), exposing impl over the net/rpc bridge.
func Serve(impl aggregation.Aggregator) {
	hplugin.Serve(&hplugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]hplugin.Plugin{
			"aggregator": &aggregatorPlugin{Impl: impl},
		},
	})
}

// AggregateArgs/AggregateReply are the net/rpc wire types exchanged between
// host and plugin. net/rpc only registers methods whose argument and reply
// types are exported, so both names are exported.
type AggregateArgs struct {
	Weights      []tensor.List
	SampleCounts []uint64
}

type AggregateReply struct {
	Weights tensor.List
}

type rpcServer struct {
	impl aggregation.Aggregator
}

func (s *rpcServer) Aggregate(args AggregateArgs, reply *AggregateReply) error {
	out, err := s.impl.Aggregate(args.Weights, args.SampleCounts)
	if err != nil {
		return err
	}
	reply.Weights = out
	return nil
}

// rpcClient implements aggregation.Aggregator by forwarding calls to the
// plugin subprocess.
type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) Aggregate(weights []tensor.List, sampleCounts []uint64) (tensor.List, error) {
	var reply AggregateReply
	args := AggregateArgs{Weights: weights, SampleCounts: sampleCounts}
	if err := c.client.Call("Plugin.Aggregate", args, &reply); err != nil {
		return nil, err
	}
	return reply.Weights, nil
}

// Host manages the lifecycle of a single out-of-process aggregator plugin.
type Host struct {
	client *hplugin.Client
	agg    aggregation.Aggregator
}

// Load starts the plugin binary at path and dispenses its Aggregator.
// Callers must call Close when done to terminate the subprocess.
func Load(path string) (*Host, error) {
	client := hplugin.NewClient(&hplugin.ClientConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]hplugin.Plugin{
			"aggregator": &aggregatorPlugin{},
		},
		Cmd:    exec.Command(path), // #nosec G204 -- path is operator-supplied configuration, not request input
		Logger: newHCLogAdapter(),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, err
	}

	raw, err := rpcClient.Dispense("aggregator")
	if err != nil {
		client.Kill()
		return nil, err
	}

	agg, ok := raw.(aggregation.Aggregator)
	if !ok {
		client.Kill()
		return nil, errors.New("plugin: dispensed value does not implement aggregation.Aggregator")
	}

	logger.Info("loaded aggregator plugin", "path", path)
	return &Host{client: client, agg: agg}, nil
}

// Aggregator returns the loaded plugin's Aggregator, safe to pass directly
// wherever an in-process one would go.
func (h *Host) Aggregator() aggregation.Aggregator {
	return h.agg
}

// Close terminates the plugin subprocess.
func (h *Host) Close() {
	h.client.Kill()
}
