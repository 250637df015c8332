// Command coordinator runs the federated-learning Coordinator control
// plane: it loads configuration, starts the state machine (package
// coordinator), the heartbeat monitor (package heartbeat), and the gRPC
// RPC surface (package rpc), and shuts all three down on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xainag/xain/aggregation"
	"github.com/xainag/xain/aggregation/plugin"
	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/coordinator"
	"github.com/xainag/xain/heartbeat"
	"github.com/xainag/xain/internal/config"
	"github.com/xainag/xain/rpc"
	"github.com/xainag/xain/storage"
	"github.com/xainag/xain/tensor"
)

var logger = logging.GetLogger("main")

func main() {
	if err := rootCmd().Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "coordinator",
		Short:   "Federated-learning Coordinator control plane",
		Version: "0.1.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a coordinator configuration file")
	return cmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lvl, err := logging.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	format, err := logging.ParseFormat(cfg.Logger.Format)
	if err != nil {
		return fmt.Errorf("parse log format: %w", err)
	}
	if err := logging.Initialize(os.Stderr, lvl, format); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agg, err := buildAggregator(cfg.Aggregator)
	if err != nil {
		return fmt.Errorf("build aggregator: %w", err)
	}
	if closer, ok := agg.(interface{ Close() }); ok {
		defer closer.Close()
	}

	coord, err := coordinator.New(coordinator.Options{
		NumRounds:        cfg.Session.NumRounds,
		MinInRound:       cfg.Session.MinInRound,
		Fraction:         cfg.Session.Fraction,
		Epochs:           cfg.Session.Epochs,
		EpochBase:        cfg.Session.EpochBase,
		HeartbeatPeriod:  cfg.Heartbeat.Period,
		HeartbeatTimeout: cfg.Heartbeat.Timeout,
		Aggregator:       agg,
	})
	if err != nil {
		return fmt.Errorf("construct coordinator: %w", err)
	}

	monitor := heartbeat.New(coord)
	monitor.Start(ctx)
	defer monitor.Stop()

	if cfg.Storage.Enabled {
		sink, err := storage.New(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer sink.Cleanup()
		go runStorageSubscriber(ctx, coord, sink)
	}

	lis, err := net.Listen("tcp", cfg.Listen.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Listen.Addr(), err)
	}

	srv := rpc.NewGRPCServer(coord)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(lis) }()
	logger.Info("coordinator listening", "addr", cfg.Listen.Addr())

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		return fmt.Errorf("rpc server exited: %w", err)
	}

	srv.GracefulStop()
	return nil
}

// runStorageSubscriber hands the weights produced by each finished round to
// sink, fire-and-forget (spec.md §6.3): a write failure is logged and
// never affects the Coordinator's own state.
func runStorageSubscriber(ctx context.Context, coord *coordinator.Coordinator, sink *storage.Backend) {
	events, sub := coord.Events()
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !ev.RoundFinished {
				continue
			}
			// After a non-final round the event already carries the next
			// round's number; the finished round is the one before it.
			finished := ev.CurrentRound
			if ev.State != coordinator.StateFinished {
				finished--
			}
			if err := sink.Write(ctx, finished, coord.Weights()); err != nil {
				logger.Error("storage write failed", "round", finished, "err", err)
			}
		}
	}
}

// buildAggregator returns a plugin-hosted aggregator when a plugin path is
// configured, falling back to the built-in FedAvg otherwise.
func buildAggregator(cfg config.AggregatorConfig) (aggregation.Aggregator, error) {
	if cfg.PluginPath == "" {
		return aggregation.FedAvg{}, nil
	}
	host, err := plugin.Load(cfg.PluginPath)
	if err != nil {
		return nil, err
	}
	return pluginAggregator{host: host}, nil
}

// pluginAggregator adapts a *plugin.Host to aggregation.Aggregator and
// exposes Close so run() can shut the subprocess down on exit.
type pluginAggregator struct {
	host *plugin.Host
}

func (p pluginAggregator) Aggregate(weights []tensor.List, counts []uint64) (tensor.List, error) {
	return p.host.Aggregator().Aggregate(weights, counts)
}

func (p pluginAggregator) Close() {
	p.host.Close()
}
