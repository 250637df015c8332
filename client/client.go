// Package client is a minimal reference implementation of the
// participant-facing handshake (spec.md §6.2): rendezvous with
// backoff-on-LATER, a heartbeat loop, and start/end-training calls while
// the Coordinator reports ROUND. It exists to exercise the RPC surface
// end-to-end; model training itself is delegated to a Trainer and is out
// of scope for this module.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/internal/coordinatorpb"
	"github.com/xainag/xain/internal/wire"
	"github.com/xainag/xain/tensor"
)

var logger = logging.GetLogger("client")

// Trainer performs one local-training step: given the current global
// weights and the epoch parameters the Coordinator handed out, it returns
// an updated weights value, the number of samples it trained on, and
// optional metrics.
type Trainer interface {
	Train(ctx context.Context, weights tensor.List, epochs, epochBase uint64) (tensor.List, uint64, map[string][]float64, error)
}

// Client drives the handshake against one Coordinator connection.
type Client struct {
	rpc             coordinatorpb.CoordinatorServiceClient
	trainer         Trainer
	heartbeatPeriod time.Duration
	newBackoff      func() backoff.BackOff
}

// Option configures a Client constructed by Dial.
type Option func(*Client)

// WithHeartbeatPeriod overrides the default 10s heartbeat interval.
func WithHeartbeatPeriod(d time.Duration) Option {
	return func(c *Client) { c.heartbeatPeriod = d }
}

// WithRendezvousBackoff overrides the default bounded exponential backoff
// used to retry a LATER rendezvous response.
func WithRendezvousBackoff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackoff = f }
}

// Dial connects to a Coordinator at addr and returns a Client ready to Run.
// dialOpts are appended to the default dial options, letting tests install
// a custom dialer (e.g. bufconn) without a real socket.
func Dial(ctx context.Context, addr string, trainer Trainer, opts []Option, dialOpts ...grpc.DialOption) (*Client, func() error, error) {
	defaultOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()), // transport security is an explicit Non-goal (spec.md §1)
		grpc.WithBlock(),
	}
	conn, err := grpc.DialContext(ctx, addr, append(defaultOpts, dialOpts...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}

	c := &Client{
		rpc:             coordinatorpb.NewCoordinatorServiceClient(conn),
		trainer:         trainer,
		heartbeatPeriod: 10 * time.Second,
		newBackoff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(200*time.Millisecond),
				backoff.WithMaxInterval(5*time.Second),
				backoff.WithMaxElapsedTime(0), // rendezvous retries until the caller cancels ctx
			)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, conn.Close, nil
}

// Run executes the full handshake: rendezvous (retrying on LATER), then
// heartbeats every heartbeatPeriod, training whenever a heartbeat reports
// ROUND, until the Coordinator reports FINISHED or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	if err := c.rendezvous(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(c.heartbeatPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			state, err := c.rpc.Heartbeat(ctx, &coordinatorpb.HeartbeatRequest{})
			if err != nil {
				logger.Error("heartbeat failed", "err", err)
				continue
			}

			switch state.GetState() {
			case coordinatorpb.State_ROUND:
				if err := c.runRound(ctx, state.GetRound()); err != nil {
					logger.Error("training round failed", "round", state.GetRound(), "err", err)
				}
			case coordinatorpb.State_FINISHED:
				logger.Info("session finished, disconnecting")
				return nil
			}
		}
	}
}

func (c *Client) rendezvous(ctx context.Context) error {
	op := func() error {
		reply, err := c.rpc.Rendezvous(ctx, &coordinatorpb.RendezvousRequest{})
		if err != nil {
			return backoff.Permanent(err)
		}
		if reply.GetResponse() == coordinatorpb.RendezvousResponse_LATER {
			return fmt.Errorf("client: rendezvous: LATER")
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(c.newBackoff(), ctx))
}

func (c *Client) runRound(ctx context.Context, round uint64) error {
	start, err := c.rpc.StartTraining(ctx, &coordinatorpb.StartTrainingRequest{})
	if err != nil {
		if status.Code(err) == codes.FailedPrecondition {
			// not selected for this round; nothing to do until the next heartbeat
			return nil
		}
		return err
	}

	weights, err := wire.TensorsFromWire(start.GetWeights())
	if err != nil {
		return err
	}

	newWeights, sampleCount, metrics, err := c.trainer.Train(ctx, weights, start.GetEpochs(), start.GetEpochBase())
	if err != nil {
		return fmt.Errorf("client: local training failed: %w", err)
	}

	_, err = c.rpc.EndTraining(ctx, &coordinatorpb.EndTrainingRequest{
		Weights:     wire.TensorsToWire(newWeights),
		SampleCount: sampleCount,
		Metrics:     wire.MetricsToWire(metrics),
	})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return err
	}
	logger.Info("submitted round update", "round", round)
	return nil
}
