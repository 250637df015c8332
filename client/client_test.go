package client

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/xainag/xain/coordinator"
	"github.com/xainag/xain/rpc"
	"github.com/xainag/xain/tensor"
)

type echoTrainer struct {
	calls int32
}

func (t *echoTrainer) Train(_ context.Context, weights tensor.List, _, _ uint64) (tensor.List, uint64, map[string][]float64, error) {
	atomic.AddInt32(&t.calls, 1)
	return weights.Clone(), 1, nil, nil
}

func dialCoordinator(t *testing.T, c *coordinator.Coordinator, trainer Trainer) (*Client, func()) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := rpc.NewGRPCServer(c)
	go func() { _ = srv.Serve(lis) }()

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cl, closeConn, err := Dial(ctx, "bufconn", trainer, []Option{WithHeartbeatPeriod(20 * time.Millisecond)}, dialer)
	require.NoError(t, err)

	return cl, func() {
		_ = closeConn()
		srv.Stop()
	}
}

func TestRunCompletesSingleParticipantSession(t *testing.T) {
	c, err := coordinator.New(coordinator.Options{
		NumRounds:        1,
		MinInRound:       1,
		Fraction:         1.0,
		InitialWeights:   tensor.List{{Dtype: "f64", Shape: []int64{1}, Data: []float64{1}}},
		HeartbeatPeriod:  time.Minute,
		HeartbeatTimeout: time.Minute,
	})
	require.NoError(t, err)

	trainer := &echoTrainer{}
	cl, closeFn := dialCoordinator(t, c, trainer)
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = cl.Run(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, trainer.calls)

	state, _ := c.State()
	require.Equal(t, coordinator.StateFinished, state)
}
