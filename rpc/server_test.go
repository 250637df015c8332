package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/xainag/xain/coordinator"
	"github.com/xainag/xain/internal/coordinatorpb"
	"github.com/xainag/xain/internal/wire"
	"github.com/xainag/xain/tensor"
)

func dialServer(t *testing.T, c *coordinator.Coordinator) (coordinatorpb.CoordinatorServiceClient, func()) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := NewGRPCServer(c)
	go func() { _ = srv.Serve(lis) }()

	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, "bufconn",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	require.NoError(t, err)

	return coordinatorpb.NewCoordinatorServiceClient(conn), func() {
		_ = conn.Close()
		srv.Stop()
	}
}

func TestEndToEndHappyPathOverGRPC(t *testing.T) {
	c, err := coordinator.New(coordinator.Options{
		NumRounds:        1,
		MinInRound:       1,
		Fraction:         1.0,
		Epochs:           3,
		EpochBase:        0,
		InitialWeights:   tensor.List{{Dtype: "f64", Shape: []int64{2}, Data: []float64{1, 2}}},
		HeartbeatPeriod:  time.Minute,
		HeartbeatTimeout: time.Minute,
	})
	require.NoError(t, err)

	client, closeFn := dialServer(t, c)
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rr, err := client.Rendezvous(ctx, &coordinatorpb.RendezvousRequest{})
	require.NoError(t, err)
	require.Equal(t, coordinatorpb.RendezvousResponse_ACCEPT, rr.GetResponse())

	hb, err := client.Heartbeat(ctx, &coordinatorpb.HeartbeatRequest{})
	require.NoError(t, err)
	require.Equal(t, coordinatorpb.State_ROUND, hb.GetState())
	require.Equal(t, uint64(1), hb.GetRound())

	st, err := client.StartTraining(ctx, &coordinatorpb.StartTrainingRequest{})
	require.NoError(t, err)
	require.Len(t, st.GetWeights(), 1)
	require.Equal(t, uint64(3), st.GetEpochs())

	weights, err := wire.TensorsFromWire(st.GetWeights())
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, weights[0].Data)

	_, err = client.EndTraining(ctx, &coordinatorpb.EndTrainingRequest{
		Weights:     wire.TensorsToWire(tensor.List{{Dtype: "f64", Shape: []int64{2}, Data: []float64{3, 4}}}),
		SampleCount: 1,
	})
	require.NoError(t, err)

	state, roundNumber := c.State()
	require.Equal(t, coordinator.StateFinished, state)
	require.Equal(t, uint64(1), roundNumber)
}

func TestHeartbeatOfUnknownParticipantMapsToPermissionDenied(t *testing.T) {
	c, err := coordinator.New(coordinator.Options{
		NumRounds: 1, MinInRound: 2, Fraction: 1.0,
		HeartbeatPeriod: time.Minute, HeartbeatTimeout: time.Minute,
	})
	require.NoError(t, err)

	// A bufconn connection never rendezvouses, so its peer address is
	// unknown to the registry; Heartbeat must reject it.
	client, closeFn := dialServer(t, c)
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.Heartbeat(ctx, &coordinatorpb.HeartbeatRequest{})
	require.Error(t, err)
	require.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestStartTrainingBeforeRoundMapsToFailedPrecondition(t *testing.T) {
	c, err := coordinator.New(coordinator.Options{
		NumRounds: 1, MinInRound: 2, Fraction: 1.0,
		HeartbeatPeriod: time.Minute, HeartbeatTimeout: time.Minute,
	})
	require.NoError(t, err)

	client, closeFn := dialServer(t, c)
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.Rendezvous(ctx, &coordinatorpb.RendezvousRequest{})
	require.NoError(t, err)

	_, err = client.StartTraining(ctx, &coordinatorpb.StartTrainingRequest{})
	require.Error(t, err)
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestDuplicateEndTrainingMapsToAlreadyExists(t *testing.T) {
	c, err := coordinator.New(coordinator.Options{
		NumRounds: 1, MinInRound: 1, Fraction: 1.0,
		HeartbeatPeriod: time.Minute, HeartbeatTimeout: time.Minute,
	})
	require.NoError(t, err)

	client, closeFn := dialServer(t, c)
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.Rendezvous(ctx, &coordinatorpb.RendezvousRequest{})
	require.NoError(t, err)

	_, err = client.EndTraining(ctx, &coordinatorpb.EndTrainingRequest{SampleCount: 1})
	require.NoError(t, err)

	_, err = client.EndTraining(ctx, &coordinatorpb.EndTrainingRequest{SampleCount: 1})
	require.Error(t, err)
	require.Equal(t, codes.AlreadyExists, status.Code(err))
}
