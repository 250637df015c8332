// Package rpc implements the Coordinator's gRPC surface (spec.md §4.7,
// component C7): it translates CoordinatorService calls into
// coordinator.Coordinator method calls, deriving the caller's participant
// identifier from the transport peer address and mapping coordinator
// sentinel errors onto grpc status codes.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/coordinator"
	"github.com/xainag/xain/internal/coordinatorpb"
	"github.com/xainag/xain/internal/wire"
	"github.com/xainag/xain/round"
)

var logger = logging.GetLogger("rpc")

// Server adapts a *coordinator.Coordinator to coordinatorpb.CoordinatorServiceServer.
type Server struct {
	coordinatorpb.UnimplementedCoordinatorServiceServer

	coord *coordinator.Coordinator
}

// New wraps c for use as a CoordinatorServiceServer.
func New(c *coordinator.Coordinator) *Server {
	return &Server{coord: c}
}

// NewGRPCServer builds a *grpc.Server with the Coordinator service
// registered and a recovery+logging interceptor chain installed, the way
// the teacher's daemon composes its grpc.Server (turning panics in a
// handler into an INTERNAL status instead of taking the process down).
func NewGRPCServer(c *coordinator.Coordinator) *grpc.Server {
	recoveryOpts := []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p interface{}) error {
			logger.Error("recovered from panic in rpc handler", "panic", p)
			return status.Errorf(codes.Internal, "internal error")
		}),
	}

	srv := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
			loggingInterceptor,
		)),
	)
	coordinatorpb.RegisterCoordinatorServiceServer(srv, New(c))
	return srv
}

func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		logger.Info("rpc call failed", "method", info.FullMethod, "err", err)
	}
	return resp, err
}

// participantID extracts the caller's participant identifier from the
// transport peer address (spec.md §6.1's rendezvous step 1: "Extract the
// caller's participant identifier from transport context").
func participantID(ctx context.Context) (string, error) {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "", status.Error(codes.InvalidArgument, "rpc: no peer information in context")
	}
	if p.Addr.Network() == "pipe" {
		// net.Pipe-based in-process transports report a non-address
		// "pipe" network; use the raw address string. (bufconn reports a
		// "bufconn" network and reaches the same result through the
		// SplitHostPort fallback below.)
		return p.Addr.String(), nil
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String(), nil
	}
	return host, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, coordinator.ErrUnknownParticipant):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, coordinator.ErrInvalidRequest):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, coordinator.ErrDuplicatedUpdate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, coordinator.ErrAggregationFailed):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

func (s *Server) Rendezvous(ctx context.Context, _ *coordinatorpb.RendezvousRequest) (*coordinatorpb.RendezvousReply, error) {
	id, err := participantID(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.coord.Rendezvous(id)

	wireResponse := coordinatorpb.RendezvousResponse_ACCEPT
	if resp == coordinator.ResponseLater {
		wireResponse = coordinatorpb.RendezvousResponse_LATER
	}
	return &coordinatorpb.RendezvousReply{Response: wireResponse}, nil
}

func (s *Server) Heartbeat(ctx context.Context, _ *coordinatorpb.HeartbeatRequest) (*coordinatorpb.HeartbeatReply, error) {
	id, err := participantID(ctx)
	if err != nil {
		return nil, err
	}
	state, roundNumber, err := s.coord.Heartbeat(id)
	if err != nil {
		return nil, translateError(err)
	}
	return &coordinatorpb.HeartbeatReply{State: stateToWire(state), Round: roundNumber}, nil
}

func (s *Server) StartTraining(ctx context.Context, _ *coordinatorpb.StartTrainingRequest) (*coordinatorpb.StartTrainingReply, error) {
	id, err := participantID(ctx)
	if err != nil {
		return nil, err
	}
	weights, epochs, epochBase, err := s.coord.StartTraining(id)
	if err != nil {
		return nil, translateError(err)
	}
	return &coordinatorpb.StartTrainingReply{
		Weights:   wire.TensorsToWire(weights),
		Epochs:    epochs,
		EpochBase: epochBase,
	}, nil
}

func (s *Server) EndTraining(ctx context.Context, req *coordinatorpb.EndTrainingRequest) (*coordinatorpb.EndTrainingReply, error) {
	id, err := participantID(ctx)
	if err != nil {
		return nil, err
	}

	weights, err := wire.TensorsFromWire(req.GetWeights())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	update := round.Update{
		Weights:     weights,
		SampleCount: req.GetSampleCount(),
		Metrics:     wire.MetricsFromWire(req.GetMetrics()),
	}

	if err := s.coord.EndTraining(id, update); err != nil {
		return nil, translateError(err)
	}
	return &coordinatorpb.EndTrainingReply{}, nil
}

func stateToWire(s coordinator.State) coordinatorpb.State {
	switch s {
	case coordinator.StateStandby:
		return coordinatorpb.State_STANDBY
	case coordinator.StateRound:
		return coordinatorpb.State_ROUND
	case coordinator.StateFinished:
		return coordinatorpb.State_FINISHED
	default:
		panic(fmt.Sprintf("rpc: unknown coordinator state %v", s))
	}
}
