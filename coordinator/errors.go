package coordinator

import "errors"

// Error kinds from spec.md §7. The RPC surface (package rpc) maps each to a
// transport status code; nothing inside this package depends on that
// mapping.
var (
	// ErrUnknownParticipant is returned by any operation other than
	// Rendezvous when the caller is absent from the registry.
	ErrUnknownParticipant = errors.New("coordinator: unknown participant")

	// ErrInvalidRequest is returned by StartTraining when the Coordinator
	// is not in ROUND state, or the caller was not selected for the
	// current round.
	ErrInvalidRequest = errors.New("coordinator: invalid request for current state")

	// ErrDuplicatedUpdate is returned by EndTraining when the caller
	// already submitted an update this round.
	ErrDuplicatedUpdate = errors.New("coordinator: duplicated update")

	// ErrAggregationFailed is returned (and the round aborted) when the
	// Aggregator rejects its inputs.
	ErrAggregationFailed = errors.New("coordinator: aggregation failed")
)
