// Package coordinator implements the Coordinator state machine (spec.md
// §4.5): it owns the global session state, the participant registry, and
// the current round, routing the four participant-facing operations to
// the registry (C1), selector (C2), round (C3), and aggregator (C4).
package coordinator

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/xainag/xain/aggregation"
	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/participants"
	"github.com/xainag/xain/round"
	"github.com/xainag/xain/selection"
	"github.com/xainag/xain/tensor"
)

var logger = logging.GetLogger("coordinator")

// State is a Coordinator's position in the STANDBY -> ROUND -> FINISHED
// state machine (spec.md §3 "Global session state").
type State uint8

const (
	// StateStandby is the initial state: not enough participants are
	// connected yet to begin a round.
	StateStandby State = iota
	// StateRound means a round is in progress.
	StateRound
	// StateFinished is terminal: the session has completed num_rounds
	// rounds.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateStandby:
		return "STANDBY"
	case StateRound:
		return "ROUND"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// RendezvousResponse is the reply to a Rendezvous call.
type RendezvousResponse uint8

const (
	// ResponseAccept admits the participant (possibly idempotently).
	ResponseAccept RendezvousResponse = iota
	// ResponseLater tells the participant to retry after a backoff; the
	// registry is already at minConnected.
	ResponseLater
)

// Options configures a new Coordinator, matching the configuration table
// in spec.md §6.4.
type Options struct {
	NumRounds  uint64
	MinInRound uint64
	Fraction   float64

	Epochs    uint64
	EpochBase uint64

	InitialWeights tensor.List

	HeartbeatPeriod  time.Duration
	HeartbeatTimeout time.Duration

	// Selector defaults to selection.Random{} when nil.
	Selector selection.Selector
	// Aggregator defaults to aggregation.FedAvg{} when nil.
	Aggregator aggregation.Aggregator
}

func (o Options) validate() error {
	if o.NumRounds < 1 {
		return fmt.Errorf("coordinator: num_rounds must be >= 1, got %d", o.NumRounds)
	}
	if o.MinInRound < 1 {
		return fmt.Errorf("coordinator: min_in_round must be >= 1, got %d", o.MinInRound)
	}
	if o.Fraction <= 0 || o.Fraction > 1 {
		return fmt.Errorf("coordinator: fraction must be in (0, 1], got %f", o.Fraction)
	}
	return nil
}

// Coordinator owns the global session state, the participant registry, and
// the current round. Every public method that reads or changes session
// state acquires mu, per spec.md §5's locking discipline (Coordinator mutex
// acquired before the registry's or the round's own internal mutex); all
// of them hold it for their entire body except EndTraining, which releases
// it while the aggregator runs. Registry and Events take no lock.
type Coordinator struct {
	mu sync.Mutex

	registry *participants.Registry
	selector selection.Selector
	agg      aggregation.Aggregator
	broker   *Broker

	state        State
	currentRound uint64
	numRounds    uint64
	minInRound   uint64
	fraction     float64
	minConnected int

	weights   tensor.List
	epochs    uint64
	epochBase uint64

	round *round.Round
}

// New constructs a Coordinator in STANDBY with current_round = 0.
func New(opts Options) (*Coordinator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	selector := opts.Selector
	if selector == nil {
		selector = selection.Random{}
	}
	agg := opts.Aggregator
	if agg == nil {
		agg = aggregation.FedAvg{}
	}

	minConnected := int(math.Ceil(float64(opts.MinInRound) / opts.Fraction))

	c := &Coordinator{
		registry:     participants.New(opts.HeartbeatPeriod, opts.HeartbeatTimeout),
		selector:     selector,
		agg:          agg,
		broker:       NewBroker(),
		state:        StateStandby,
		numRounds:    opts.NumRounds,
		minInRound:   opts.MinInRound,
		fraction:     opts.Fraction,
		minConnected: minConnected,
		weights:      opts.InitialWeights,
		epochs:       opts.Epochs,
		epochBase:    opts.EpochBase,
		round:        round.New(nil),
	}
	return c, nil
}

// Registry exposes the participant registry for the heartbeat monitor
// (package heartbeat) to read; the monitor never mutates it directly.
func (c *Coordinator) Registry() *participants.Registry {
	return c.registry
}

// Events returns a live subscription to state/round-completion events.
func (c *Coordinator) Events() (<-chan Event, *Subscription) {
	return c.broker.Subscribe()
}

// State returns the current global state and round number.
func (c *Coordinator) State() (State, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.currentRound
}

// Weights returns a snapshot of the current global weights, for a storage
// collaborator (package storage) reacting to a RoundFinished event.
func (c *Coordinator) Weights() tensor.List {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weights.Clone()
}

// Rendezvous implements spec.md §4.5.1.
func (c *Coordinator) Rendezvous(id string) RendezvousResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registry.Contains(id) {
		return ResponseAccept
	}

	if c.registry.Size() >= c.minConnected {
		logger.Info("rejecting rendezvous, at capacity", "participant_id", id, "size", c.registry.Size())
		return ResponseLater
	}

	c.registry.Add(id)
	logger.Info("accepted rendezvous", "participant_id", id, "size", c.registry.Size())

	if c.registry.Size() == c.minConnected && c.state == StateStandby {
		c.startRoundLocked()
		c.state = StateRound
		if c.currentRound == 0 {
			c.currentRound = 1
		}
		logger.WithRound(c.currentRound).Info("enough participants connected, starting round")
		c.broker.Broadcast(Event{State: c.state, CurrentRound: c.currentRound})
	}

	return ResponseAccept
}

// Heartbeat implements spec.md §4.5.2. Once the session is FINISHED every
// caller is told so; before that, a caller selected for the current round
// is told ROUND and any other caller STANDBY.
func (c *Coordinator) Heartbeat(id string) (State, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registry.Contains(id) {
		return 0, 0, ErrUnknownParticipant
	}
	c.registry.Refresh(id)

	reported := StateStandby
	if c.state == StateFinished {
		reported = StateFinished
	} else if c.round.IsSelected(id) {
		reported = StateRound
	}
	return reported, c.currentRound, nil
}

// StartTraining implements spec.md §4.5.3.
func (c *Coordinator) StartTraining(id string) (tensor.List, uint64, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registry.Contains(id) {
		return nil, 0, 0, ErrUnknownParticipant
	}
	if c.state != StateRound || !c.round.IsSelected(id) {
		return nil, 0, 0, ErrInvalidRequest
	}

	return c.weights.Clone(), c.epochs, c.epochBase, nil
}

// EndTraining implements spec.md §4.5.4. The aggregator is invoked without
// holding mu (spec.md §5: "implementations SHOULD release the Coordinator
// mutex while aggregating"), but the snapshot+is_finished check that
// decides whether *this* call owns aggregation happens while mu is held,
// preventing the two-racing-end_training duplicate-aggregation scenario
// spec.md §5 and property P4 describe.
func (c *Coordinator) EndTraining(id string, update round.Update) error {
	c.mu.Lock()

	if !c.registry.Contains(id) {
		c.mu.Unlock()
		return ErrUnknownParticipant
	}

	current := c.round
	update.ParticipantID = id
	if err := current.Submit(update); err != nil {
		c.mu.Unlock()
		return ErrDuplicatedUpdate
	}

	if !current.IsFinished() {
		c.mu.Unlock()
		return nil
	}

	weightsList, counts := current.Snapshot()
	agg := c.agg
	roundNumber := c.currentRound
	c.mu.Unlock()

	logger.WithRound(roundNumber).Info("running aggregation")
	newWeights, aggErr := agg.Aggregate(weightsList, counts)

	c.mu.Lock()
	defer c.mu.Unlock()

	roundLog := logger.WithRound(roundNumber)
	if c.round != current {
		// The round was aborted (mid-round eviction reverted to STANDBY
		// and a later rendezvous already rebuilt the round) while
		// aggregation was in flight. Per SPEC_FULL.md's open-question
		// decision, a stale aggregation result is discarded.
		roundLog.Info("discarding stale aggregation result")
		return nil
	}

	if aggErr != nil {
		roundLog.Error("aggregation failed, aborting round", "err", aggErr)
		c.state = StateStandby
		return fmt.Errorf("%w: %v", ErrAggregationFailed, aggErr)
	}

	c.weights = newWeights

	if c.currentRound == c.numRounds {
		c.state = StateFinished
		logger.WithRound(c.currentRound).Info("training session finished")
	} else {
		c.currentRound++
		c.startRoundLocked()
		logger.WithRound(c.currentRound).Info("advancing to next round")
	}

	c.broker.Broadcast(Event{State: c.state, CurrentRound: c.currentRound, RoundFinished: true})
	return nil
}

// RemoveParticipant implements spec.md §4.5.5. It is called by the
// heartbeat monitor (package heartbeat), never by the RPC surface.
func (c *Coordinator) RemoveParticipant(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.Remove(id)

	if c.registry.Size() < c.minConnected && c.state == StateRound {
		c.state = StateStandby
		logger.Info("dropped below minimum connected participants, reverting to standby",
			"size", c.registry.Size(), "min_connected", c.minConnected)
		c.broker.Broadcast(Event{State: c.state, CurrentRound: c.currentRound})
	}
}

// ExpandRound and ShrinkRound expose Round.AddSelected/RemoveSelected for
// out-of-band roster edits (SPEC_FULL.md's supplemented features); they are
// not reachable from the RPC surface.
func (c *Coordinator) ExpandRound(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.round.AddSelected(ids)
}

func (c *Coordinator) ShrinkRound(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.round.RemoveSelected(id)
}

// startRoundLocked selects participants for a new round and replaces
// c.round. Callers must hold mu.
func (c *Coordinator) startRoundLocked() {
	selected := c.selector.Select(c.registry.IDs(), c.fraction)
	c.round = round.New(selected)
}
