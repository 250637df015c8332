package coordinator

import (
	"sync"

	"github.com/eapache/channels"
)

// Event describes a state transition or round completion an observer might
// want to react to. Nothing in the Coordinator's own control flow depends
// on anyone receiving these; a slow or absent subscriber can never block a
// request handler (spec.md §5 "suspension points").
type Event struct {
	State        State
	CurrentRound uint64
	// RoundFinished is set when this event was emitted because a round's
	// aggregation just completed (as opposed to a plain state change).
	RoundFinished bool
}

// Broker broadcasts Events to any number of subscribers without ever
// blocking the broadcaster, backed by github.com/eapache/channels'
// unbounded InfiniteChannel the way roothash/memory.go's blockNotifier and
// eventNotifier do in the teacher.
type Broker struct {
	mu   sync.Mutex
	subs []*channels.InfiniteChannel
}

// NewBroker constructs an empty Broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe returns a channel that receives every Event broadcast after
// this call. Close must be called on the returned Subscription once the
// subscriber is done, or the broker will leak the underlying channel.
func (b *Broker) Subscribe() (<-chan Event, *Subscription) {
	ic := channels.NewInfiniteChannel()

	b.mu.Lock()
	b.subs = append(b.subs, ic)
	b.mu.Unlock()

	out := make(chan Event)
	go func() {
		for v := range ic.Out() {
			out <- v.(Event)
		}
		close(out)
	}()

	return out, &Subscription{broker: b, ch: ic}
}

// Broadcast delivers ev to every current subscriber. It never blocks: each
// subscriber has its own unbounded buffer.
func (b *Broker) Broadcast(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		s.In() <- ev
	}
}

// Subscription is a handle returned by Broker.Subscribe.
type Subscription struct {
	broker *Broker
	ch     *channels.InfiniteChannel
}

// Close unsubscribes and releases the underlying channel.
func (s *Subscription) Close() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()

	for i, c := range s.broker.subs {
		if c == s.ch {
			s.broker.subs = append(s.broker.subs[:i], s.broker.subs[i+1:]...)
			break
		}
	}
	s.ch.Close()
}
