// Package store keeps client state in a single goroutine. Typed actions are sent
// over a channel, Reduce computes the next state, and subscribers receive
// snapshots.
package store

import "context"

type Store struct {
	actions     chan Action
	reads       chan chan State
	subscribe   chan chan State
	unsubscribe chan chan State
	done        chan struct{}
}

// New starts the owner goroutine. It stops when ctx is cancelled and then closes
// every subscription.
func New(ctx context.Context, initial State) *Store {
	s := &Store{
		actions:     make(chan Action),
		reads:       make(chan chan State),
		subscribe:   make(chan chan State),
		unsubscribe: make(chan chan State),
		done:        make(chan struct{}),
	}
	go s.run(ctx, initial)
	return s
}

func (s *Store) run(ctx context.Context, state State) {
	subs := make(map[chan State]struct{})
	defer func() {
		for ch := range subs {
			close(ch)
		}
		close(s.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-s.actions:
			state = Reduce(state, a)
			for ch := range subs {
				publish(ch, state)
			}
		case reply := <-s.reads:
			reply <- state
		case ch := <-s.subscribe:
			subs[ch] = struct{}{}
			publish(ch, state)
		case ch := <-s.unsubscribe:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
		}
	}
}

// publish replaces an unread snapshot so slow subscribers only see the latest.
func publish(ch chan State, state State) {
	select {
	case ch <- state:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- state:
	default:
	}
}

// Dispatch sends a to the owner goroutine. It is a no-op once the store stopped.
func (s *Store) Dispatch(a Action) {
	select {
	case s.actions <- a:
	case <-s.done:
	}
}

// State returns the current snapshot, or the zero state once the store stopped.
func (s *Store) State() State {
	reply := make(chan State, 1)
	select {
	case s.reads <- reply:
		return <-reply
	case <-s.done:
		return State{}
	}
}

// Subscribe returns a channel that receives the current state and every later
// one. The returned func ends the subscription.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	select {
	case s.subscribe <- ch:
	case <-s.done:
		close(ch)
		return ch, func() {}
	}
	return ch, func() {
		select {
		case s.unsubscribe <- ch:
		case <-s.done:
		}
	}
}

// Done is closed when the store has stopped.
func (s *Store) Done() <-chan struct{} {
	return s.done
}
