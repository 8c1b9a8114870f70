// Package realtime fans out "partition changed" signals to live
// subscribers. Signals carry no payload; subscribers re-read the partition.
package realtime

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrClosed         = errors.New("realtime: broker closed")
	ErrConnectionLost = errors.New("realtime: connection lost")
)

// Broker publishes change signals per topic.
type Broker interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe registers interest in topic. The subscription ends when ctx
	// is cancelled, Close is called, or the transport fails.
	Subscribe(ctx context.Context, topic string) (*Subscription, error)
	Close() error
}

// Subscription delivers coalesced signals on C. C is closed when the
// subscription ends; Err then reports why (nil on a normal close).
type Subscription struct {
	C <-chan struct{}

	c      chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	err    error
}

func newSubscription(parent context.Context) *Subscription {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan struct{}, 1)
	return &Subscription{C: c, c: c, ctx: ctx, cancel: cancel}
}

// notify queues one signal; a pending signal absorbs further ones.
func (s *Subscription) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.c <- struct{}{}:
	default:
	}
}

func (s *Subscription) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.c)
	s.cancel()
}

func (s *Subscription) done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) Close() {
	s.finish(nil)
}
