package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

// SubscribeClients opens live partition feeds.
type SubscribeClients struct {
	list   *ListClients
	broker realtime.Broker
	logger logging.Logger
}

func NewSubscribeClients(
	list *ListClients,
	broker realtime.Broker,
	logger logging.Logger,
) *SubscribeClients {
	return &SubscribeClients{list: list, broker: broker, logger: logger}
}

// Execute starts a feed for p. The first snapshot is delivered once the
// change subscription is in place, so no write between the two is missed.
func (uc *SubscribeClients) Execute(
	ctx context.Context,
	p visit.Partition,
	onData func([]visit.Client),
	onError func(error),
) (unsubscribe func()) {

	ctx, cancel := context.WithCancel(ctx)
	f := &feed{
		uc:      uc,
		p:       p,
		onData:  onData,
		onError: onError,
		logger:  uc.logger.With("partition", p.Path()),
	}

	go f.run(ctx)

	return func() {
		f.guard.Stop()
		cancel()
	}
}

type feed struct {
	uc      *SubscribeClients
	p       visit.Partition
	onData  func([]visit.Client)
	onError func(error)
	logger  logging.Logger
	guard   visit.Guard
}

func (f *feed) run(ctx context.Context) {
	if err := f.p.Validate(); err != nil {
		f.fail(err)
		return
	}

	sub, err := f.uc.broker.Subscribe(ctx, f.p.Path())
	if err != nil {
		f.fail(fmt.Errorf("%w: %v", visit.ErrSubscription, err))
		return
	}
	defer sub.Close()

	f.logger.Debug(ctx, "feed opened")
	defer f.logger.Debug(ctx, "feed closed")

	if !f.load(ctx) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.C:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				cause := sub.Err()
				if cause == nil {
					cause = realtime.ErrConnectionLost
				}
				f.fail(fmt.Errorf("%w: %v", visit.ErrSubscription, cause))
				return
			}
			if !f.load(ctx) {
				return
			}
		}
	}
}

// load reads a fresh snapshot and delivers it. Reads happen one at a time,
// so snapshots reach the callback in the order they were taken.
func (f *feed) load(ctx context.Context) bool {
	clients, err := f.uc.list.Execute(ctx, f.p)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return false
		}
		f.fail(fmt.Errorf("%w: %v", visit.ErrSubscription, err))
		return false
	}
	return f.guard.Do(func() { f.onData(clients) })
}

func (f *feed) fail(err error) {
	f.logger.Warn(context.Background(), "feed failed", "error", err)
	f.guard.Finish(func() { f.onError(err) })
}
