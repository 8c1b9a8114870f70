package realtime

import (
	"context"
	"sync"
)

// MemoryBroker fans out within one process.
type MemoryBroker struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
	err    error
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{topics: make(map[string]map[*Subscription]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	for s := range b.topics[topic] {
		s.notify()
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}

	s := newSubscription(ctx)
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		b.topics[topic] = subs
	}
	subs[s] = struct{}{}

	go func() {
		<-s.done()
		b.remove(topic, s)
		s.finish(nil)
	}()

	return s, nil
}

func (b *MemoryBroker) remove(topic string, s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.topics[topic]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.topics, topic)
		}
	}
}

// Subscribers counts live subscriptions on topic.
func (b *MemoryBroker) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

// fail ends every subscription with err and rejects later calls.
func (b *MemoryBroker) fail(err error) {
	b.mu.Lock()
	b.err = err
	var all []*Subscription
	for _, subs := range b.topics {
		for s := range subs {
			all = append(all, s)
		}
	}
	b.mu.Unlock()

	for _, s := range all {
		s.finish(err)
	}
}

func (b *MemoryBroker) Close() error {
	b.fail(ErrClosed)
	return nil
}
