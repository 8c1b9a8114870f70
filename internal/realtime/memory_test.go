package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSignal(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case _, ok := <-s.C:
		require.True(t, ok, "subscription closed: %v", s.Err())
	case <-time.After(2 * time.Second):
		t.Fatal("no signal")
	}
}

func assertNoSignal(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case <-s.C:
		t.Fatal("unexpected signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBroker_FanOutPerTopic(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker()

	mon1, err := b.Subscribe(ctx, "users/u1/clients/mon")
	require.NoError(t, err)
	mon2, err := b.Subscribe(ctx, "users/u1/clients/mon")
	require.NoError(t, err)
	tue, err := b.Subscribe(ctx, "users/u1/clients/tue")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "users/u1/clients/mon"))

	waitSignal(t, mon1)
	waitSignal(t, mon2)
	assertNoSignal(t, tue)
}

func TestMemoryBroker_CoalescesBursts(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker()
	s, err := b.Subscribe(ctx, "t")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Publish(ctx, "t"))
	}

	waitSignal(t, s)
	assertNoSignal(t, s)
}

func TestMemoryBroker_CloseUnregisters(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker()
	s, err := b.Subscribe(ctx, "t")
	require.NoError(t, err)
	require.Equal(t, 1, b.Subscribers("t"))

	s.Close()

	_, ok := <-s.C
	assert.False(t, ok)
	assert.NoError(t, s.Err())
	assert.Eventually(t, func() bool { return b.Subscribers("t") == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryBroker_ContextCancelEndsSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewMemoryBroker()
	s, err := b.Subscribe(ctx, "t")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-s.C:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
}

func TestMemoryBroker_CloseFailsSubscribers(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker()
	s, err := b.Subscribe(ctx, "t")
	require.NoError(t, err)

	require.NoError(t, b.Close())

	_, ok := <-s.C
	assert.False(t, ok)
	assert.ErrorIs(t, s.Err(), ErrClosed)

	_, err = b.Subscribe(ctx, "t")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Publish(ctx, "t"), ErrClosed)
}
