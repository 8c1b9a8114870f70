package realtime

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newRedisBroker(t *testing.T) *RedisBroker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBrokerFromClient(client)
}

func TestRedisBroker_PublishReachesSubscriber(t *testing.T) {
	ctx := context.Background()
	b := newRedisBroker(t)

	mon, err := b.Subscribe(ctx, "users/u1/clients/mon")
	require.NoError(t, err)
	defer mon.Close()
	tue, err := b.Subscribe(ctx, "users/u1/clients/tue")
	require.NoError(t, err)
	defer tue.Close()

	require.NoError(t, b.Publish(ctx, "users/u1/clients/mon"))

	waitSignal(t, mon)
	assertNoSignal(t, tue)
}

func TestRedisBroker_CloseEndsSubscription(t *testing.T) {
	ctx := context.Background()
	b := newRedisBroker(t)

	s, err := b.Subscribe(ctx, "t")
	require.NoError(t, err)
	s.Close()

	_, ok := <-s.C
	require.False(t, ok)
	require.NoError(t, s.Err())
}

func TestNewRedisBroker_BadURL(t *testing.T) {
	_, err := NewRedisBroker(context.Background(), "not-a-url")
	require.Error(t, err)
}
