package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/infra/repository"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
	"github.com/BruksfildServices01/visit-tracker/internal/testutil"
)

const waitFor = 2 * time.Second

// recorder collects snapshots delivered to a subscription.
type recorder struct {
	mu        sync.Mutex
	snapshots [][]visit.Client
	errs      []error
}

func (r *recorder) onData(cs []visit.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, cs)
}

func (r *recorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recorder) last() []visit.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func (r *recorder) errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// waitUntil polls the latest snapshot until cond holds.
func (r *recorder) waitUntil(t *testing.T, cond func([]visit.Client) bool) []visit.Client {
	t.Helper()
	var got []visit.Client
	require.Eventually(t, func() bool {
		if r.count() == 0 {
			return false
		}
		got = r.last()
		return cond(got)
	}, waitFor, 5*time.Millisecond)
	return got
}

func newGateway(t *testing.T) (*Gateway, *realtime.MemoryBroker) {
	t.Helper()
	broker := realtime.NewMemoryBroker()
	repo := repository.NewClientGormRepository(testutil.NewDB(t))
	return NewGateway(repo, broker, nil, logging.Discard()), broker
}

func subscribe(t *testing.T, g *Gateway, userID string, day visit.Day) *recorder {
	t.Helper()
	rec := &recorder{}
	unsubscribe := g.Subscribe(context.Background(), userID, day, rec.onData, rec.onError)
	t.Cleanup(unsubscribe)
	rec.waitUntil(t, func([]visit.Client) bool { return true })
	return rec
}

func ids(cs []visit.Client) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestSubscribe_ReverseInsertionOrderWithBackendKeys(t *testing.T) {
	ctx := context.Background()
	g, _ := newGateway(t)

	for _, n := range []string{"first", "second", "third"} {
		require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: n, Address: n + " st"}))
	}

	rec := subscribe(t, g, "u1", visit.Monday)
	got := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 3 })

	assert.Equal(t, "third", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "first", got[2].Name)

	listed, err := g.List(ctx, "u1", visit.Monday)
	require.NoError(t, err)
	assert.Equal(t, ids(listed), ids(got))
	for _, c := range got {
		assert.NotEmpty(t, c.ID)
	}
}

func TestAdd_ThenSnapshotHasOneNewUnvisitedEntry(t *testing.T) {
	ctx := context.Background()
	g, _ := newGateway(t)

	rec := subscribe(t, g, "u1", visit.Tuesday)
	assert.Empty(t, rec.last())

	require.NoError(t, g.Add(ctx, "u1", visit.Tuesday, visit.ClientData{Name: " Acme ", Address: "1 Main"}))

	got := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 })
	assert.Equal(t, "Acme", got[0].Name)
	assert.Equal(t, "1 Main", got[0].Address)
	assert.False(t, got[0].Visited)
}

func TestAdd_RejectsBlankFields(t *testing.T) {
	g, _ := newGateway(t)
	err := g.Add(context.Background(), "u1", visit.Monday, visit.ClientData{Name: "  ", Address: "x"})
	assert.ErrorIs(t, err, visit.ErrInvalidClient)

	err = g.Add(context.Background(), "u1", visit.Day("xx"), visit.ClientData{Name: "a", Address: "x"})
	assert.ErrorIs(t, err, visit.ErrInvalidDay)
}

func TestSetVisited_ToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	g, _ := newGateway(t)
	rec := subscribe(t, g, "u1", visit.Monday)

	require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: "Acme", Address: "1 Main"}))
	c := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 })[0]

	require.NoError(t, g.SetVisited(ctx, "u1", visit.Monday, c.ID, !c.Visited))
	rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 && cs[0].Visited })

	require.NoError(t, g.SetVisited(ctx, "u1", visit.Monday, c.ID, c.Visited))
	got := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 && !cs[0].Visited })
	assert.Equal(t, c, got[0])

	err := g.SetVisited(ctx, "u1", visit.Monday, "missing", true)
	assert.ErrorIs(t, err, visit.ErrClientNotFound)
}

func TestUpdate_ReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	g, _ := newGateway(t)
	rec := subscribe(t, g, "u1", visit.Monday)

	require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: "Acme", Address: "1 Main"}))
	c := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 })[0]

	require.NoError(t, g.Update(ctx, "u1", visit.Monday, c.ID, visit.ClientData{Name: "Acme Co", Address: "9 Elm", Visited: true}))
	got := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 && cs[0].Visited })
	assert.Equal(t, visit.Client{ID: c.ID, Name: "Acme Co", Address: "9 Elm", Visited: true}, got[0])

	err := g.Update(ctx, "u1", visit.Monday, c.ID, visit.ClientData{Name: "", Address: "9 Elm"})
	assert.ErrorIs(t, err, visit.ErrInvalidClient)
}

func TestDelete_IdempotentAndLeavesOthers(t *testing.T) {
	ctx := context.Background()
	g, _ := newGateway(t)
	rec := subscribe(t, g, "u1", visit.Monday)

	require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: "Acme", Address: "1 Main"}))
	require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: "Beta", Address: "2 Oak"}))
	all := rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 2 })

	require.NoError(t, g.Delete(ctx, "u1", visit.Monday, all[0].ID))
	rec.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 })

	require.NoError(t, g.Delete(ctx, "u1", visit.Monday, all[0].ID))
	listed, err := g.List(ctx, "u1", visit.Monday)
	require.NoError(t, err)
	assert.Equal(t, []string{all[1].ID}, ids(listed))
}

func TestSubscribe_DayIsolation(t *testing.T) {
	ctx := context.Background()
	g, _ := newGateway(t)

	tue := subscribe(t, g, "u1", visit.Tuesday)
	mon := subscribe(t, g, "u1", visit.Monday)

	require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: "Acme", Address: "1 Main"}))
	mon.waitUntil(t, func(cs []visit.Client) bool { return len(cs) == 1 })

	assert.Equal(t, 1, tue.count(), "tuesday feed must not be re-fired by a monday write")
	assert.Empty(t, tue.last())

	listed, err := g.List(ctx, "u1", visit.Tuesday)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestSubscribe_NoCallbacksAfterUnsubscribe(t *testing.T) {
	ctx := context.Background()
	g, broker := newGateway(t)

	var calls atomic.Int32
	unsubscribe := g.Subscribe(ctx, "u1", visit.Monday, func([]visit.Client) { calls.Add(1) }, func(error) { calls.Add(1) })
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, 5*time.Millisecond)

	unsubscribe()
	seen := calls.Load()

	require.NoError(t, g.Add(ctx, "u1", visit.Monday, visit.ClientData{Name: "Acme", Address: "1 Main"}))
	require.NoError(t, broker.Close())
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, seen, calls.Load())
	assert.Eventually(t, func() bool { return broker.Subscribers(visit.Partition{UserID: "u1", Day: visit.Monday}.Path()) == 0 }, waitFor, 5*time.Millisecond)
}

func TestSubscribe_TransportFailureReportsOnce(t *testing.T) {
	g, broker := newGateway(t)
	rec := subscribe(t, g, "u1", visit.Monday)

	require.NoError(t, broker.Close())

	require.Eventually(t, func() bool { return len(rec.errors()) == 1 }, waitFor, 5*time.Millisecond)
	err := rec.errors()[0]
	assert.True(t, errors.Is(err, visit.ErrSubscription), "got %v", err)

	require.NoError(t, g.Add(context.Background(), "u1", visit.Monday, visit.ClientData{Name: "Acme", Address: "1 Main"}))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
	assert.Len(t, rec.errors(), 1)
}

func TestSubscribe_InvalidPartitionReportsError(t *testing.T) {
	g, _ := newGateway(t)
	rec := &recorder{}
	unsubscribe := g.Subscribe(context.Background(), "", visit.Monday, rec.onData, rec.onError)
	defer unsubscribe()

	require.Eventually(t, func() bool { return len(rec.errors()) == 1 }, waitFor, 5*time.Millisecond)
	assert.ErrorIs(t, rec.errors()[0], visit.ErrInvalidPartition)
	assert.Zero(t, rec.count())
}
