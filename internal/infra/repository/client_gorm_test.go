package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/models"
	"github.com/BruksfildServices01/visit-tracker/internal/testutil"
)

func newRepo(t *testing.T) *ClientGormRepository {
	t.Helper()
	return NewClientGormRepository(testutil.NewDB(t))
}

func TestListPartition_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	p := visit.Partition{UserID: "u1", Day: visit.Monday}

	require.NoError(t, repo.Create(ctx, p, "k-b", visit.ClientData{Name: "B", Address: "b"}))
	require.NoError(t, repo.Create(ctx, p, "k-a", visit.ClientData{Name: "A", Address: "a"}))
	require.NoError(t, repo.Create(ctx, p, "k-c", visit.ClientData{Name: "C", Address: "c", Visited: true}))

	got, err := repo.ListPartition(ctx, p)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"k-b", "k-a", "k-c"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.True(t, got[2].Visited)
}

func TestListPartition_IsolatesPartitions(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	mon := visit.Partition{UserID: "u1", Day: visit.Monday}
	tue := visit.Partition{UserID: "u1", Day: visit.Tuesday}
	other := visit.Partition{UserID: "u2", Day: visit.Monday}

	require.NoError(t, repo.Create(ctx, mon, "k1", visit.ClientData{Name: "Acme", Address: "1 Main"}))

	got, err := repo.ListPartition(ctx, tue)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.ListPartition(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplace_OverwritesOrCreates(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	p := visit.Partition{UserID: "u1", Day: visit.Friday}

	require.NoError(t, repo.Create(ctx, p, "k1", visit.ClientData{Name: "Acme", Address: "1 Main", Visited: true}))
	require.NoError(t, repo.Replace(ctx, p, "k1", visit.ClientData{Name: "Acme Co", Address: "9 Elm"}))
	require.NoError(t, repo.Replace(ctx, p, "k2", visit.ClientData{Name: "New", Address: "2 Oak"}))

	got, err := repo.ListPartition(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []visit.Client{
		{ID: "k1", Name: "Acme Co", Address: "9 Elm", Visited: false},
		{ID: "k2", Name: "New", Address: "2 Oak", Visited: false},
	}, got)
}

func TestReplace_RepeatedUpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewClientGormRepository(db)
	p := visit.Partition{UserID: "u1", Day: visit.Monday}

	require.NoError(t, repo.Create(ctx, p, "k0", visit.ClientData{Name: "First", Address: "0 Main"}))
	require.NoError(t, repo.Replace(ctx, p, "k1", visit.ClientData{Name: "Acme", Address: "1 Main"}))
	require.NoError(t, repo.Replace(ctx, p, "k1", visit.ClientData{Name: "Acme Co", Address: "1 Main", Visited: true}))
	require.NoError(t, repo.Replace(ctx, p, "k0", visit.ClientData{Name: "First Co", Address: "0 Main"}))

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Where("client_key = ?", "k1").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := repo.ListPartition(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []visit.Client{
		{ID: "k0", Name: "First Co", Address: "0 Main"},
		{ID: "k1", Name: "Acme Co", Address: "1 Main", Visited: true},
	}, got)
}

func TestSetVisited_SingleField(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	p := visit.Partition{UserID: "u1", Day: visit.Monday}

	require.NoError(t, repo.Create(ctx, p, "k1", visit.ClientData{Name: "Acme", Address: "1 Main"}))
	require.NoError(t, repo.SetVisited(ctx, p, "k1", true))

	got, err := repo.ListPartition(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, visit.Client{ID: "k1", Name: "Acme", Address: "1 Main", Visited: true}, got[0])

	err = repo.SetVisited(ctx, p, "missing", true)
	assert.ErrorIs(t, err, visit.ErrClientNotFound)

	err = repo.SetVisited(ctx, visit.Partition{UserID: "u1", Day: visit.Tuesday}, "k1", false)
	assert.ErrorIs(t, err, visit.ErrClientNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	p := visit.Partition{UserID: "u1", Day: visit.Monday}

	require.NoError(t, repo.Create(ctx, p, "k1", visit.ClientData{Name: "Acme", Address: "1 Main"}))
	require.NoError(t, repo.Create(ctx, p, "k2", visit.ClientData{Name: "Beta", Address: "2 Oak"}))

	require.NoError(t, repo.Delete(ctx, p, "k1"))
	require.NoError(t, repo.Delete(ctx, p, "k1"))

	got, err := repo.ListPartition(ctx, p)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "k2", got[0].ID)
}
