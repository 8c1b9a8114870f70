package client

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
)

// ListClients reads one snapshot, most recent first.
type ListClients struct {
	repo visit.Repository
}

func NewListClients(repo visit.Repository) *ListClients {
	return &ListClients{repo: repo}
}

func (uc *ListClients) Execute(
	ctx context.Context,
	p visit.Partition,
) ([]visit.Client, error) {

	if err := p.Validate(); err != nil {
		return nil, err
	}

	clients, err := uc.repo.ListPartition(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return visit.Reversed(clients), nil
}
