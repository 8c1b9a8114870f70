package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

type AddClient struct {
	repo   visit.Repository
	broker realtime.Broker
	audit  *audit.Dispatcher
	logger logging.Logger
	newKey func() (string, error)
}

func NewAddClient(
	repo visit.Repository,
	broker realtime.Broker,
	audit *audit.Dispatcher,
	logger logging.Logger,
) *AddClient {
	return &AddClient{
		repo:   repo,
		broker: broker,
		audit:  audit,
		logger: logger,
		newKey: newKey,
	}
}

// newKey returns a time-ordered UUIDv7 so keys sort in creation order.
func newKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Execute stores data under a fresh key. The key is not returned; live
// subscribers receive it with the next snapshot.
func (uc *AddClient) Execute(
	ctx context.Context,
	p visit.Partition,
	data visit.ClientData,
) error {

	if err := p.Validate(); err != nil {
		return err
	}
	data, err := data.Normalize()
	if err != nil {
		return err
	}

	key, err := uc.newKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	if err := uc.repo.Create(ctx, p, key, data); err != nil {
		return fmt.Errorf("add client: %w", err)
	}

	changed(ctx, uc.broker, uc.audit, uc.logger, p, audit.ActionClientAdded, key)
	return nil
}
