package client

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

// UpdateClient replaces the whole record at a key.
type UpdateClient struct {
	repo   visit.Repository
	broker realtime.Broker
	audit  *audit.Dispatcher
	logger logging.Logger
}

func NewUpdateClient(
	repo visit.Repository,
	broker realtime.Broker,
	audit *audit.Dispatcher,
	logger logging.Logger,
) *UpdateClient {
	return &UpdateClient{repo: repo, broker: broker, audit: audit, logger: logger}
}

func (uc *UpdateClient) Execute(
	ctx context.Context,
	p visit.Partition,
	id string,
	data visit.ClientData,
) error {

	if err := p.Validate(); err != nil {
		return err
	}
	if err := visit.ValidateID(id); err != nil {
		return err
	}
	data, err := data.Normalize()
	if err != nil {
		return err
	}

	if err := uc.repo.Replace(ctx, p, id, data); err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	changed(ctx, uc.broker, uc.audit, uc.logger, p, audit.ActionClientUpdated, id)
	return nil
}
