package client

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

type DeleteClient struct {
	repo   visit.Repository
	broker realtime.Broker
	audit  *audit.Dispatcher
	logger logging.Logger
}

func NewDeleteClient(
	repo visit.Repository,
	broker realtime.Broker,
	audit *audit.Dispatcher,
	logger logging.Logger,
) *DeleteClient {
	return &DeleteClient{repo: repo, broker: broker, audit: audit, logger: logger}
}

// Execute is idempotent: a missing key is not an error.
func (uc *DeleteClient) Execute(
	ctx context.Context,
	p visit.Partition,
	id string,
) error {

	if err := p.Validate(); err != nil {
		return err
	}
	if err := visit.ValidateID(id); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, p, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	changed(ctx, uc.broker, uc.audit, uc.logger, p, audit.ActionClientDeleted, id)
	return nil
}
