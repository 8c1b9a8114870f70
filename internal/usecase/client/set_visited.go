package client

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

// SetVisited writes only the visited flag, so concurrent edits to other
// fields are never overwritten.
type SetVisited struct {
	repo   visit.Repository
	broker realtime.Broker
	audit  *audit.Dispatcher
	logger logging.Logger
}

func NewSetVisited(
	repo visit.Repository,
	broker realtime.Broker,
	audit *audit.Dispatcher,
	logger logging.Logger,
) *SetVisited {
	return &SetVisited{repo: repo, broker: broker, audit: audit, logger: logger}
}

func (uc *SetVisited) Execute(
	ctx context.Context,
	p visit.Partition,
	id string,
	visited bool,
) error {

	if err := p.Validate(); err != nil {
		return err
	}
	if err := visit.ValidateID(id); err != nil {
		return err
	}

	if err := uc.repo.SetVisited(ctx, p, id, visited); err != nil {
		return fmt.Errorf("set visited: %w", err)
	}

	changed(ctx, uc.broker, uc.audit, uc.logger, p, audit.ActionClientVisited, id)
	return nil
}
