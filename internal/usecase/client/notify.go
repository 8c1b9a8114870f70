// Package client implements the partition operations of visit.Store on top
// of a visit.Repository and a realtime.Broker.
package client

import (
	"context"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
)

// changed tells live subscribers to re-read p and records the audit event.
// The write already happened, so a failed publish is logged, not returned.
func changed(
	ctx context.Context,
	broker realtime.Broker,
	dispatcher *audit.Dispatcher,
	logger logging.Logger,
	p visit.Partition,
	action string,
	key string,
) {
	if err := broker.Publish(ctx, p.Path()); err != nil {
		logger.Warn(ctx, "publish change failed", "partition", p.Path(), "error", err)
	}

	dispatcher.Dispatch(audit.Event{
		UserID:    p.UserID,
		Action:    action,
		Entity:    "client",
		EntityKey: key,
		Metadata:  map[string]string{"day": string(p.Day)},
	})
}
