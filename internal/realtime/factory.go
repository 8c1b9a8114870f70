package realtime

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/visit-tracker/internal/config"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
)

// New builds the broker selected by cfg.RealtimeDriver.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (Broker, error) {
	switch cfg.RealtimeDriver {
	case "", config.RealtimeMemory:
		return NewMemoryBroker(), nil
	case config.RealtimeRedis:
		return NewRedisBroker(ctx, cfg.RedisURL)
	case config.RealtimePostgres:
		return NewPostgresBroker(ctx, cfg.DBUrl, logger)
	default:
		return nil, fmt.Errorf("unknown realtime driver %q", cfg.RealtimeDriver)
	}
}
