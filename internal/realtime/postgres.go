package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BruksfildServices01/visit-tracker/internal/logging"
)

// pgChannel carries every topic; the NOTIFY payload is the topic itself.
const pgChannel = "visit_changes"

// PostgresBroker uses LISTEN/NOTIFY on the service database. One dedicated
// connection listens and fans out locally.
type PostgresBroker struct {
	pool   *pgxpool.Pool
	local  *MemoryBroker
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPostgresBroker(ctx context.Context, dsn string, logger logging.Logger) (*PostgresBroker, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgx listen conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgChannel); err != nil {
		_ = conn.Close(ctx)
		pool.Close()
		return nil, fmt.Errorf("listen: %w", err)
	}

	lctx, cancel := context.WithCancel(context.Background())
	b := &PostgresBroker{pool: pool, local: NewMemoryBroker(), cancel: cancel}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer conn.Close(context.Background())
		for {
			n, err := conn.WaitForNotification(lctx)
			if err != nil {
				if lctx.Err() == nil {
					logger.Error(lctx, "postgres listener stopped", "error", err)
					b.local.fail(ErrConnectionLost)
				}
				return
			}
			_ = b.local.Publish(lctx, n.Payload)
		}
	}()

	return b, nil
}

func (b *PostgresBroker) Publish(ctx context.Context, topic string) error {
	_, err := b.pool.Exec(ctx, "SELECT pg_notify($1, $2)", pgChannel, topic)
	return err
}

func (b *PostgresBroker) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	return b.local.Subscribe(ctx, topic)
}

func (b *PostgresBroker) Close() error {
	b.cancel()
	b.wg.Wait()
	b.pool.Close()
	return b.local.Close()
}
