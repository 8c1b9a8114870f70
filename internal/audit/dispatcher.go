package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/visit-tracker/internal/logging"
)

const (
	ActionUserSignedUp  = "user_signed_up"
	ActionUserSignedIn  = "user_signed_in"
	ActionUserSignedOut = "user_signed_out"
	ActionClientAdded   = "client_added"
	ActionClientUpdated = "client_updated"
	ActionClientVisited = "client_visited"
	ActionClientDeleted = "client_deleted"
)

type Event struct {
	UserID    string
	Action    string
	Entity    string
	EntityKey string
	Metadata  any
}

// Dispatcher writes audit events off the request path. A full queue drops
// events; auditing never fails a request.
type Dispatcher struct {
	logger *Logger
	log    logging.Logger
	queue  chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger, log logging.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	ctx := context.Background()
	for ev := range d.queue {
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error(ctx, "audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch is safe on a nil Dispatcher. Events sent after Close are
// dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn(context.Background(), "audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains queued events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
