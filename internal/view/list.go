package view

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
)

// feed owns at most one partition subscription. Each subscription is
// tagged with a generation; callbacks from an older one are dropped.
//
// Observers run on the subscription goroutine and must not call Mount,
// SelectDay or Close.
type feed struct {
	store visit.Store

	mu          sync.Mutex
	userID      string
	day         visit.Day
	clients     []visit.Client
	loading     bool
	banner      string
	gen         uint64
	closed      bool
	unsubscribe func()
	observers   []func()
}

func newFeed(store visit.Store, day visit.Day) *feed {
	return &feed{store: store, day: day}
}

// Mount opens the subscription for user on the selected day. A closed
// view stays closed.
func (f *feed) Mount(user account.Identity) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.userID = user.UserID
	day := f.day
	f.mu.Unlock()
	f.open(day)
}

// SelectDay switches the partition. Clients of the previous day are
// cleared at once.
func (f *feed) SelectDay(day visit.Day) {
	f.mu.Lock()
	mounted := f.userID != "" && !f.closed
	f.day = day
	f.mu.Unlock()
	if mounted {
		f.open(day)
	}
}

func (f *feed) open(day visit.Day) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	prev := f.unsubscribe
	f.unsubscribe = nil
	f.gen++
	gen := f.gen
	userID := f.userID
	f.clients = nil
	f.loading = true
	f.banner = ""
	f.mu.Unlock()

	if prev != nil {
		prev()
	}
	f.notify()

	unsubscribe := f.store.Subscribe(context.Background(), userID, day,
		func(clients []visit.Client) { f.deliver(gen, clients) },
		func(err error) { f.failed(gen, err) },
	)

	f.mu.Lock()
	if f.gen != gen {
		f.mu.Unlock()
		unsubscribe()
		return
	}
	f.unsubscribe = unsubscribe
	f.mu.Unlock()
}

func (f *feed) deliver(gen uint64, clients []visit.Client) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.clients = clients
	f.loading = false
	f.mu.Unlock()
	f.notify()
}

func (f *feed) failed(gen uint64, err error) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.loading = false
	f.banner = Message(err, "Could not load clients.")
	f.mu.Unlock()
	f.notify()
}

// Close drops the subscription and every client it delivered.
func (f *feed) Close() {
	f.mu.Lock()
	prev := f.unsubscribe
	f.unsubscribe = nil
	f.gen++
	f.closed = true
	f.userID = ""
	f.clients = nil
	f.loading = false
	f.banner = ""
	f.mu.Unlock()

	if prev != nil {
		prev()
	}
}

func (f *feed) OnChange(fn func()) {
	f.mu.Lock()
	f.observers = append(f.observers, fn)
	f.mu.Unlock()
}

func (f *feed) notify() {
	f.mu.Lock()
	fns := append([]func(){}, f.observers...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (f *feed) Day() visit.Day {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.day
}

// Clients is the current snapshot, most recent first.
func (f *feed) Clients() []visit.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]visit.Client(nil), f.clients...)
}

func (f *feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Error is the banner text, empty when there is none.
func (f *feed) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

func (f *feed) DismissError() {
	f.mu.Lock()
	f.banner = ""
	f.mu.Unlock()
	f.notify()
}

func (f *feed) partition() (string, visit.Day) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID, f.day
}

// mutate runs one write. Results arrive through the subscription; only a
// failure changes local state.
func (f *feed) mutate(fallback string, write func(userID string, day visit.Day) error) error {
	userID, day := f.partition()
	if err := write(userID, day); err != nil {
		f.mu.Lock()
		f.banner = Message(err, fallback)
		f.mu.Unlock()
		f.notify()
		return err
	}
	return nil
}

func (f *feed) Add(ctx context.Context, name, address string) error {
	return f.mutate("Could not add the client.", func(userID string, day visit.Day) error {
		return f.store.Add(ctx, userID, day, visit.ClientData{Name: name, Address: address})
	})
}

// Toggle flips the visited flag of the client as last seen.
func (f *feed) Toggle(ctx context.Context, id string) error {
	return f.mutate("Could not update the client.", func(userID string, day visit.Day) error {
		c, ok := visit.Find(f.Clients(), id)
		if !ok {
			return visit.ErrClientNotFound
		}
		return f.store.SetVisited(ctx, userID, day, id, !c.Visited)
	})
}

func (f *feed) Delete(ctx context.Context, id string) error {
	return f.mutate("Could not delete the client.", func(userID string, day visit.Day) error {
		return f.store.Delete(ctx, userID, day, id)
	})
}
