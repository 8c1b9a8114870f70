// Package session tracks who is signed in. State changes come only from
// the Authenticator's identity listener.
package session

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
)

type State int

const (
	Loading State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Authenticator is the external identity provider.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	// OnIdentityChanged calls fn with the current identity (nil when signed
	// out) once known, then on every change.
	OnIdentityChanged(fn func(*account.Identity)) (remove func())
}

type Controller struct {
	auth Authenticator

	mu        sync.Mutex
	state     State
	identity  *account.Identity
	remove    func()
	closed    bool
	observers []func(State, *account.Identity)
	ready     chan struct{}
	readyOnce sync.Once
}

func NewController(auth Authenticator) *Controller {
	return &Controller{auth: auth, ready: make(chan struct{})}
}

// Start registers the identity listener. Calling it twice is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.remove != nil {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	remove := c.auth.OnIdentityChanged(c.apply)

	c.mu.Lock()
	c.remove = remove
	c.mu.Unlock()
}

// Close removes the listener; later identity changes are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	remove := c.remove
	c.remove = func() {}
	c.closed = true
	c.mu.Unlock()
	if remove != nil {
		remove()
	}
}

func (c *Controller) apply(id *account.Identity) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if id == nil {
		c.state = Unauthenticated
		c.identity = nil
	} else {
		cp := *id
		c.state = Authenticated
		c.identity = &cp
	}
	state, ident := c.state, c.identity
	observers := append([]func(State, *account.Identity){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state, ident)
	}

	// observers have seen the first state by the time AwaitReady returns
	c.readyOnce.Do(func() { close(c.ready) })
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity is nil unless Authenticated.
func (c *Controller) Identity() *account.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return nil
	}
	cp := *c.identity
	return &cp
}

// OnChange registers fn for every state transition.
func (c *Controller) OnChange(fn func(State, *account.Identity)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// AwaitReady blocks until the first identity report arrives.
func (c *Controller) AwaitReady(ctx context.Context) (State, error) {
	select {
	case <-c.ready:
		return c.State(), nil
	case <-ctx.Done():
		return Loading, ctx.Err()
	}
}

func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	return c.auth.SignIn(ctx, account.NormalizeEmail(email), password)
}

// SignUp checks the rules locally before calling out, so the user gets the
// same messages without a round trip.
func (c *Controller) SignUp(ctx context.Context, email, password, confirm string) error {
	email = account.NormalizeEmail(email)
	if err := account.ValidateSignUp(email, password); err != nil {
		return err
	}
	if password != confirm {
		return account.ErrPasswordMismatch
	}
	return c.auth.SignUp(ctx, email, password)
}

func (c *Controller) SignOut(ctx context.Context) error {
	return c.auth.SignOut(ctx)
}
