package apiclient

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/session"
)

var _ session.Authenticator = (*AuthClient)(nil)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthClient is the remote session.Authenticator. The stored token is
// checked against /api/me once, when the first listener registers.
type AuthClient struct {
	api *Client

	initOnce sync.Once

	mu        sync.Mutex
	resolved  bool
	current   *account.Identity
	listeners map[int]func(*account.Identity)
	nextID    int

	// serializes deliveries so listeners see changes in order
	notifyMu sync.Mutex
}

func NewAuthClient(api *Client) *AuthClient {
	a := &AuthClient{
		api:       api,
		listeners: make(map[int]func(*account.Identity)),
	}
	api.setUnauthorizedHook(a.invalidate)
	return a
}

// OnIdentityChanged registers fn. fn receives the current identity once it
// is known, then every change. Listeners must not call back into the
// AuthClient.
func (a *AuthClient) OnIdentityChanged(fn func(*account.Identity)) (remove func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	resolved := a.resolved
	a.mu.Unlock()

	a.initOnce.Do(func() { go a.restore() })

	if resolved {
		go func() {
			a.notifyMu.Lock()
			defer a.notifyMu.Unlock()
			a.mu.Lock()
			cur, live := a.current, a.listeners[id] != nil
			a.mu.Unlock()
			if live {
				fn(cur)
			}
		}()
	}

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// Current returns the known identity without waiting for the initial check.
func (a *AuthClient) Current() *account.Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *AuthClient) restore() {
	ctx := context.Background()

	stored, err := a.api.tokens.Load()
	if err != nil || stored == nil {
		if err != nil {
			a.api.logger.Warn(ctx, "load session failed", "error", err)
		}
		a.emit(nil)
		return
	}

	var me struct {
		User account.Identity `json:"user"`
	}
	err = a.api.do(ctx, http.MethodGet, "/api/me", nil, &me, true)

	var apiErr *APIError
	switch {
	case err == nil:
		a.emit(&me.User)
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized:
		// invalidate already ran from the 401 hook
		a.emit(nil)
	default:
		// server unreachable; keep the stored session
		a.api.logger.Warn(ctx, "session check failed", "error", err)
		user := stored.User
		a.emit(&user)
	}
}

func (a *AuthClient) SignIn(ctx context.Context, email, password string) error {
	return a.authenticate(ctx, "/api/auth/login", email, password)
}

func (a *AuthClient) SignUp(ctx context.Context, email, password string) error {
	return a.authenticate(ctx, "/api/auth/signup", email, password)
}

func (a *AuthClient) authenticate(ctx context.Context, path, email, password string) error {
	var s StoredSession
	if err := a.api.do(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, &s, false); err != nil {
		return err
	}
	if err := a.api.tokens.Save(s); err != nil {
		return err
	}
	user := s.User
	a.emit(&user)
	return nil
}

// SignOut always drops the local session; the server call only records it.
func (a *AuthClient) SignOut(ctx context.Context) error {
	if err := a.api.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true); err != nil {
		a.api.logger.Debug(ctx, "logout call failed", "error", err)
	}
	if err := a.api.tokens.Clear(); err != nil {
		return err
	}
	a.emit(nil)
	return nil
}

func (a *AuthClient) invalidate() {
	if err := a.api.tokens.Clear(); err != nil {
		a.api.logger.Warn(context.Background(), "clear session failed", "error", err)
	}
	a.mu.Lock()
	signedIn := a.current != nil
	a.mu.Unlock()
	if signedIn {
		a.emit(nil)
	}
}

func (a *AuthClient) emit(id *account.Identity) {
	a.notifyMu.Lock()
	defer a.notifyMu.Unlock()

	a.mu.Lock()
	a.current = id
	a.resolved = true
	fns := make([]func(*account.Identity), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
