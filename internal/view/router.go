package view

import (
	"errors"
	"sync"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/session"
)

type Page string

const (
	PageLoading Page = "loading"
	PageLogin   Page = "login"
	PageSignUp  Page = "signup"
	PageHome    Page = "home"
	PageList    Page = "list"
)

var ErrPageUnavailable = errors.New("view: page not available in this session state")

// Router picks the page from the session state and owns the mounted view.
// Signing out closes the views and drops every client they held.
type Router struct {
	session *session.Controller
	store   visit.Store
	today   func() visit.Day

	mu        sync.Mutex
	page      Page
	identity  *account.Identity
	home      *Home
	list      *FullList
	observers []func(Page)
}

func NewRouter(ctrl *session.Controller, store visit.Store, today func() visit.Day) *Router {
	return &Router{session: ctrl, store: store, today: today, page: PageLoading}
}

// Start follows the session controller and starts it.
func (r *Router) Start() {
	r.session.OnChange(r.onSession)
	r.session.Start()
}

func (r *Router) Close() {
	r.session.Close()
	r.closeViews()
}

func (r *Router) onSession(state session.State, id *account.Identity) {
	switch state {
	case session.Authenticated:
		r.mu.Lock()
		same := r.identity != nil && r.identity.UserID == id.UserID && r.page != PageLoading
		r.mu.Unlock()
		if same {
			return
		}
		r.closeViews()
		home := NewHome(r.store, r.today())
		r.mu.Lock()
		r.identity = id
		r.home = home
		r.page = PageHome
		r.mu.Unlock()
		home.Mount(*id)
	case session.Unauthenticated:
		r.closeViews()
		r.mu.Lock()
		r.identity = nil
		if r.page != PageSignUp {
			r.page = PageLogin
		}
		r.mu.Unlock()
	}
	r.notify()
}

func (r *Router) closeViews() {
	r.mu.Lock()
	home, list := r.home, r.list
	r.home, r.list = nil, nil
	r.mu.Unlock()

	if home != nil {
		home.Close()
	}
	if list != nil {
		list.Close()
	}
}

// Navigate switches pages within the current session state. Leaving a
// client page closes its view.
func (r *Router) Navigate(to Page) error {
	r.mu.Lock()
	id := r.identity
	r.mu.Unlock()

	switch to {
	case PageLogin, PageSignUp:
		if id != nil {
			return ErrPageUnavailable
		}
		r.mu.Lock()
		r.page = to
		r.mu.Unlock()
	case PageHome, PageList:
		if id == nil {
			return ErrPageUnavailable
		}
		r.closeViews()
		r.mu.Lock()
		r.page = to
		var mount interface{ Mount(account.Identity) }
		if to == PageHome {
			r.home = NewHome(r.store, r.today())
			mount = r.home
		} else {
			r.list = NewFullList(r.store)
			mount = r.list
		}
		r.mu.Unlock()
		mount.Mount(*id)
	default:
		return ErrPageUnavailable
	}
	r.notify()
	return nil
}

func (r *Router) Page() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Home is nil unless the home page is shown.
func (r *Router) Home() *Home {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.home
}

// List is nil unless the full list is shown.
func (r *Router) List() *FullList {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list
}

func (r *Router) Session() *session.Controller {
	return r.session
}

func (r *Router) OnChange(fn func(Page)) {
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

func (r *Router) notify() {
	r.mu.Lock()
	page := r.page
	fns := append([]func(Page){}, r.observers...)
	r.mu.Unlock()
	for _, fn := range fns {
		fn(page)
	}
}
