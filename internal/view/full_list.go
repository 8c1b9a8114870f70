package view

import (
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
)

// FullList shows every client of a day with search and a status filter.
type FullList struct {
	*feed

	search string
	status visit.Status
}

func NewFullList(store visit.Store) *FullList {
	return &FullList{feed: newFeed(store, visit.Monday), status: visit.StatusAll}
}

// SetSearch keeps the term as typed; whitespace is part of the match.
func (l *FullList) SetSearch(term string) {
	l.feed.mu.Lock()
	l.search = term
	l.feed.mu.Unlock()
	l.notify()
}

func (l *FullList) SetFilter(status visit.Status) {
	l.feed.mu.Lock()
	l.status = status
	l.feed.mu.Unlock()
	l.notify()
}

func (l *FullList) Search() string {
	l.feed.mu.Lock()
	defer l.feed.mu.Unlock()
	return l.search
}

func (l *FullList) Filter() visit.Status {
	l.feed.mu.Lock()
	defer l.feed.mu.Unlock()
	return l.status
}

// Visible is the clients matching both the filter and the search term.
func (l *FullList) Visible() []visit.Client {
	l.feed.mu.Lock()
	clients, status, search := l.clients, l.status, l.search
	l.feed.mu.Unlock()
	return visit.Filter(clients, status, search)
}

// Totals counts the whole day, ignoring search and filter.
func (l *FullList) Totals() visit.Summary {
	return visit.Summarize(l.Clients())
}
