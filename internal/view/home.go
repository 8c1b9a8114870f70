package view

import (
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
)

const PreviewSize = 5

// Home shows one day's clients with a short preview and a progress count.
type Home struct {
	*feed
}

// NewHome starts on today, the day of the week in the caller's time zone.
func NewHome(store visit.Store, today visit.Day) *Home {
	return &Home{feed: newFeed(store, today)}
}

// Preview is the first PreviewSize clients.
func (h *Home) Preview() []visit.Client {
	cs := h.Clients()
	if len(cs) > PreviewSize {
		cs = cs[:PreviewSize]
	}
	return cs
}

// More counts the clients left out of Preview.
func (h *Home) More() int {
	if n := len(h.Clients()) - PreviewSize; n > 0 {
		return n
	}
	return 0
}

func (h *Home) Summary() visit.Summary {
	return visit.Summarize(h.Clients())
}
