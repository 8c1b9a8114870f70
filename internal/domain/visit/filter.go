package visit

import (
	"strings"
)

// Status selects clients by their visited flag.
type Status string

const (
	StatusAll       Status = "all"
	StatusVisited   Status = "visited"
	StatusUnvisited Status = "unvisited"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusAll, true
	case StatusAll, StatusVisited, StatusUnvisited:
		return st, true
	}
	return "", false
}

func (s Status) Matches(c Client) bool {
	switch s {
	case StatusVisited:
		return c.Visited
	case StatusUnvisited:
		return !c.Visited
	default:
		return true
	}
}

// MatchesSearch is a case-insensitive substring match on name or address.
// An empty term matches everything.
func MatchesSearch(c Client, term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), t) ||
		strings.Contains(strings.ToLower(c.Address), t)
}

// Filter keeps the clients matching both status and search, preserving order.
func Filter(clients []Client, status Status, search string) []Client {
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if status.Matches(c) && MatchesSearch(c, search) {
			out = append(out, c)
		}
	}
	return out
}

type Summary struct {
	Total     int `json:"total"`
	Visited   int `json:"visited"`
	Remaining int `json:"remaining"`
}

func Summarize(clients []Client) Summary {
	s := Summary{Total: len(clients)}
	for _, c := range clients {
		if c.Visited {
			s.Visited++
		}
	}
	s.Remaining = s.Total - s.Visited
	return s
}
