package visit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(cs []Client) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestFilter_StatusAndSearchCompose(t *testing.T) {
	clients := []Client{
		{ID: "1", Name: "Acme", Address: "1 Main", Visited: false},
		{ID: "2", Name: "Beta", Address: "2 Oak", Visited: true},
	}

	assert.Equal(t, []string{"Acme"}, names(Filter(clients, StatusUnvisited, "acme")))
	assert.Equal(t, []string{"Beta"}, names(Filter(clients, StatusVisited, "")))
	assert.Equal(t, []string{"Beta"}, names(Filter(clients, StatusAll, "OAK")))
	assert.Empty(t, Filter(clients, StatusVisited, "acme"))
	assert.Equal(t, []string{"Acme", "Beta"}, names(Filter(clients, StatusAll, "")))
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("")
	assert.True(t, ok)
	assert.Equal(t, StatusAll, st)

	st, ok = ParseStatus("Visited")
	assert.True(t, ok)
	assert.Equal(t, StatusVisited, st)

	_, ok = ParseStatus("done")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Client{{Visited: true}, {}, {}})
	assert.Equal(t, Summary{Total: 3, Visited: 1, Remaining: 2}, s)
	assert.Equal(t, Summary{}, Summarize(nil))
}
