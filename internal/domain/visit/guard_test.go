package visit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_DropsAfterStop(t *testing.T) {
	var g Guard
	calls := 0

	assert.True(t, g.Do(func() { calls++ }))
	g.Stop()
	assert.False(t, g.Do(func() { calls++ }))
	g.Finish(func() { calls++ })

	assert.Equal(t, 1, calls)
}

func TestGuard_FinishIsLast(t *testing.T) {
	var g Guard
	var got []string

	g.Finish(func() { got = append(got, "error") })
	g.Do(func() { got = append(got, "data") })

	assert.Equal(t, []string{"error"}, got)
}
