package visit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want Day
	}{
		{"mon", Monday},
		{" TUE ", Tuesday},
		{"Wednesday", Wednesday},
		{"sunday", Sunday},
	}
	for _, tc := range tests {
		got, err := ParseDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []string{"", "xyz", "mondays", "mo"} {
		_, err := ParseDay(bad)
		assert.ErrorIs(t, err, ErrInvalidDay, bad)
	}
}

func TestDayOf_MondayFirst(t *testing.T) {
	// 2026-10-12 is a Monday.
	base := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	for i, want := range Days {
		assert.Equal(t, want, DayOf(base.AddDate(0, 0, i)))
	}
}

func TestDay_Label(t *testing.T) {
	assert.Equal(t, "Thursday", Thursday.Label())
	assert.Equal(t, "nope", Day("nope").Label())
	assert.Len(t, Days, 7)
}
