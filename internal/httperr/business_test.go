package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_MatchesThroughWrapping(t *testing.T) {
	sentinel := ErrBusiness("client_not_found")
	wrapped := fmt.Errorf("set visited: %w", sentinel)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, IsBusiness(wrapped, "client_not_found"))
	assert.False(t, IsBusiness(wrapped, "invalid_day"))
	assert.Equal(t, "client_not_found", CodeOf(wrapped))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("boom")))
	assert.Equal(t, "", CodeOf(nil))
}
