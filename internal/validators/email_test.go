package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailDomainValid_RejectsWithoutLookup(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsEmailDomainValid(ctx, "no-at-sign"))
	assert.False(t, IsEmailDomainValid(ctx, "trailing@"))
}

func TestIsEmailDomainValid_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, IsEmailDomainValid(ctx, "ana@example.com"))
}
