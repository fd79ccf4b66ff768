package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// CreateFallbackResolver creates a reference cache with no backing store, so
// every lookup is answered from the embedded fallback tables
func CreateFallbackResolver(t *testing.T) reference.Cache {
	cache, err := reference.NewCache(&reference.Config{})
	require.NoError(t, err, "failed to create reference cache")
	t.Cleanup(cache.Reset)
	return cache
}
