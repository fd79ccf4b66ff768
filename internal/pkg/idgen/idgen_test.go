package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	t.Run("prefixed", func(t *testing.T) {
		id := idgen.NewUUID("batch").Generate()
		require.True(t, strings.HasPrefix(id, "batch_"))
		_, err := uuid.Parse(strings.TrimPrefix(id, "batch_"))
		assert.NoError(t, err)
	})

	t.Run("bare", func(t *testing.T) {
		gen := idgen.NewUUID("")
		first, second := gen.Generate(), gen.Generate()
		_, err := uuid.Parse(first)
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("batch")
	assert.Equal(t, "batch_1", gen.Generate())
	assert.Equal(t, "batch_2", gen.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}
