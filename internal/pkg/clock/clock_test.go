package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/clock"
)

func TestStepping(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewStepping(start, time.Second)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Second), c.Now())
}

func TestReal(t *testing.T) {
	before := time.Now()
	assert.False(t, clock.New().Now().Before(before))
}
