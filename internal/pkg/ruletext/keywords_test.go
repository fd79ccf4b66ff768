package ruletext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

func TestKeywords(t *testing.T) {
	kw := ruletext.NewKeywords("Strength", "Dexterity", "Wisdom", "dexterity", " ")

	t.Run("first match by position", func(t *testing.T) {
		got, ok := kw.First("make a wisdom or STRENGTH saving throw")
		assert.True(t, ok)
		assert.Equal(t, "Wisdom", got)
	})

	t.Run("all in order of appearance without repeats", func(t *testing.T) {
		got := kw.All("Dexterity, then Strength, then dexterity again")
		assert.Equal(t, []string{"Dexterity", "Strength"}, got)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := kw.First("Charisma check")
		assert.False(t, ok)
		assert.Empty(t, kw.All("Charisma check"))
		assert.False(t, kw.Contains(""))
	})

	t.Run("longest candidate wins at the same position", func(t *testing.T) {
		weapons := ruletext.NewKeywords("crossbow", "light crossbow", "hand crossbow")
		got, ok := weapons.First("a light crossbow and 20 bolts")
		assert.True(t, ok)
		assert.Equal(t, "light crossbow", got)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		empty := ruletext.NewKeywords()
		assert.Nil(t, empty.All("anything"))
	})
}

func TestWordKeywords(t *testing.T) {
	kw := ruletext.NewWordKeywords("Orc", "Common")

	assert.Empty(t, kw.All("a sorcerer speaks uncommonly well"))
	assert.Equal(t, []string{"Common", "Orc"}, kw.All("You can speak, read, and write Common and Orc."))
}
