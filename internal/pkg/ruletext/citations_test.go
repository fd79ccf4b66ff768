package ruletext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

func TestStripCitations(t *testing.T) {
	text := "You gain a +1 bonus to AC.\n\nSource:\tPlayer's Handbook (2014) p. 70,\n\tXanathar's Guide to Everything p. 12"
	assert.Equal(t, "You gain a +1 bonus to AC.", ruletext.StripCitations(text))

	assert.Equal(t, "no citation here", ruletext.StripCitations("  no citation here "))
	assert.Equal(t, "Lower case", ruletext.StripCitations("Lower case\nsource: PHB"))
}

func TestParseCitations(t *testing.T) {
	cache, err := reference.NewCache(&reference.Config{})
	require.NoError(t, err)

	text := "Some text.\nSource:\tPlayer's Handbook (2014) p. 70, 72,\n\tXanathar's Guide to Everything p. 12, Homebrew Almanac"

	got := ruletext.ParseCitations(text, cache)
	assert.Equal(t, []rules.SourceCitation{
		{Code: "PHB", Name: "Player's Handbook", Pages: "70, 72"},
		{Code: "XGE", Name: "Xanathar's Guide to Everything", Pages: "12"},
		{Name: "Homebrew Almanac"},
	}, got)

	assert.Nil(t, ruletext.ParseCitations("no marker", cache))
}
