package spells_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/spells"
)

type SpellsTestSuite struct {
	suite.Suite
}

func TestSpellsSuite(t *testing.T) {
	suite.Run(t, new(SpellsTestSuite))
}

func (s *SpellsTestSuite) TestDetectReset() {
	s.Equal(rules.ResetLongRest, spells.DetectReset("You regain this ability when you finish a long rest."))
	s.Equal(rules.ResetShortRest, spells.DetectReset("once you finish a short or long rest"))
	s.Equal(rules.ResetTiming(""), spells.DetectReset("at will"))
}

func (s *SpellsTestSuite) TestParseFeat() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.SpellGrant
	}{
		{
			name: "fixed spell with school choice",
			text: "You learn the misty step spell and one 1st-level spell of your choice. The 1st-level spell must be from the divination or enchantment school of magic. You can cast each of these spells without expending a spell slot. Once you cast either of these spells in this way, you can't cast that spell in this way again until you finish a long rest.",
			expected: []rules.SpellGrant{
				{Name: "Misty Step", Reset: rules.ResetLongRest},
				{IsChoice: true, ChoiceGroup: "spell_choice_1", Quantity: 1, MaxLevel: 1, Schools: []string{"divination", "enchantment"}},
			},
		},
		{
			name: "class cantrips and class spell",
			text: "Choose a class: bard. You learn two bard cantrips of your choice. In addition, choose one 1st-level bard spell.",
			expected: []rules.SpellGrant{
				{SpellList: "bard", IsCantrip: true, IsChoice: true, ChoiceGroup: "spell_choice_1", Quantity: 2},
				{SpellList: "bard", IsChoice: true, ChoiceGroup: "spell_choice_2", Quantity: 1, MaxLevel: 1},
			},
		},
		{
			name: "ritual only",
			text: "you acquire a ritual book holding two 1st-level wizard spells of your choice. The spells you choose must have the ritual tag.",
			expected: []rules.SpellGrant{
				{SpellList: "wizard", IsChoice: true, ChoiceGroup: "spell_choice_1", Quantity: 2, MaxLevel: 1, RitualOnly: true},
			},
		},
		{
			name: "nothing",
			text: "You gain a +1 bonus to AC.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, spells.ParseFeat(tc.text))
		})
	}
}

func (s *SpellsTestSuite) TestParseRace() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.SpellGrant
	}{
		{
			name: "cantrip from two lists",
			text: "You know one cantrip of your choice from the cleric or wizard spell list.",
			expected: []rules.SpellGrant{
				{SpellList: "cleric", IsCantrip: true, IsChoice: true, Quantity: 1},
				{SpellList: "wizard", IsCantrip: true, IsChoice: true, Quantity: 1},
			},
		},
		{
			name: "fixed cantrip and level gated spell",
			text: "You know the thaumaturgy cantrip. Once you reach 3rd level, you can cast the hellish rebuke spell as a 2nd-level spell once with this trait.",
			expected: []rules.SpellGrant{
				{Name: "Thaumaturgy", IsCantrip: true},
				{Name: "Hellish Rebuke", MinLevel: 3, Reset: rules.ResetLongRest},
			},
		},
		{
			name: "level gated spell not repeated",
			text: "Once you reach 3rd level, you can cast the faerie fire spell once with this trait.",
			expected: []rules.SpellGrant{
				{Name: "Faerie Fire", MinLevel: 3, Reset: rules.ResetLongRest},
			},
		},
		{
			name: "once per short rest",
			text: "You can cast the misty step spell once using this trait. You regain the ability to do so when you finish a short or long rest.",
			expected: []rules.SpellGrant{
				{Name: "Misty Step", Reset: rules.ResetShortRest},
			},
		},
		{
			name: "unrelated trait",
			text: "You have darkvision out to 60 feet.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, spells.ParseRace(tc.text))
		})
	}
}
