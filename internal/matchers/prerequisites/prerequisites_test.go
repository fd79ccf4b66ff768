package prerequisites_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/prerequisites"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
	"github.com/KirkDiggler/rpg-ruletext/internal/testutils"
)

type PrerequisitesTestSuite struct {
	suite.Suite
	resolver reference.Resolver
}

func TestPrerequisitesSuite(t *testing.T) {
	suite.Run(t, new(PrerequisitesTestSuite))
}

func (s *PrerequisitesTestSuite) SetupTest() {
	s.resolver = testutils.CreateFallbackResolver(s.T())
}

func (s *PrerequisitesTestSuite) TestParseFeat() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.Prerequisite
	}{
		{
			name: "single ability",
			text: "Dexterity 13 or higher",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteAbility, Target: "DEX", Minimum: 13, Group: 1},
			},
		},
		{
			name: "either ability",
			text: "Intelligence or Wisdom 13 or higher",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteAbility, Target: "INT", Minimum: 13, Group: 1},
				{Kind: rules.PrerequisiteAbility, Target: "WIS", Minimum: 13, Group: 1},
			},
		},
		{
			name: "armor proficiency",
			text: "Proficiency with medium armor",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteProficiency, Target: "medium-armor", Group: 1},
			},
		},
		{
			name: "skill proficiency",
			text: "Proficiency in Acrobatics",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteProficiency, Target: "acrobatics", Group: 1},
			},
		},
		{
			name: "single race",
			text: "Elf",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteRace, Target: "Elf", Group: 1},
			},
		},
		{
			name: "race or race",
			text: "Elf or Half-Elf",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteRace, Target: "Elf", Group: 1},
				{Kind: rules.PrerequisiteRace, Target: "Half-Elf", Group: 1},
			},
		},
		{
			name: "subrace",
			text: "Elf (High)",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteRace, Target: "Elf (High)", Group: 1},
			},
		},
		{
			name: "races with trailing skill",
			text: "Dwarf, Gnome, Halfling, Small Race, Proficiency in the Acrobatics skill",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteRace, Target: "Dwarf", Group: 1},
				{Kind: rules.PrerequisiteRace, Target: "Gnome", Group: 1},
				{Kind: rules.PrerequisiteRace, Target: "Halfling", Group: 1},
				{Kind: rules.PrerequisiteProficiency, Target: "acrobatics", Group: 2},
			},
		},
		{
			name: "class",
			text: "Wizard",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteClass, Target: "wizard", Group: 1},
			},
		},
		{
			name: "free text spellcasting",
			text: "The ability to cast at least one spell",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteOther, Target: "The ability to cast at least one spell", Group: 1},
			},
		},
		{
			name: "free text feature",
			text: "Spellcasting or Pact Magic feature",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteOther, Target: "Spellcasting or Pact Magic feature", Group: 1},
			},
		},
		{
			name: "unknown proficiency",
			text: "Proficiency with starship piloting",
			expected: []rules.Prerequisite{
				{Kind: rules.PrerequisiteOther, Target: "Proficiency with starship piloting", Group: 1},
			},
		},
		{
			name: "empty",
			text: "  ",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, prerequisites.ParseFeat(tc.text, s.resolver))
		})
	}
}

func (s *PrerequisitesTestSuite) TestParseFeatExpandsWeaponCategory() {
	got := prerequisites.ParseFeat("Proficiency with a martial weapon", s.resolver)

	s.Require().NotEmpty(got)
	s.Equal(rules.Prerequisite{Kind: rules.PrerequisiteProficiency, Target: "martial-weapons", Group: 1}, got[0])

	targets := make([]string, 0, len(got))
	for _, p := range got {
		s.Equal(1, p.Group)
		targets = append(targets, p.Target)
	}
	s.Contains(targets, "longsword")
	s.Contains(targets, "whip")
	s.NotContains(targets, "dagger")
}

func (s *PrerequisitesTestSuite) TestParseMulticlass() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.MulticlassRequirement
	}{
		{
			name: "both required",
			text: "To multiclass as a Paladin you need:\nAbility Score Minimum:\n• Strength 13\n• Charisma 13\nProficiencies Gained: Light armor",
			expected: []rules.MulticlassRequirement{
				{Ability: "STR", Minimum: 13},
				{Ability: "CHA", Minimum: 13},
			},
		},
		{
			name: "trailing or",
			text: "Ability Score Minimum:\n• Strength 13, or\n• Dexterity 13\nProficiencies Gained: Light armor",
			expected: []rules.MulticlassRequirement{
				{Ability: "STR", Minimum: 13, IsOr: true},
				{Ability: "DEX", Minimum: 13, IsOr: true},
			},
		},
		{
			name: "at least one of",
			text: "Ability Score Minimum: at least 1 of\n• Strength 13\n• Dexterity 13",
			expected: []rules.MulticlassRequirement{
				{Ability: "STR", Minimum: 13, IsOr: true},
				{Ability: "DEX", Minimum: 13, IsOr: true},
			},
		},
		{
			name: "no section",
			text: "You gain the following proficiencies.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, prerequisites.ParseMulticlass(tc.text, s.resolver))
		})
	}
}
