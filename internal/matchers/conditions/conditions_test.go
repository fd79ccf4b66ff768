package conditions_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/conditions"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
	"github.com/KirkDiggler/rpg-ruletext/internal/testutils"
)

type ConditionsTestSuite struct {
	suite.Suite
	resolver reference.Resolver
}

func TestConditionsSuite(t *testing.T) {
	suite.Run(t, new(ConditionsTestSuite))
}

func (s *ConditionsTestSuite) SetupTest() {
	s.resolver = testutils.CreateFallbackResolver(s.T())
}

func (s *ConditionsTestSuite) TestParse() {
	text := "You have advantage on Dexterity (Stealth) checks made to hide. " +
		"You have advantage on saving throws against spells. " +
		"Wearing medium armor doesn't impose disadvantage on your Dexterity (Stealth) checks. " +
		"You have disadvantage on attack rolls while in direct sunlight."

	s.Equal([]rules.ConditionGrant{
		{Effect: rules.ConditionAdvantage, Target: "saving throws against spells"},
		{Effect: rules.ConditionNegateDisadvantage, Target: "your Dexterity (Stealth) checks"},
		{Effect: rules.ConditionDisadvantage, Target: "attack rolls while in direct sunlight"},
	}, conditions.Parse(text))

	s.Nil(conditions.Parse("You can move through difficult terrain."))
}

func (s *ConditionsTestSuite) TestParseSkillAdvantages() {
	got := conditions.ParseSkillAdvantages("You have advantage on Wisdom (Perception) and Intelligence (Investigation) checks that rely on sight.", s.resolver)

	s.Equal([]rules.ConditionGrant{
		{Effect: rules.ConditionAdvantage, Target: "perception", Condition: "that rely on sight"},
		{Effect: rules.ConditionAdvantage, Target: "investigation", Condition: "that rely on sight"},
	}, got)

	s.Nil(conditions.ParseSkillAdvantages("You have advantage on saving throws against poison.", s.resolver))
}

func (s *ConditionsTestSuite) TestParseSaveAdvantages() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.ConditionGrant
	}{
		{
			name:     "being charmed",
			text:     "You have advantage on saving throws against being charmed, and magic can't put you to sleep.",
			expected: []rules.ConditionGrant{{Effect: rules.ConditionAdvantage, Target: "charmed"}},
		},
		{
			name:     "poison",
			text:     "You have advantage on saving throws against poison, and you have resistance against poison damage.",
			expected: []rules.ConditionGrant{{Effect: rules.ConditionAdvantage, Target: "poisoned"}},
		},
		{
			name: "nothing",
			text: "You have darkvision.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, conditions.ParseSaveAdvantages(tc.text, s.resolver))
		})
	}
}

func (s *ConditionsTestSuite) TestParseImmunities() {
	s.Equal([]rules.ConditionGrant{{Effect: rules.ConditionImmunity, Target: "disease"}},
		conditions.ParseImmunities("You are immune to disease."))
	s.Equal([]rules.ConditionGrant{{Effect: rules.ConditionImmunity, Target: "magical aging"}},
		conditions.ParseImmunities("You are immune to magical aging effects."))
	s.Nil(conditions.ParseImmunities("You are resistant to fire."))
}

func (s *ConditionsTestSuite) TestParseResistances() {
	testCases := []struct {
		name     string
		text     string
		expected []rules.ResistanceGrant
	}{
		{
			name:     "all damage with duration",
			text:     "For 1 minute after you drink this potion, you have resistance to all damage.",
			expected: []rules.ResistanceGrant{{DamageType: conditions.DamageAll, Duration: "for 1 minute"}},
		},
		{
			name:     "dealt by",
			text:     "You have resistance to the damage dealt by traps.",
			expected: []rules.ResistanceGrant{{DamageType: conditions.DamageAll, Condition: "the damage dealt by traps"}},
		},
		{
			name: "two types",
			text: "You have resistance to cold and poison damage.",
			expected: []rules.ResistanceGrant{
				{DamageType: "cold"},
				{DamageType: "poison"},
			},
		},
		{
			name:     "type with duration",
			text:     "When you drink this potion, you gain resistance to Fire damage for 1 hour.",
			expected: []rules.ResistanceGrant{{DamageType: "fire", Duration: "for 1 hour"}},
		},
		{
			name: "none",
			text: "You deal extra fire damage.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, conditions.ParseResistances(tc.text))
		})
	}
}

func (s *ConditionsTestSuite) TestParseResistList() {
	s.Equal([]rules.ResistanceGrant{{DamageType: "fire"}, {DamageType: "poison"}},
		conditions.ParseResistList("Fire, poison, "))
	s.Nil(conditions.ParseResistList(""))
}
