package race_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/race"
	"github.com/KirkDiggler/rpg-ruletext/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	orchestrator race.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()

	orchestrator, err := race.NewOrchestrator(&race.Config{
		Reference: testutils.CreateFallbackResolver(s.T()),
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) extract(r *source.Race) *race.Payload {
	output, err := s.orchestrator.Extract(s.ctx, &race.ExtractInput{Race: r})
	s.Require().NoError(err)
	s.Require().NotNil(output.Payload)
	return output.Payload
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	testCases := []struct {
		name string
		cfg  *race.Config
	}{
		{name: "nil config"},
		{name: "missing reference", cfg: &race.Config{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			orchestrator, err := race.NewOrchestrator(tc.cfg)
			s.Nil(orchestrator)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestExtractValidation() {
	_, err := s.orchestrator.Extract(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.Extract(s.ctx, &race.ExtractInput{Race: &source.Race{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSplitName() {
	testCases := []struct {
		name    string
		input   string
		base    string
		subrace string
	}{
		{name: "subrace", input: "Dwarf (Hill)", base: "Dwarf", subrace: "Hill"},
		{name: "extra spaces", input: " Elf  (High) ", base: "Elf", subrace: "High"},
		{name: "base race", input: "Tortle"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			base, subrace := race.SplitName(tc.input)
			s.Equal(tc.base, base)
			s.Equal(tc.subrace, subrace)
		})
	}
}

func (s *OrchestratorTestSuite) TestExtractDwarf() {
	payload := s.extract(testutils.CreateTestDwarf())

	s.Equal("Dwarf (Hill)", payload.Name)
	s.Equal("Dwarf", payload.BaseRace)
	s.Equal("Hill", payload.Subrace)
	s.Equal([]rules.Modifier{
		{Category: rules.ModifierAbilityScore, Target: "CON", Value: 2},
		{Category: rules.ModifierAbilityScore, Target: "WIS", Value: 1},
	}, payload.Modifiers)

	s.Run("weapon proficiencies", func() {
		s.Len(payload.Proficiencies, 4)
		for _, p := range payload.Proficiencies {
			s.Equal(rules.ProficiencyWeapon, p.Kind)
		}
	})

	s.Run("walking speed comes from the attribute", func() {
		s.Equal([]rules.SpeedGrant{{MovementType: "walk", Feet: 25}}, payload.Speeds)
	})

	s.Run("poison", func() {
		s.Contains(payload.Conditions, rules.ConditionGrant{Effect: rules.ConditionAdvantage, Target: "poisoned"})
		s.Contains(payload.Resistances, rules.ResistanceGrant{DamageType: "poison"})
		seen := map[rules.ResistanceGrant]int{}
		for _, r := range payload.Resistances {
			seen[r]++
		}
		s.Equal(1, seen[rules.ResistanceGrant{DamageType: "poison"}])
	})

	s.Run("languages", func() {
		var slugs []string
		for _, l := range payload.Languages {
			slugs = append(slugs, l.Slug)
		}
		s.Equal([]string{"common", "dwarvish"}, slugs)
	})

	s.Run("traits strip citations", func() {
		s.Require().Len(payload.Traits, 4)
		s.Equal("You can speak, read, and write Common and Dwarvish.", payload.Traits[3].Description)
		s.NotNil(payload.Traits[3].Rolls)
	})

	s.Equal([]rules.SourceCitation{{Code: "PHB", Name: "Player's Handbook", Pages: "70"}}, payload.Sources)
	s.Nil(payload.UnarmoredAC)
	s.Empty(payload.NaturalWeapons)
	s.Empty(payload.Spells)
}

func (s *OrchestratorTestSuite) TestExtractTortle() {
	payload := s.extract(testutils.CreateTestTortle())

	s.Empty(payload.BaseRace)
	s.Equal([]rules.SpeedGrant{
		{MovementType: "walk", Feet: 30},
		{MovementType: "swim", Feet: 30},
	}, payload.Speeds)
	s.Equal([]rules.NaturalWeapon{{Name: "Claws", DamageDice: "1d4", DamageType: "slashing", Ability: "STR"}}, payload.NaturalWeapons)
	s.Equal(&rules.UnarmoredAC{BaseAC: 17, AllowsShield: true, ReplacesArmor: true}, payload.UnarmoredAC)

	s.Run("usage limit on shell defense only", func() {
		for _, t := range payload.Traits {
			if t.Name == "Shell Defense" {
				s.Equal(&rules.UsageLimit{MaxUses: 2, Reset: rules.ResetLongRest}, t.UsageLimit)
				continue
			}
			s.Nil(t.UsageLimit, t.Name)
		}
	})

	s.NotNil(payload.Sources)
	s.NotNil(payload.AbilityChoices)
}

func (s *OrchestratorTestSuite) TestExtractChoicesAndSpells() {
	payload := s.extract(&source.Race{
		Name:    "Half-Elf",
		Speed:   30,
		Ability: "Cha 2",
		Traits: []source.Trait{
			{Name: "Ability Score Increase", Text: "Your Charisma score increases by 2, and two other ability scores of your choice increase by 1."},
			{Name: "Skill Versatility", Text: "You gain proficiency in two skills of your choice."},
			{Name: "Cantrip", Text: "You know one cantrip of your choice from the wizard spell list."},
			{Name: "Versatile", Text: "You gain one feat of your choice."},
		},
	})

	s.Equal([]rules.AbilityChoice{{Count: 2, Value: 1, Excludes: []string{"CHA"}}}, payload.AbilityChoices)
	s.Equal([]rules.ProficiencyGrant{{
		Kind:        rules.ProficiencySkill,
		IsChoice:    true,
		ChoiceGroup: "skill_choice_1",
		Quantity:    2,
	}}, payload.Proficiencies)
	s.Equal([]rules.SpellGrant{{
		SpellList:   "wizard",
		IsCantrip:   true,
		IsChoice:    true,
		ChoiceGroup: "spell_choice_1",
		Quantity:    1,
	}}, payload.Spells)
	s.Contains(payload.Modifiers, rules.Modifier{Category: rules.ModifierBonus, Target: "feat", Value: 1})
}

func (s *OrchestratorTestSuite) TestExtractWalkingSpeedFromTrait() {
	payload := s.extract(&source.Race{
		Name: "Triton",
		Traits: []source.Trait{
			{Name: "Speed", Text: "Your base walking speed is 30 feet."},
			{Name: "Amphibious", Text: "You have a swimming speed equal to your walking speed."},
		},
	})

	s.Equal([]rules.SpeedGrant{
		{MovementType: "walk", Feet: 30},
		{MovementType: "swim", Feet: 30, EqualsWalking: true},
	}, payload.Speeds)

	s.Run("attribute wins over trait", func() {
		payload := s.extract(&source.Race{
			Name:  "Triton",
			Speed: 35,
			Traits: []source.Trait{
				{Name: "Amphibious", Text: "You have a swimming speed equal to your walking speed."},
				{Name: "Speed", Text: "Your base walking speed is 30 feet."},
			},
		})
		s.Equal([]rules.SpeedGrant{
			{MovementType: "walk", Feet: 35},
			{MovementType: "swim", Feet: 35, EqualsWalking: true},
		}, payload.Speeds)
	})
}

func (s *OrchestratorTestSuite) TestExtractIsIdempotent() {
	first, err := s.orchestrator.Extract(s.ctx, &race.ExtractInput{Race: testutils.CreateTestTortle()})
	s.Require().NoError(err)
	second, err := s.orchestrator.Extract(s.ctx, &race.ExtractInput{Race: testutils.RoundTripYAML(s.T(), testutils.CreateTestTortle())})
	s.Require().NoError(err)

	s.Equal(testutils.MarshalPayload(s.T(), first.Payload), testutils.MarshalPayload(s.T(), second.Payload))
}
