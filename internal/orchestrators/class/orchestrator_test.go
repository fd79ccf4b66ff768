package class_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/class"
	"github.com/KirkDiggler/rpg-ruletext/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	orchestrator class.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()

	orchestrator, err := class.NewOrchestrator(&class.Config{
		Reference: testutils.CreateFallbackResolver(s.T()),
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) extract(c *source.Class) *class.Payload {
	output, err := s.orchestrator.Extract(s.ctx, &class.ExtractInput{Class: c})
	s.Require().NoError(err)
	s.Require().NotNil(output.Payload)
	return output.Payload
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	testCases := []struct {
		name string
		cfg  *class.Config
	}{
		{name: "nil config"},
		{name: "missing reference", cfg: &class.Config{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			orchestrator, err := class.NewOrchestrator(tc.cfg)
			s.Nil(orchestrator)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestExtractValidation() {
	testCases := []struct {
		name  string
		input *class.ExtractInput
	}{
		{name: "nil input"},
		{name: "nil class", input: &class.ExtractInput{}},
		{name: "blank name", input: &class.ExtractInput{Class: &source.Class{Name: "  "}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			output, err := s.orchestrator.Extract(s.ctx, tc.input)
			s.Nil(output)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestExtractFighter() {
	payload := s.extract(testutils.CreateTestFighter())

	s.Equal("Fighter", payload.Name)
	s.Equal(10, payload.HitDie)
	s.Equal("Martial Archetype", payload.Archetype)
	s.Empty(payload.SpellcastingAbility)
	s.Equal([]int{4}, payload.ScoreImprovementLevels)

	s.Run("proficiencies", func() {
		kinds := map[rules.ProficiencyKind]int{}
		for _, p := range payload.Proficiencies {
			kinds[p.Kind]++
			if p.Kind == rules.ProficiencySkill {
				s.True(p.IsChoice)
				s.Equal("skill_choice_1", p.ChoiceGroup)
				s.Equal(2, p.Quantity)
			}
		}
		s.Equal(4, kinds[rules.ProficiencyArmor])
		s.Equal(2, kinds[rules.ProficiencyWeapon])
		s.Equal(2, kinds[rules.ProficiencySavingThrow])
		s.Equal(3, kinds[rules.ProficiencySkill])
	})

	s.Run("base features keep export order", func() {
		var names []string
		for _, f := range payload.Features {
			names = append(names, f.Name)
		}
		s.Equal([]string{"Starting Fighter", "Multiclass Fighter", "Fighting Style", "Second Wind", "Ability Score Improvement"}, names)

		wind := payload.Features[3]
		s.Equal(3, wind.SortOrder)
		s.Equal(rules.ResetShortRest, wind.Reset)
		s.NotContains(wind.Description, "Source:")
		s.Equal([]rules.Roll{{Description: "Healing", Formula: "1d10+1", Level: 1}}, wind.Rolls)
		s.NotNil(wind.Modifiers)
	})

	s.Run("multiclass", func() {
		s.Equal([]rules.MulticlassRequirement{
			{Ability: "STR", Minimum: 13, IsOr: true},
			{Ability: "DEX", Minimum: 13, IsOr: true},
		}, payload.MulticlassRequirements)
	})

	s.Run("base counters", func() {
		s.Equal([]rules.CounterDefinition{
			{Name: "Fighting Styles Known", Level: 1, Value: 1, Reset: rules.ResetNone},
		}, payload.Counters)
	})

	s.Run("battle master", func() {
		s.Require().Len(payload.Subclasses, 1)
		sub := payload.Subclasses[0]
		s.Equal("Battle Master", sub.Name)
		s.Equal("Martial Archetype", sub.Archetype)
		s.Len(sub.Features, 2)
		for _, f := range sub.Features {
			s.Equal("Battle Master", f.Subclass)
		}

		values := map[string][]int{}
		for _, c := range sub.Counters {
			values[c.Name] = append(values[c.Name], c.Value)
		}
		s.Equal([]int{3, 5, 7, 9}, values["Maneuvers Known"])
		s.Equal([]int{4}, values["Superiority Die"])
		s.Empty(sub.SpellSlots)
	})

	s.Run("starting equipment", func() {
		s.Require().Len(payload.Equipment, 2)
		s.Equal("choice_1", payload.Equipment[0].Group)
		s.Equal("greataxe", payload.Equipment[0].Value)
	})

	s.Run("sources are merged", func() {
		s.Equal([]rules.SourceCitation{{Code: "PHB", Name: "Player's Handbook", Pages: "70"}}, payload.Sources)
	})

	s.NotNil(payload.SpellSlots)
	s.NotNil(payload.Languages)
	s.NotNil(payload.SavingThrows)
}

func (s *OrchestratorTestSuite) TestExtractRogue() {
	payload := s.extract(testutils.CreateTestRogue())

	s.Empty(payload.SpellcastingAbility, "optional slots do not make the base class a caster")
	s.Empty(payload.SpellSlots)
	s.Equal([]rules.LanguageGrant{{Slug: "thieves-cant", Quantity: 1}}, payload.Languages)
	s.Equal([]rules.ExpertiseGrant{{Skill: "stealth"}}, payload.Expertise)

	s.Require().Len(payload.Subclasses, 1)
	trickster := payload.Subclasses[0]
	s.Equal("Arcane Trickster", trickster.Name)
	s.Require().Len(trickster.SpellSlots, 1)
	s.Equal(3, trickster.SpellSlots[0].Level)
	s.Equal(3, trickster.SpellSlots[0].Cantrips)
	s.Equal(2, trickster.SpellSlots[0].Slots[0])

	s.Run("tool proficiency", func() {
		var tools []string
		for _, p := range payload.Proficiencies {
			if p.Kind == rules.ProficiencyTool {
				tools = append(tools, p.TypeCode)
			}
		}
		s.Equal([]string{"thieves-tools"}, tools)
	})
}

func (s *OrchestratorTestSuite) TestExtractCaster() {
	wizard := &source.Class{
		Name:         "Wizard",
		HitDie:       6,
		SpellAbility: "Intelligence",
		Autolevels: []source.Autolevel{
			{Level: 1, Slots: &source.Slots{Values: "3,2"}},
			{Level: 2, Slots: &source.Slots{Values: "3,3"}},
		},
	}

	payload := s.extract(wizard)

	s.Equal("INT", payload.SpellcastingAbility)
	s.Len(payload.SpellSlots, 2)
	s.Empty(payload.Subclasses)
}

func (s *OrchestratorTestSuite) TestExtractIsIdempotent() {
	first, err := s.orchestrator.Extract(s.ctx, &class.ExtractInput{Class: testutils.CreateTestFighter()})
	s.Require().NoError(err)
	second, err := s.orchestrator.Extract(s.ctx, &class.ExtractInput{Class: testutils.RoundTripYAML(s.T(), testutils.CreateTestFighter())})
	s.Require().NoError(err)

	s.Equal(testutils.MarshalPayload(s.T(), first.Payload), testutils.MarshalPayload(s.T(), second.Payload))
}
