// Package race extracts the facts of a race or subrace from its attributes
// and trait text.
package race

//go:generate mockgen -destination=mock/mock_service.go -package=racemock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/race Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/armorclass"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/conditions"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/counters"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/languages"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/modifiers"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/movement"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/naturalweapons"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/proficiencies"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/savingthrows"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/spells"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

const (
	traitAbilityIncrease = "Ability Score Increase"
	traitLanguages       = "Languages"
)

var subraceName = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)

// Service defines the interface for race extraction
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}

// Config holds the dependencies for the race orchestrator
type Config struct {
	Reference reference.Resolver
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Reference == nil {
		vb.RequiredField("Reference")
	}

	return vb.Build()
}

type orchestrator struct {
	reference reference.Resolver
}

// NewOrchestrator creates a new race orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		reference: cfg.Reference,
	}, nil
}

// SplitName splits a subrace node name "Elf (High)" into its base race and
// subrace. Names without a trailing parenthesis return empty parts.
func SplitName(name string) (base, subrace string) {
	m := subraceName.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// Extract reads every race category in order. Trait text drives most of
// them; the size, speed, ability, proficiency and resist attributes seed
// the rest.
func (o *orchestrator) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if input == nil || input.Race == nil {
		return nil, errors.InvalidArgument("race is required")
	}
	race := input.Race
	name := strings.TrimSpace(race.Name)
	if name == "" {
		return nil, errors.InvalidArgument("race name is required")
	}

	payload := &Payload{
		Name:           name,
		Size:           race.Size,
		AbilityChoices: []rules.AbilityChoice{},
		Languages:      []rules.LanguageGrant{},
		Movement:       []rules.MovementModifier{},
		NaturalWeapons: []rules.NaturalWeapon{},
		Conditions:     []rules.ConditionGrant{},
		Traits:         make([]Trait, 0, len(race.Traits)),
		SavingThrows:   []rules.SavingThrowRequirement{},
		Spells:         []rules.SpellGrant{},
	}
	payload.BaseRace, payload.Subrace = SplitName(name)

	payload.Modifiers = append([]rules.Modifier{}, modifiers.ParseAbilityBonuses(race.Ability, o.reference)...)
	payload.Modifiers = append(payload.Modifiers, modifiers.ParseModifierLines(race.Modifiers, o.reference)...)
	fixed := append([]rules.Modifier(nil), payload.Modifiers...)

	payload.Proficiencies = o.attributeProficiencies(race.Proficiency)
	payload.Resistances = append([]rules.ResistanceGrant{}, conditions.ParseResistList(race.Resist)...)
	payload.Speeds = []rules.SpeedGrant{}
	if race.Speed > 0 {
		payload.Speeds = append(payload.Speeds, rules.SpeedGrant{MovementType: movement.TypeWalk, Feet: race.Speed})
	}

	walking := walkingSpeed(race)

	texts := make([]string, 0, len(race.Traits))
	seenConditions := map[rules.ConditionGrant]bool{}
	seenResistances := map[rules.ResistanceGrant]bool{}
	for _, r := range payload.Resistances {
		seenResistances[r] = true
	}
	seenSaves := map[string]bool{}
	seenSpeeds := map[string]bool{}
	for _, s := range payload.Speeds {
		seenSpeeds[s.MovementType] = true
	}

	for _, trait := range race.Traits {
		traitName := strings.TrimSpace(trait.Name)
		text := ruletext.StripCitations(trait.Text)
		texts = append(texts, trait.Text)

		payload.Traits = append(payload.Traits, Trait{
			Name:        traitName,
			Category:    trait.Category,
			Description: text,
			Rolls:       source.Facts(trait.Rolls),
			UsageLimit:  counters.ParseUsageLimit(text),
		})

		if strings.EqualFold(traitName, traitAbilityIncrease) {
			if choice := modifiers.ParseAbilityChoice(text, fixed, o.reference); choice != nil {
				payload.AbilityChoices = append(payload.AbilityChoices, *choice)
			}
		}

		payload.Proficiencies = append(payload.Proficiencies, proficiencies.ParseTraitChoices(text)...)

		if strings.EqualFold(traitName, traitLanguages) {
			payload.Languages = append(payload.Languages, languages.Extract(text, o.reference)...)
		}

		for _, speed := range movement.ParseSpeeds(text, walking) {
			if !seenSpeeds[speed.MovementType] {
				seenSpeeds[speed.MovementType] = true
				payload.Speeds = append(payload.Speeds, speed)
			}
		}
		payload.Movement = append(payload.Movement, movement.ParseModifiers(text)...)

		if weapon := naturalweapons.Parse(traitName, text, o.reference); weapon != nil {
			payload.NaturalWeapons = append(payload.NaturalWeapons, *weapon)
		}
		if payload.UnarmoredAC == nil {
			payload.UnarmoredAC = armorclass.ParseUnarmored(text, o.reference)
		}

		grants := conditions.Parse(text)
		grants = append(grants, conditions.ParseSkillAdvantages(text, o.reference)...)
		grants = append(grants, conditions.ParseSaveAdvantages(text, o.reference)...)
		grants = append(grants, conditions.ParseImmunities(text)...)
		for _, g := range grants {
			if !seenConditions[g] {
				seenConditions[g] = true
				payload.Conditions = append(payload.Conditions, g)
			}
		}
		for _, r := range conditions.ParseResistances(text) {
			if !seenResistances[r] {
				seenResistances[r] = true
				payload.Resistances = append(payload.Resistances, r)
			}
		}

		for _, save := range savingthrows.Parse(text) {
			if !seenSaves[save.Key()] {
				seenSaves[save.Key()] = true
				payload.SavingThrows = append(payload.SavingThrows, save)
			}
		}

		payload.Modifiers = append(payload.Modifiers, modifiers.ParseBonusFeat(traitName, text)...)
		payload.Spells = append(payload.Spells, spells.ParseRace(text)...)
	}

	proficiencies.NumberChoiceGroups(payload.Proficiencies)
	numberSpellChoices(payload.Spells)
	payload.Sources = ruletext.MergeCitations(o.reference, texts...)

	slog.DebugContext(ctx, "Extracted race",
		"name", name,
		"traits", len(payload.Traits),
		"speeds", len(payload.Speeds))

	return &ExtractOutput{Payload: payload}, nil
}

// walkingSpeed is the speed attribute, or else the first base walking
// speed a trait states
func walkingSpeed(race *source.Race) int {
	if race.Speed > 0 {
		return race.Speed
	}
	for _, trait := range race.Traits {
		if feet, ok := movement.ParseBaseWalking(ruletext.StripCitations(trait.Text)); ok {
			return feet
		}
	}
	return 0
}

// attributeProficiencies reads the proficiency attribute, whose entries
// mix weapons, armor, tools and skills
func (o *orchestrator) attributeProficiencies(csv string) []rules.ProficiencyGrant {
	out := []rules.ProficiencyGrant{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, proficiencies.ParseList(part, proficiencies.InferKind(part), o.reference)...)
	}
	return out
}

// numberSpellChoices gives every ungrouped spell choice its own group,
// counting across all traits
func numberSpellChoices(grants []rules.SpellGrant) {
	n := 0
	for _, g := range grants {
		if g.IsChoice && g.ChoiceGroup != "" {
			n++
		}
	}
	for i := range grants {
		if !grants[i].IsChoice || grants[i].ChoiceGroup != "" {
			continue
		}
		n++
		grants[i].ChoiceGroup = fmt.Sprintf("spell_choice_%d", n)
	}
}
