// Package feat extracts the prerequisites and benefits of a feat.
package feat

//go:generate mockgen -destination=mock/mock_service.go -package=featmock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/feat Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/armorclass"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/conditions"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/counters"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/languages"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/modifiers"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/movement"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/prerequisites"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/proficiencies"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/spells"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// Service defines the interface for feat extraction
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}

// Config holds the dependencies for the feat orchestrator
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

// NewOrchestrator creates a new feat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		reference: cfg.Reference,
	}, nil
}

func (o *orchestrator) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if input == nil || input.Feat == nil {
		return nil, errors.InvalidArgument("feat is required")
	}
	feat := input.Feat
	name := strings.TrimSpace(feat.Name)
	if name == "" {
		return nil, errors.InvalidArgument("feat name is required")
	}

	text := ruletext.StripCitations(feat.Text)
	payload := &Payload{
		Name:           name,
		Description:    text,
		Sources:        ruletext.MergeCitations(o.reference, feat.Text),
		Prerequisites:  append([]rules.Prerequisite{}, prerequisites.ParseFeat(feat.Prerequisite, o.reference)...),
		AbilityChoices: []rules.AbilityChoice{},
		Conditions:     []rules.ConditionGrant{},
	}

	payload.Proficiencies = o.attributeProficiencies(feat.Proficiency)
	payload.Proficiencies = append(payload.Proficiencies, proficiencies.ParseText(text, o.reference)...)
	proficiencies.NumberChoiceGroups(payload.Proficiencies)

	payload.Modifiers = append([]rules.Modifier{}, modifiers.ParseModifierLines(feat.Modifiers, o.reference)...)
	abilities := append([]rules.Modifier(nil), payload.Modifiers...)
	if choice := modifiers.ParseAbilityChoice(text, abilities, o.reference); choice != nil {
		payload.AbilityChoices = append(payload.AbilityChoices, *choice)
	}

	seen := map[rules.ConditionGrant]bool{}
	grants := conditions.Parse(text)
	grants = append(grants, conditions.ParseSkillAdvantages(text, o.reference)...)
	grants = append(grants, conditions.ParseSaveAdvantages(text, o.reference)...)
	grants = append(grants, conditions.ParseImmunities(text)...)
	for _, g := range grants {
		if !seen[g] {
			seen[g] = true
			payload.Conditions = append(payload.Conditions, g)
		}
	}
	payload.Resistances = append([]rules.ResistanceGrant{}, conditions.ParseResistances(text)...)

	payload.Expertise = append([]rules.ExpertiseGrant{}, proficiencies.ParseExpertise(text, o.reference)...)
	payload.Languages = append([]rules.LanguageGrant{}, languages.ParseLearned(text)...)
	payload.Speeds = append([]rules.SpeedGrant{}, movement.ParseSpeeds(text, 0)...)
	payload.Movement = append([]rules.MovementModifier{}, movement.ParseModifiers(text)...)
	payload.UnarmoredAC = armorclass.ParseUnarmored(text, o.reference)

	payload.Modifiers = append(payload.Modifiers, modifiers.ParsePassiveScores(text, abilities, o.reference)...)
	payload.Modifiers = append(payload.Modifiers, modifiers.ParseHitPointsPerLevel(text)...)
	payload.UsageLimit = counters.ParseUsageLimit(text)
	payload.Spells = append([]rules.SpellGrant{}, spells.ParseFeat(text)...)

	slog.DebugContext(ctx, "Extracted feat",
		"name", name,
		"prerequisites", len(payload.Prerequisites),
		"modifiers", len(payload.Modifiers))

	return &ExtractOutput{Payload: payload}, nil
}

// attributeProficiencies reads the proficiency attribute, a mixed list
// like the race one
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
