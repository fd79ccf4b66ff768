// Package class extracts the facts of a character class: proficiencies,
// features, spell slots, counters, subclasses and starting equipment.
package class

//go:generate mockgen -destination=mock/mock_service.go -package=classmock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/class Service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/counters"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/equipment"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/languages"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/modifiers"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/prerequisites"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/proficiencies"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/savingthrows"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/spellslots"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/subclasses"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

var startingEquipment = regexp.MustCompile(`(?i)^Starting\s+\w+$`)

// Service defines the interface for class extraction
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}

// Config holds the dependencies for the class orchestrator
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

// NewOrchestrator creates a new class orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		reference: cfg.Reference,
	}, nil
}

// Extract runs every class matcher in order. Multiclass requirements,
// languages and counters are read before subclass features are moved out of
// the base class, so subclass features still feed them.
func (o *orchestrator) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if input == nil || input.Class == nil {
		return nil, errors.InvalidArgument("class is required")
	}
	class := input.Class
	name := strings.TrimSpace(class.Name)
	if name == "" {
		return nil, errors.InvalidArgument("class name is required")
	}

	payload := &Payload{
		Name:                   name,
		HitDie:                 class.HitDie,
		Proficiencies:          o.proficiencies(class),
		ScoreImprovementLevels: []int{},
		MulticlassRequirements: []rules.MulticlassRequirement{},
		Equipment:              []rules.EquipmentChoice{},
		SavingThrows:           []rules.SavingThrowRequirement{},
		Expertise:              []rules.ExpertiseGrant{},
	}

	features, texts := o.features(class.Autolevels)
	for _, level := range class.Autolevels {
		if level.ScoreImprovement {
			payload.ScoreImprovementLevels = append(payload.ScoreImprovementLevels, level.Level)
		}
	}

	for _, f := range features {
		if f.Name == "Multiclass "+name {
			payload.MulticlassRequirements = append(payload.MulticlassRequirements,
				prerequisites.ParseMulticlass(f.Description, o.reference)...)
			break
		}
	}

	casting := spellslots.Parse(class.Autolevels)
	payload.SpellSlots = casting.Base
	if payload.SpellSlots == nil {
		payload.SpellSlots = []rules.SpellSlotProgression{}
	}
	if casting.HasBaseCasting() {
		if entry, ok := o.reference.Resolve(lookup.KindAbility, class.SpellAbility); ok {
			payload.SpellcastingAbility = entry.Code
		}
	}

	declared := counters.ApplyCorrections(name, counters.FromAutolevels(class.Autolevels))
	all := counters.Dedupe(append(declared, counters.ParseChoiceProgressions(features, nil)...))
	counters.Sort(all)

	detected := subclasses.Detect(features, all)
	partitioned := subclasses.Partition(detected, features, all, casting)
	payload.Archetype = detected.Archetype
	payload.Features = partitioned.Features
	payload.Counters = partitioned.Counters
	payload.Subclasses = partitioned.Subclasses

	for _, level := range class.Autolevels {
		if level.Level != 1 {
			continue
		}
		for _, f := range level.Features {
			if startingEquipment.MatchString(strings.TrimSpace(f.Name)) {
				payload.Equipment = append(payload.Equipment, equipment.ParseStartingEquipment(ruletext.StripCitations(f.Text))...)
			}
		}
	}

	names := make([]string, 0, len(payload.Features))
	for _, f := range payload.Features {
		names = append(names, f.Name)
	}
	payload.Languages = languages.FromFeatureNames(names, o.reference)
	if payload.Languages == nil {
		payload.Languages = []rules.LanguageGrant{}
	}

	seenSaves := map[string]bool{}
	seenExpertise := map[rules.ExpertiseGrant]bool{}
	for _, f := range features {
		for _, save := range savingthrows.Parse(f.Description) {
			if !seenSaves[save.Key()] {
				seenSaves[save.Key()] = true
				payload.SavingThrows = append(payload.SavingThrows, save)
			}
		}
		for _, grant := range proficiencies.ParseExpertise(f.Description, o.reference) {
			if !seenExpertise[grant] {
				seenExpertise[grant] = true
				payload.Expertise = append(payload.Expertise, grant)
			}
		}
	}

	payload.Sources = ruletext.MergeCitations(o.reference, texts...)

	slog.DebugContext(ctx, "Extracted class",
		"name", name,
		"features", len(payload.Features),
		"subclasses", len(payload.Subclasses),
		"counters", len(payload.Counters))

	return &ExtractOutput{Payload: payload}, nil
}

func (o *orchestrator) proficiencies(class *source.Class) []rules.ProficiencyGrant {
	out := []rules.ProficiencyGrant{}
	out = append(out, proficiencies.ParseList(class.Armor, rules.ProficiencyArmor, o.reference)...)
	out = append(out, proficiencies.ParseList(class.Weapons, rules.ProficiencyWeapon, o.reference)...)
	out = append(out, proficiencies.ParseToolChoices(class.Tools, o.reference)...)
	out = append(out, proficiencies.ParseClassProficiencies(class.Proficiency, class.NumSkills, o.reference)...)
	proficiencies.NumberChoiceGroups(out)
	return out
}

// features converts every autolevel feature in export order. It also
// returns the raw texts, which still carry their source citations.
func (o *orchestrator) features(levels []source.Autolevel) ([]rules.Feature, []string) {
	var out []rules.Feature
	var texts []string
	for _, level := range levels {
		for _, f := range level.Features {
			name := strings.TrimSpace(f.Name)
			if name == "" {
				continue
			}
			description := ruletext.StripCitations(f.Text)
			feature := rules.Feature{
				Name:        name,
				Level:       level.Level,
				Description: description,
				Optional:    f.Optional,
				SortOrder:   len(out),
				Reset:       counters.ParseResetTiming(description),
				Rolls:       source.Facts(f.Rolls),
				Special:     f.Special,
				Modifiers:   modifiers.ParseModifierLines(f.Modifiers, o.reference),
			}
			if feature.Modifiers == nil {
				feature.Modifiers = []rules.Modifier{}
			}
			out = append(out, feature)
			texts = append(texts, f.Text)
		}
	}
	return out, texts
}
