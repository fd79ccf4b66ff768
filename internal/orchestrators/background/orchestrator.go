// Package background extracts the proficiencies, languages, equipment and
// personality tables of a character background.
package background

//go:generate mockgen -destination=mock/mock_service.go -package=backgroundmock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/background Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/equipment"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/languages"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/proficiencies"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/randomtables"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// Service defines the interface for background extraction
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}

// Config holds the dependencies for the background orchestrator
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

// NewOrchestrator creates a new background orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		reference: cfg.Reference,
	}, nil
}

// Extract reads the proficiency attribute first, then the bullet lines of
// each trait. Tool and language lines are only taken from the first trait
// that has them.
func (o *orchestrator) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if input == nil || input.Background == nil {
		return nil, errors.InvalidArgument("background is required")
	}
	bg := input.Background
	name := strings.TrimSpace(bg.Name)
	if name == "" {
		return nil, errors.InvalidArgument("background name is required")
	}

	payload := &Payload{
		Name:          name,
		Proficiencies: append([]rules.ProficiencyGrant{}, proficiencies.ParseBackgroundProficiencies(bg.Proficiency, o.reference)...),
		Languages:     []rules.LanguageGrant{},
		Equipment:     []rules.EquipmentChoice{},
		RandomTables:  []rules.RandomTable{},
		Traits:        make([]Trait, 0, len(bg.Traits)),
	}

	var tools, langs, gear bool
	texts := make([]string, 0, len(bg.Traits))
	for _, trait := range bg.Traits {
		traitName := strings.TrimSpace(trait.Name)
		text := ruletext.StripCitations(trait.Text)
		texts = append(texts, trait.Text)
		payload.Traits = append(payload.Traits, Trait{Name: traitName, Description: text})

		if !tools {
			if grants := proficiencies.ParseTraitTools(text, o.reference); len(grants) > 0 {
				payload.Proficiencies = append(payload.Proficiencies, grants...)
				tools = true
			}
		}
		if !langs {
			if grants := languages.ParseTraitLine(text, o.reference); len(grants) > 0 {
				payload.Languages = append(payload.Languages, grants...)
				langs = true
			}
		}
		if !gear {
			if items := equipment.ParseBackgroundEquipment(text); len(items) > 0 {
				payload.Equipment = append(payload.Equipment, items...)
				gear = true
			}
		}

		for _, table := range randomtables.Parse(text) {
			if table.Name == "" {
				table.Name = traitName
			}
			payload.RandomTables = append(payload.RandomTables, table)
		}
	}

	proficiencies.NumberChoiceGroups(payload.Proficiencies)
	payload.Sources = ruletext.MergeCitations(o.reference, texts...)

	slog.DebugContext(ctx, "Extracted background",
		"name", name,
		"proficiencies", len(payload.Proficiencies),
		"tables", len(payload.RandomTables))

	return &ExtractOutput{Payload: payload}, nil
}
