// Package spell extracts the effects, scaling and saving throws of a spell.
package spell

//go:generate mockgen -destination=mock/mock_service.go -package=spellmock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/spell Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/randomtables"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/savingthrows"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/scaling"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// Service defines the interface for spell extraction
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}

// Config holds the dependencies for the spell orchestrator
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

// NewOrchestrator creates a new spell orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		reference: cfg.Reference,
	}, nil
}

func (o *orchestrator) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if input == nil || input.Spell == nil {
		return nil, errors.InvalidArgument("spell is required")
	}
	spell := input.Spell
	name := strings.TrimSpace(spell.Name)
	if name == "" {
		return nil, errors.InvalidArgument("spell name is required")
	}

	text := ruletext.StripCitations(spell.Text)
	description, higher := scaling.SplitHigherLevels(text)

	payload := &Payload{
		Name:         name,
		Level:        spell.Level,
		School:       spell.School,
		Description:  description,
		HigherLevels: higher,
		Classes:      o.classes(spell.Classes),
		Sources:      ruletext.MergeCitations(o.reference, spell.Text),
		Effects:      scaling.ParseEffects(spell.Rolls, spell.Level, description, higher),
		SavingThrows: append([]rules.SavingThrowRequirement{}, savingthrows.Parse(text)...),
		RandomTables: append([]rules.RandomTable{}, randomtables.Parse(text)...),
	}

	slog.DebugContext(ctx, "Extracted spell",
		"name", name,
		"level", spell.Level,
		"effects", len(payload.Effects))

	return &ExtractOutput{Payload: payload}, nil
}

// classes resolves the class list to codes. Entries that name a subclass
// ("Fighter (Eldritch Knight)") or an unknown class are dropped.
func (o *orchestrator) classes(csv string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(csv, ",") {
		entry, ok := o.reference.Resolve(lookup.KindClass, strings.TrimSpace(part))
		if !ok || seen[entry.Code] {
			continue
		}
		seen[entry.Code] = true
		out = append(out, entry.Code)
	}
	return out
}
