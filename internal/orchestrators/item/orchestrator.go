// Package item extracts the modifiers, charges and other mechanics of an
// item from its attributes and description.
package item

//go:generate mockgen -destination=mock/mock_service.go -package=itemmock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/item Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/charges"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/conditions"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/equipment"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/modifiers"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/proficiencies"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/randomtables"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/savingthrows"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// StealthTarget is the condition target of armor that hinders stealth
const StealthTarget = "stealth"

// Service defines the interface for item extraction
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}

// Config holds the dependencies for the item orchestrator
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

// NewOrchestrator creates a new item orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		reference: cfg.Reference,
	}, nil
}

func (o *orchestrator) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument("item is required")
	}
	item := input.Item
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil, errors.InvalidArgument("item name is required")
	}

	text := ruletext.StripCitations(item.Text)
	payload := &Payload{
		Name:        name,
		Type:        item.Type,
		Magic:       item.Magic,
		Description: text,
		Sources:     ruletext.MergeCitations(o.reference, item.Text),
		Conditions:  []rules.ConditionGrant{},
		Rolls:       source.Facts(item.Rolls),
	}

	payload.Modifiers = append([]rules.Modifier{}, modifiers.ParseModifierLines(item.Modifiers, o.reference)...)
	payload.Modifiers = append(payload.Modifiers, modifiers.ParseSetScore(text, o.reference)...)
	payload.Modifiers = append(payload.Modifiers, modifiers.ParseSpeedPenalty(text, item.Strength)...)

	if item.Stealth {
		payload.Conditions = append(payload.Conditions, rules.ConditionGrant{
			Effect: rules.ConditionDisadvantage,
			Target: StealthTarget,
		})
	}
	payload.Resistances = append([]rules.ResistanceGrant{}, conditions.ParseResistances(text)...)
	payload.Proficiencies = append([]rules.ProficiencyGrant{}, proficiencies.ParseRequirements(text, o.reference)...)
	payload.Charges = charges.Parse(text)
	payload.SavingThrows = append([]rules.SavingThrowRequirement{}, savingthrows.Parse(text)...)
	payload.RandomTables = append([]rules.RandomTable{}, randomtables.Parse(text)...)
	payload.PackContents = append([]rules.PackItem{}, equipment.ParsePackContents(text)...)

	slog.DebugContext(ctx, "Extracted item",
		"name", name,
		"modifiers", len(payload.Modifiers),
		"charged", payload.Charges != nil)

	return &ExtractOutput{Payload: payload}, nil
}
