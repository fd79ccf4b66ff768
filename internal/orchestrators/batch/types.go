package batch

import (
	"time"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/background"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/class"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/feat"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/race"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/spell"
)

// Entity kinds as reported in failures
const (
	KindClass      = "class"
	KindRace       = "race"
	KindBackground = "background"
	KindFeat       = "feat"
	KindItem       = "item"
	KindSpell      = "spell"
)

var kindOrder = map[string]int{
	KindClass:      0,
	KindRace:       1,
	KindBackground: 2,
	KindFeat:       3,
	KindItem:       4,
	KindSpell:      5,
}

// RunInput defines the request for running a batch
type RunInput struct {
	Bundle *source.Bundle
	// Workers overrides the configured worker count when positive
	Workers int
}

// RunOutput defines the response for a batch run. Payloads keep the order
// of the bundle; rejected entities are skipped and listed in Failures.
type RunOutput struct {
	BatchID     string                `json:"batch_id"`
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
	Duration    time.Duration         `json:"duration"`
	Classes     []*class.Payload      `json:"classes"`
	Races       []*race.Payload       `json:"races"`
	Backgrounds []*background.Payload `json:"backgrounds"`
	Feats       []*feat.Payload       `json:"feats"`
	Items       []*item.Payload       `json:"items"`
	Spells      []*spell.Payload      `json:"spells"`
	Failures    []Failure             `json:"failures"`
}

// Extracted returns the number of payloads produced
func (o *RunOutput) Extracted() int {
	return len(o.Classes) + len(o.Races) + len(o.Backgrounds) + len(o.Feats) + len(o.Items) + len(o.Spells)
}

// Failure is one entity the extractors rejected
type Failure struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
