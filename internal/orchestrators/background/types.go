package background

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// ExtractInput defines the request for extracting a background
type ExtractInput struct {
	Background *source.Background
}

// ExtractOutput defines the response for extracting a background
type ExtractOutput struct {
	Payload *Payload
}

// Trait is a background trait with its citation stripped
type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Payload is every fact extracted from one background. Lists are never nil.
type Payload struct {
	Name          string                   `json:"name"`
	Proficiencies []rules.ProficiencyGrant `json:"proficiencies"`
	Languages     []rules.LanguageGrant    `json:"languages"`
	Equipment     []rules.EquipmentChoice  `json:"equipment"`
	RandomTables  []rules.RandomTable      `json:"random_tables"`
	Traits        []Trait                  `json:"traits"`
	Sources       []rules.SourceCitation   `json:"sources"`
}
