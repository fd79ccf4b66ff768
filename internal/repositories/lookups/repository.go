// Package lookups provides persistence for the reference tables the
// extraction engine resolves names against
package lookups

//go:generate mockgen -destination=mock/mock_repository.go -package=lookupsmock github.com/KirkDiggler/rpg-ruletext/internal/repositories/lookups Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
)

// Repository defines the interface for lookup table persistence
type Repository interface {
	// ListByKind returns every entry of one lookup table ordered by ID
	// Returns errors.InvalidArgument for an unknown kind
	// Returns errors.NotFound if the table has no entries
	// Returns errors.Unavailable when the store cannot be reached
	ListByKind(ctx context.Context, input *ListByKindInput) (*ListByKindOutput, error)

	// Upsert writes entries into one lookup table, replacing rows with the same code
	// Returns errors.InvalidArgument for an unknown kind or an entry without a code
	// Returns errors.Unavailable when the store cannot be reached
	Upsert(ctx context.Context, input *UpsertInput) (*UpsertOutput, error)
}

// ListByKindInput defines the input for listing a lookup table
type ListByKindInput struct {
	Kind lookup.Kind
}

// ListByKindOutput defines the output for listing a lookup table
type ListByKindOutput struct {
	Entries []*lookup.Entry
}

// UpsertInput defines the input for writing lookup entries
type UpsertInput struct {
	Kind    lookup.Kind
	Entries []*lookup.Entry
}

// UpsertOutput defines the output for writing lookup entries
type UpsertOutput struct {
	Written int
}

func validateKind(kind lookup.Kind) error {
	if !kind.Valid() {
		return errors.InvalidArgumentf("unknown lookup kind %q", kind)
	}
	return nil
}

func validateEntries(entries []*lookup.Entry) error {
	for i, entry := range entries {
		if entry == nil || entry.Code == "" {
			return errors.InvalidArgumentf("entry %d has no code", i)
		}
	}
	return nil
}
