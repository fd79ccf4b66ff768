package lookups

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-ruletext/internal/redis"
)

const (
	lookupKeyPrefix = "lookup:"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis lookup repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed lookup repository.
// Each kind is stored as one hash keyed by entry code.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) ListByKind(ctx context.Context, input *ListByKindInput) (*ListByKindOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}

	key := GetKey(input.Kind)
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.FromContext(err, "failed to list lookup entries").
			WithMeta("kind", string(input.Kind))
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("no lookup entries for kind %s", input.Kind)
	}

	entries := make([]*lookup.Entry, 0, len(fields))
	for code, raw := range fields {
		var entry lookup.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to decode %s entry %s", input.Kind, code)
		}
		entries = append(entries, &entry)
	}

	sortEntries(entries)

	return &ListByKindOutput{Entries: entries}, nil
}

func (r *redisRepository) Upsert(ctx context.Context, input *UpsertInput) (*UpsertOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}
	if err := validateEntries(input.Entries); err != nil {
		return nil, err
	}
	if len(input.Entries) == 0 {
		return &UpsertOutput{}, nil
	}

	values := make([]any, 0, len(input.Entries)*2)
	for _, entry := range input.Entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal %s entry %s", input.Kind, entry.Code)
		}
		values = append(values, entry.Code, string(data))
	}

	if err := r.client.HSet(ctx, GetKey(input.Kind), values...).Err(); err != nil {
		return nil, errors.FromContext(err, "failed to write lookup entries").
			WithMeta("kind", string(input.Kind))
	}

	return &UpsertOutput{Written: len(input.Entries)}, nil
}

// GetKey returns the Redis key for a lookup table
// Exposed for testing purposes
func GetKey(kind lookup.Kind) string {
	return lookupKeyPrefix + string(kind)
}

func sortEntries(entries []*lookup.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ID != entries[j].ID {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Code < entries[j].Code
	})
}
