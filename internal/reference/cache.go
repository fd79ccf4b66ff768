// Package reference resolves names and abbreviations found in rule text to
// canonical lookup entries. Tables are loaded lazily from a repository and
// memoized; when the repository is missing or failing the embedded fallback
// tables are used instead, so resolution never fails.
package reference

import (
	"context"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/repositories/lookups"
)

// DefaultLoadTimeout bounds one lazy table load
const DefaultLoadTimeout = 2 * time.Second

// Resolver is the read side of the cache handed to matchers
type Resolver interface {
	// Resolve finds the entry of kind whose code, name or alias matches name
	Resolve(kind lookup.Kind, name string) (*lookup.Entry, bool)

	// Entries returns the whole table for kind in table order
	Entries(kind lookup.Kind) []*lookup.Entry
}

// Cache is a Resolver whose tables can be preloaded and cleared
type Cache interface {
	Resolver

	// Warm loads every given kind (all kinds when none are given).
	// Each kind is tried once; a failed load falls back to the static table.
	Warm(ctx context.Context, kinds ...lookup.Kind)

	// Reset drops every memoized table
	Reset()
}

// Config holds the dependencies of the cache
type Config struct {
	// Repository is optional; without one every table comes from the fallback
	Repository  lookups.Repository
	LoadTimeout time.Duration
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.LoadTimeout < 0 {
		vb.InvalidField("LoadTimeout", "must not be negative")
	}

	return vb.Build()
}

type cache struct {
	repo        lookups.Repository
	loadTimeout time.Duration
	memo        *gocache.Cache
	loads       singleflight.Group
}

// NewCache creates a new reference cache
func NewCache(cfg *Config) (Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.LoadTimeout
	if timeout == 0 {
		timeout = DefaultLoadTimeout
	}

	return &cache{
		repo:        cfg.Repository,
		loadTimeout: timeout,
		memo:        gocache.New(gocache.NoExpiration, 0),
	}, nil
}

func (c *cache) Resolve(kind lookup.Kind, name string) (*lookup.Entry, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}

	return c.table(context.Background(), kind).find(name)
}

func (c *cache) Entries(kind lookup.Kind) []*lookup.Entry {
	return c.table(context.Background(), kind).entries
}

func (c *cache) Warm(ctx context.Context, kinds ...lookup.Kind) {
	if len(kinds) == 0 {
		kinds = lookup.AllKinds
	}

	for _, kind := range kinds {
		c.table(ctx, kind)
	}
}

func (c *cache) Reset() {
	c.memo.Flush()
}

func (c *cache) table(ctx context.Context, kind lookup.Kind) *table {
	if cached, ok := c.memo.Get(string(kind)); ok {
		return cached.(*table)
	}

	loaded, _, _ := c.loads.Do(string(kind), func() (any, error) {
		if cached, ok := c.memo.Get(string(kind)); ok {
			return cached, nil
		}

		t := newTable(c.load(ctx, kind))
		c.memo.Set(string(kind), t, gocache.NoExpiration)
		return t, nil
	})

	return loaded.(*table)
}

func (c *cache) load(ctx context.Context, kind lookup.Kind) []*lookup.Entry {
	if c.repo == nil {
		return Fallback(kind)
	}

	ctx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	defer cancel()

	out, err := c.repo.ListByKind(ctx, &lookups.ListByKindInput{Kind: kind})
	if err != nil {
		msg := "lookup table unreadable, using fallback"
		if errors.IsTransient(err) {
			msg = "lookup store unreachable, using fallback"
		}
		slog.WarnContext(ctx, msg,
			"kind", kind,
			"code", errors.GetCode(err),
			"error", err)
		return Fallback(kind)
	}
	if out == nil || len(out.Entries) == 0 {
		slog.WarnContext(ctx, "lookup table empty, using fallback", "kind", kind)
		return Fallback(kind)
	}

	slog.DebugContext(ctx, "lookup table loaded", "kind", kind, "entries", len(out.Entries))
	return out.Entries
}
