package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-ruletext/internal/config"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/background"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/batch"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/class"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/feat"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/race"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/spell"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-ruletext/internal/redis"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
	"github.com/KirkDiggler/rpg-ruletext/internal/repositories/lookups"
)

// runtime holds the lookup store and reference cache built from a Config
type runtime struct {
	cfg   *config.Config
	repo  lookups.Repository
	cache reference.Cache

	closers []func() error
}

func newRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	rt := &runtime{cfg: cfg}

	switch {
	case cfg.RedisAddr != "":
		client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{DialTimeout: cfg.LookupTimeout})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create redis client for %s", cfg.RedisAddr)
		}
		rt.closers = append(rt.closers, client.Close)

		repo, err := lookups.NewRedis(&lookups.RedisConfig{Client: client})
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.repo = repo
		slog.InfoContext(ctx, "Using redis lookup store", "addr", cfg.RedisAddr)

	case cfg.SQLitePath != "":
		db, err := lookups.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, db.Close)

		repo, err := lookups.NewSQLite(&lookups.SQLiteConfig{DB: db})
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.repo = repo
		slog.InfoContext(ctx, "Using sqlite lookup store", "path", cfg.SQLitePath)

	default:
		slog.InfoContext(ctx, "No lookup store configured, using built-in tables")
	}

	cache, err := reference.NewCache(&reference.Config{
		Repository:  rt.repo,
		LoadTimeout: cfg.LookupTimeout,
	})
	if err != nil {
		rt.Close()
		return nil, errors.Wrap(err, "failed to create reference cache")
	}
	rt.cache = cache

	return rt, nil
}

// Close releases the lookup store
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			slog.Warn("Failed to close lookup store", "error", err)
		}
	}
	rt.closers = nil
}

// batch wires every extractor to the runtime's reference cache
func (rt *runtime) batch() (batch.Service, error) {
	classes, err := class.NewOrchestrator(&class.Config{Reference: rt.cache})
	if err != nil {
		return nil, err
	}
	races, err := race.NewOrchestrator(&race.Config{Reference: rt.cache})
	if err != nil {
		return nil, err
	}
	backgrounds, err := background.NewOrchestrator(&background.Config{Reference: rt.cache})
	if err != nil {
		return nil, err
	}
	feats, err := feat.NewOrchestrator(&feat.Config{Reference: rt.cache})
	if err != nil {
		return nil, err
	}
	items, err := item.NewOrchestrator(&item.Config{Reference: rt.cache})
	if err != nil {
		return nil, err
	}
	spells, err := spell.NewOrchestrator(&spell.Config{Reference: rt.cache})
	if err != nil {
		return nil, err
	}

	return batch.NewOrchestrator(&batch.Config{
		Cache:       rt.cache,
		Classes:     classes,
		Races:       races,
		Backgrounds: backgrounds,
		Feats:       feats,
		Items:       items,
		Spells:      spells,
		IDGenerator: idgen.NewUUID("batch"),
		Clock:       clock.New(),
		Workers:     rt.cfg.Workers,
	})
}
