// Package batch runs every entity of an import bundle through its extractor
package batch

//go:generate mockgen -destination=mock/mock_service.go -package=batchmock github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/batch Service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/background"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/class"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/feat"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/race"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/spell"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// DefaultWorkers is used when neither the config nor the input sets a count
const DefaultWorkers = 4

// Service defines the interface for batch extraction
type Service interface {
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)
}

// Config holds the dependencies for the batch orchestrator
type Config struct {
	Cache       reference.Cache
	Classes     class.Service
	Races       race.Service
	Backgrounds background.Service
	Feats       feat.Service
	Items       item.Service
	Spells      spell.Service
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Workers     int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Cache == nil {
		vb.RequiredField("Cache")
	}
	if c.Classes == nil {
		vb.RequiredField("Classes")
	}
	if c.Races == nil {
		vb.RequiredField("Races")
	}
	if c.Backgrounds == nil {
		vb.RequiredField("Backgrounds")
	}
	if c.Feats == nil {
		vb.RequiredField("Feats")
	}
	if c.Items == nil {
		vb.RequiredField("Items")
	}
	if c.Spells == nil {
		vb.RequiredField("Spells")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Workers < 0 {
		vb.InvalidField("Workers", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	cache       reference.Cache
	classes     class.Service
	races       race.Service
	backgrounds background.Service
	feats       feat.Service
	items       item.Service
	spells      spell.Service
	idGenerator idgen.Generator
	clock       clock.Clock
	workers     int
}

// NewOrchestrator creates a new batch orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}

	return &orchestrator{
		cache:       cfg.Cache,
		classes:     cfg.Classes,
		races:       cfg.Races,
		backgrounds: cfg.Backgrounds,
		feats:       cfg.Feats,
		items:       cfg.Items,
		spells:      cfg.Spells,
		idGenerator: cfg.IDGenerator,
		clock:       c,
		workers:     workers,
	}, nil
}

// job extracts one entity and stores its payload
type job struct {
	kind  string
	index int
	name  string
	run   func(ctx context.Context) error
}

// Run warms the reference cache for every kind, then extracts the bundle
// with at most Workers entities in flight. An entity the extractor rejects
// as invalid is recorded as a failure and the batch goes on; any other
// error stops the batch. Cancellation is checked between entities.
func (o *orchestrator) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil || input.Bundle == nil {
		return nil, errors.InvalidArgument("bundle is required")
	}
	if input.Workers < 0 {
		return nil, errors.InvalidArgument("workers must not be negative")
	}
	bundle := input.Bundle

	workers := o.workers
	if input.Workers > 0 {
		workers = input.Workers
	}

	out := &RunOutput{
		BatchID:   o.idGenerator.Generate(),
		StartedAt: o.clock.Now(),
	}
	slog.InfoContext(ctx, "Batch started",
		"batch_id", out.BatchID,
		"entities", bundle.Size(),
		"workers", workers)

	o.cache.Warm(ctx)

	classes := make([]*class.Payload, len(bundle.Classes))
	races := make([]*race.Payload, len(bundle.Races))
	backgrounds := make([]*background.Payload, len(bundle.Backgrounds))
	feats := make([]*feat.Payload, len(bundle.Feats))
	items := make([]*item.Payload, len(bundle.Items))
	spells := make([]*spell.Payload, len(bundle.Spells))

	jobs := make([]job, 0, bundle.Size())
	for i, c := range bundle.Classes {
		jobs = append(jobs, job{kind: KindClass, index: i, name: c.GetName(),
			run: func(ctx context.Context) error {
				res, err := o.classes.Extract(ctx, &class.ExtractInput{Class: c})
				if err != nil {
					return err
				}
				classes[i] = res.Payload
				return nil
			}})
	}
	for i, r := range bundle.Races {
		jobs = append(jobs, job{kind: KindRace, index: i, name: r.GetName(),
			run: func(ctx context.Context) error {
				res, err := o.races.Extract(ctx, &race.ExtractInput{Race: r})
				if err != nil {
					return err
				}
				races[i] = res.Payload
				return nil
			}})
	}
	for i, b := range bundle.Backgrounds {
		jobs = append(jobs, job{kind: KindBackground, index: i, name: b.GetName(),
			run: func(ctx context.Context) error {
				res, err := o.backgrounds.Extract(ctx, &background.ExtractInput{Background: b})
				if err != nil {
					return err
				}
				backgrounds[i] = res.Payload
				return nil
			}})
	}
	for i, f := range bundle.Feats {
		jobs = append(jobs, job{kind: KindFeat, index: i, name: f.GetName(),
			run: func(ctx context.Context) error {
				res, err := o.feats.Extract(ctx, &feat.ExtractInput{Feat: f})
				if err != nil {
					return err
				}
				feats[i] = res.Payload
				return nil
			}})
	}
	for i, it := range bundle.Items {
		jobs = append(jobs, job{kind: KindItem, index: i, name: it.GetName(),
			run: func(ctx context.Context) error {
				res, err := o.items.Extract(ctx, &item.ExtractInput{Item: it})
				if err != nil {
					return err
				}
				items[i] = res.Payload
				return nil
			}})
	}
	for i, sp := range bundle.Spells {
		jobs = append(jobs, job{kind: KindSpell, index: i, name: sp.GetName(),
			run: func(ctx context.Context) error {
				res, err := o.spells.Extract(ctx, &spell.ExtractInput{Spell: sp})
				if err != nil {
					return err
				}
				spells[i] = res.Payload
				return nil
			}})
	}

	var mu sync.Mutex
	failures := []Failure{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.FromContext(err, "batch interrupted")
			}
			err := j.run(gctx)
			if err == nil {
				return nil
			}
			if errors.IsInvalidArgument(err) {
				slog.WarnContext(gctx, "Entity rejected",
					"batch_id", out.BatchID,
					"kind", j.kind,
					"index", j.index,
					"name", j.name,
					"error", err)
				mu.Lock()
				failures = append(failures, Failure{Kind: j.kind, Index: j.index, Name: j.name, Message: errors.GetMessage(err)})
				mu.Unlock()
				return nil
			}
			return errors.Wrapf(err, "failed to extract %s %q", j.kind, j.name).WithEntity(j.kind, j.name)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(err, "batch interrupted")
	}

	sort.Slice(failures, func(a, b int) bool {
		if failures[a].Kind != failures[b].Kind {
			return kindOrder[failures[a].Kind] < kindOrder[failures[b].Kind]
		}
		return failures[a].Index < failures[b].Index
	})

	out.Classes = compact(classes)
	out.Races = compact(races)
	out.Backgrounds = compact(backgrounds)
	out.Feats = compact(feats)
	out.Items = compact(items)
	out.Spells = compact(spells)
	out.Failures = failures
	out.FinishedAt = o.clock.Now()
	out.Duration = out.FinishedAt.Sub(out.StartedAt)

	slog.InfoContext(ctx, "Batch finished",
		"batch_id", out.BatchID,
		"extracted", out.Extracted(),
		"failed", len(out.Failures),
		"duration", out.Duration)

	return out, nil
}

// compact drops the slots of rejected entities, keeping bundle order
func compact[T any](slots []*T) []*T {
	out := make([]*T, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
