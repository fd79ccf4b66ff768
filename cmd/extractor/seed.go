package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
	"github.com/KirkDiggler/rpg-ruletext/internal/repositories/lookups"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in lookup tables to the configured store",
	Long: `Seed copies the built-in lookup tables (abilities, skills, classes,
conditions, languages, proficiency types, sources and damage types) into the
Redis or SQLite store so they can be edited there.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		rt, err := newRuntime(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.repo == nil {
			return errors.FailedPrecondition("seed needs --redis-addr or --sqlite-path")
		}

		written, err := seed(cmd.Context(), rt.repo)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d lookup entries\n", written)
		return nil
	},
}

// seed upserts every built-in table into repo
func seed(ctx context.Context, repo lookups.Repository) (int, error) {
	total := 0
	for _, kind := range lookup.AllKinds {
		out, err := repo.Upsert(ctx, &lookups.UpsertInput{
			Kind:    kind,
			Entries: reference.Fallback(kind),
		})
		if err != nil {
			return total, errors.Wrapf(err, "failed to seed %s table", kind)
		}
		slog.InfoContext(ctx, "Seeded lookup table", "kind", kind, "entries", out.Written)
		total += out.Written
	}
	return total, nil
}
