package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <kind> <name>",
	Short: "Look up a name in one reference table",
	Long: `Resolve matches a name against a lookup table by code, normalized name
or alias, the same way the extractors do, and prints the entry as JSON.`,
	Example: `  ruletext resolve skill "Sleight of Hand"
  ruletext resolve ability str`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		rt, err := newRuntime(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		entry, err := resolve(rt.cache, lookup.Kind(args[0]), args[1])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), entry)
	},
}

func resolve(cache reference.Resolver, kind lookup.Kind, name string) (*lookup.Entry, error) {
	if !kind.Valid() {
		return nil, errors.InvalidArgumentf("unknown lookup kind %q", kind)
	}
	entry, ok := cache.Resolve(kind, name)
	if !ok {
		return nil, errors.NotFoundf("no %s matches %q", kind, name)
	}
	return entry, nil
}
