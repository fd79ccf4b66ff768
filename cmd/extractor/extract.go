package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
	"github.com/KirkDiggler/rpg-ruletext/internal/orchestrators/batch"
)

var outPath string

var extractCmd = &cobra.Command{
	Use:   "extract [bundle-file]",
	Short: "Extract rules from an import bundle",
	Long: `Extract reads a bundle of classes, races, backgrounds, feats, items and
spells as YAML or JSON and writes every extracted payload as JSON.
Use "-" or omit the file to read the bundle from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to a file instead of stdout")
	extractCmd.Flags().Int("workers", 0, "entities extracted at once")
	_ = viper.BindPFlag("workers", extractCmd.Flags().Lookup("workers"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to open bundle %s", args[0])
		}
		defer f.Close()
		in = f
	}

	bundle, err := loadBundle(in)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	output, err := extractBundle(ctx, rt, bundle)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", outPath)
		}
		defer f.Close()
		out = f
	}

	return writeJSON(out, output)
}

func extractBundle(ctx context.Context, rt *runtime, bundle *source.Bundle) (*batch.RunOutput, error) {
	svc, err := rt.batch()
	if err != nil {
		return nil, err
	}

	output, err := svc.Run(ctx, &batch.RunInput{Bundle: bundle})
	if err != nil {
		return nil, err
	}

	for _, f := range output.Failures {
		slog.WarnContext(ctx, "Skipped entity", "kind", f.Kind, "index", f.Index, "name", f.Name, "reason", f.Message)
	}
	return output, nil
}

// loadBundle decodes a YAML or JSON bundle. JSON parses as YAML.
func loadBundle(r io.Reader) (*source.Bundle, error) {
	bundle := &source.Bundle{}
	if err := yaml.NewDecoder(r).Decode(bundle); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.InvalidArgument("bundle is empty")
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode bundle")
	}
	return bundle, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	return nil
}
