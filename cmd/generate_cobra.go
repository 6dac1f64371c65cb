package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/madstone-tech/loko/internal/adapters/cli"
	"github.com/madstone-tech/loko/internal/adapters/config"
	"github.com/madstone-tech/loko/internal/adapters/encoding"
	"github.com/madstone-tech/loko/internal/adapters/logging"
	"github.com/madstone-tech/loko/internal/adapters/manifest"
	"github.com/madstone-tech/loko/internal/adapters/random"
	"github.com/madstone-tech/loko/internal/core/usecases"
)

var generateFlags struct {
	theme     string
	themeFile string
	style     string
	useFixed  string
	seeds     string
	maxImages int
	format    string
	output    string
	prngSeed  int64
}

var generateCmd = &cobra.Command{
	Use:   "generate <template-path>",
	Short: "Resolve a template and enumerate its generation plan",
	Long: `generate runs the three external operations the core exposes
(load_and_resolve, apply_overrides, enumerate_plan) against a single
template path and writes the resulting items to a manifest snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVar(&generateFlags.theme, "theme", "", "theme name for implicit per-placeholder discovery")
	flags.StringVar(&generateFlags.themeFile, "theme-file", "", "explicit theme file path (wins over --theme)")
	flags.StringVar(&generateFlags.style, "style", "", "style token for qualified theme-key resolution")
	flags.StringVar(&generateFlags.useFixed, "use-fixed", "", `fixed-value overrides, "Name:key|Name2:key2"`)
	flags.StringVar(&generateFlags.seeds, "seeds", "", `seed-list override: "100,101,102", "100-105", or "5#100"`)
	flags.IntVar(&generateFlags.maxImages, "max-images", 0, "cap the number of emitted items (0 = unbounded)")
	flags.StringVar(&generateFlags.format, "format", "json", "manifest encoding: json or toon")
	flags.StringVar(&generateFlags.output, "output", "", "manifest output path (defaults to <output-root>/<template>.manifest.<format>)")
	flags.Int64Var(&generateFlags.prngSeed, "prng-seed", 0, "seed for the selector/sampling PRNG stream (0 picks a fresh one)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	templatePath := args[0]
	defaults := Defaults()

	fixedValues, err := cli.ParseFixedValues(generateFlags.useFixed)
	if err != nil {
		return err
	}
	seeds, err := cli.ParseSeeds(generateFlags.seeds)
	if err != nil {
		return err
	}

	prngSeed := generateFlags.prngSeed
	if prngSeed == 0 {
		prngSeed = time.Now().UnixNano()
	}

	reader := config.NewLoader(defaults.ConfigsRoot)
	themeLoader := config.NewThemeStore(defaults.ThemesRoot)
	rng := random.NewStream(prngSeed)

	logLevel := logging.LevelInfo
	if verbose {
		logLevel = logging.LevelDebug
	}
	pipeline := usecases.NewPipeline(reader, themeLoader, rng, defaults.MaxImportDepth, 0, defaults.MaxImportDepth).WithLogger(logging.New(logLevel))
	reporter := cli.NewProgressReporter()

	ctx := context.Background()
	rc, resolvedContext, warnings, err := pipeline.LoadAndResolve(ctx, templatePath, generateFlags.theme, generateFlags.themeFile, generateFlags.style)
	if err != nil {
		reporter.ReportError(err)
		return err
	}
	for _, w := range warnings {
		reporter.ReportInfo(fmt.Sprintf("%s: %s", w.Kind, w.Message))
	}

	resolvedContext, opts := pipeline.ApplyOverrides(resolvedContext, fixedValues, seeds, generateFlags.maxImages)

	seq, err := pipeline.EnumeratePlan(rc, resolvedContext, opts)
	if err != nil {
		reporter.ReportError(err)
		return err
	}

	snapshot := manifest.NewOngoing(resolvedContext)
	for _, w := range warnings {
		snapshot.AddWarning(w)
	}

	count := 0
	for item := range seq {
		snapshot.Append(item)
		count++
		reporter.ReportProgress("enumerate", count, generateFlags.maxImages, item.Prompt)
	}
	snapshot.Complete()

	outputPath := generateFlags.output
	if outputPath == "" {
		ext := "json"
		if generateFlags.format == "toon" {
			ext = "toon"
		}
		outputPath = filepath.Join(defaults.OutputRoot, filepath.Base(templatePath)+".manifest."+ext)
	}

	writer := manifest.NewWriter(encoding.NewEncoder(), generateFlags.format == "toon")
	if err := writer.Write(outputPath, snapshot); err != nil {
		reporter.ReportError(err)
		return err
	}

	reporter.ReportSuccess(fmt.Sprintf("%d item(s) written to %s", count, outputPath))
	return nil
}
