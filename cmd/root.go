// Package cmd implements the lokoprompt CLI commands using Cobra.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madstone-tech/loko/internal/adapters/config"
	"github.com/madstone-tech/loko/internal/core/entities"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
	appBuiltBy = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	projectRoot string
	verbose     bool

	loadedDefaults *entities.CoreDefaults
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lokoprompt",
	Short: "Template resolution and generation-plan core for batch image prompts",
	Long: `lokoprompt resolves layered prompt templates (inheritance, theme
overlays, typed imports, weighted variations, chunk expansion) into a
finite, enumerable generation plan of rendered prompts and seeds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", ".", "project root directory (for lokoprompt.toml overrides)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}

// Execute runs the root command. This is the main entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
// Call this from main.go before Execute().
func SetVersionInfo(version, commit, date, builtBy string) {
	appVersion = version
	appCommit = commit
	appDate = date
	appBuiltBy = builtBy

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("lokoprompt %s (commit: %s, built: %s by %s)\n", version, commit, date, builtBy),
	)
}

// initConfig loads entities.CoreDefaults via the XDG-aware DefaultsLoader:
// global config.toml, then project-local lokoprompt.toml overrides on top.
func initConfig() error {
	loader := config.NewDefaultsLoader(config.NewXDGPathResolver())
	defaults, err := loader.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("loading defaults: %w", err)
	}
	loadedDefaults = defaults
	return nil
}

// Defaults returns the CoreDefaults resolved by the last PersistentPreRunE,
// falling back to the built-in defaults if Execute has not yet run (e.g.
// from a test invoking a subcommand's RunE directly).
func Defaults() *entities.CoreDefaults {
	if loadedDefaults == nil {
		return entities.DefaultCoreDefaults()
	}
	return loadedDefaults
}
