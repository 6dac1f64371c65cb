package entities

// CoreDefaults is the JSON/TOML-like configuration object the CLI
// collaborator loads to locate the configs-root and themes-root passed
// into load_and_resolve, plus the default backend URL and output-root for
// the image-synthesis client that consumes a GenerationPlan (spec §6). The
// core itself never reads this type; it always takes already-resolved
// paths.
type CoreDefaults struct {
	// ConfigsRoot is the directory templates, prompts, chunks and
	// variation-set sources are resolved relative to.
	ConfigsRoot string `toml:"configs_root"`

	// ThemesRoot is the directory implicit theme discovery looks in.
	ThemesRoot string `toml:"themes_root"`

	// BackendURL is the default image-synthesis backend endpoint; the core
	// never dials it, it is only carried for the CLI collaborator.
	BackendURL string `toml:"backend_url"`

	// OutputRoot is where the CLI collaborator writes manifest snapshots.
	OutputRoot string `toml:"output_root"`

	// DefaultStyle is read from the defaults file but not consulted by the
	// generate command: without --style, the prompt's own style applies, and
	// the theme overlay falls back to the literal style "default".
	DefaultStyle string `toml:"default_style"`

	// MaxImportDepth bounds import/inheritance recursion (spec §4.2, §4.4).
	MaxImportDepth int `toml:"max_import_depth"`
}

// DefaultCoreDefaults returns the built-in fallback values applied before
// any global or project-local config file is read.
func DefaultCoreDefaults() *CoreDefaults {
	return &CoreDefaults{
		ConfigsRoot:    "",
		ThemesRoot:     "",
		BackendURL:     "http://localhost:7860",
		OutputRoot:     "",
		DefaultStyle:   "default",
		MaxImportDepth: 16,
	}
}
