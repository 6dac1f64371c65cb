package entities

// GenerationMode selects the enumeration strategy for the plan generator
// (spec §4.6.1).
type GenerationMode string

const (
	GenerationModeCombinatorial GenerationMode = "combinatorial"
	GenerationModeRandom        GenerationMode = "random"
)

// SeedMode selects how RenderedItem.Seed is assigned per item (spec §4.6.2).
// A seed-list override supersedes whatever SeedMode is configured; it is
// represented separately on PlanOptions rather than as a fourth SeedMode
// value, since it changes the shape of enumeration itself (step 2 of
// §4.6.2), not just the seed assignment rule.
type SeedMode string

const (
	SeedModeFixed       SeedMode = "fixed"
	SeedModeProgressive SeedMode = "progressive"
	SeedModeRandom      SeedMode = "random"
)

// GenerationBlock carries the generation-mode/seed-mode settings an
// executable PromptConfig declares. Its presence on a loaded source is what
// classifies that source as a prompt (spec §4.1 rule 1).
type GenerationBlock struct {
	Mode       GenerationMode
	SeedMode   SeedMode
	Seed       int64
	MaxImages  int // 0 means unbounded
}

// PromptConfig is an executable leaf implementing a template (spec §3). It
// is produced by the loader for sources classified SourceKindPrompt.
type PromptConfig struct {
	// Parent is the path to the parent template or prompt.
	Parent string

	// Text is the prompt's own text, injected into the parent's {prompt}
	// marker during inheritance to produce the final template text.
	Text string

	Negative   string
	Parameters map[string]any
	Imports    map[string]ImportRef
	Generation GenerationBlock

	// Theme names the theme to apply during stage 3, if any.
	Theme string
	// ThemeFile optionally names an explicit theme source path, bypassing
	// implicit directory-convention discovery.
	ThemeFile string
	// Style selects among style-qualified theme imports (default "default").
	Style string
}

// EffectiveStyle returns p.Style, defaulting to "default".
func (p *PromptConfig) EffectiveStyle() string {
	if p.Style == "" {
		return "default"
	}
	return p.Style
}
