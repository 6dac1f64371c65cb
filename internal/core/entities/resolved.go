package entities

// ResolvedConfig is the output of stages 2-5: final template text with all
// chunk directives expanded, negative text, parameters, and the generation
// block the plan generator will enumerate against (spec §4.5).
type ResolvedConfig struct {
	// TemplateText has every @Name / @{Name ...} chunk directive expanded,
	// but placeholder references ({Name}, {Name:part}, {Name[sel]}) are
	// left intact for the plan generator to substitute per emitted item.
	TemplateText string

	Negative   string
	Parameters map[string]any
	Generation GenerationBlock

	// References is the parsed set of placeholder references found in
	// TemplateText, in first-occurrence order, as produced by stage 5.
	References []PlaceholderRef
}

// ResolvedContext is the output of stage 4 (as consumed and carried forward
// by stage 5): the mapping from placeholder name to its variation set, plus
// provenance and the active style token (spec §3).
type ResolvedContext struct {
	// Imports maps placeholder name -> its resolved, normalised variation set.
	Imports map[string]*VariationSet

	// Provenance maps placeholder name -> the source path it was loaded
	// from, for diagnostics (spec §4.4 step 5).
	Provenance map[string]string

	// Style is the active style token used during theme overlay (spec §4.3).
	Style string

	// Removed records placeholder names erased by a theme's [Remove]
	// directive for the active style; they substitute as empty string
	// wherever referenced (spec §4.5.2).
	Removed map[string]bool
}

// NewResolvedContext creates an empty context for the given style.
func NewResolvedContext(style string) *ResolvedContext {
	if style == "" {
		style = "default"
	}
	return &ResolvedContext{
		Imports:    make(map[string]*VariationSet),
		Provenance: make(map[string]string),
		Style:      style,
		Removed:    make(map[string]bool),
	}
}

// Validate enforces the §3 invariant that every placeholder appearing in
// refs has a corresponding entry in the context (or was explicitly removed).
func (c *ResolvedContext) Validate(refs []PlaceholderRef) error {
	for _, r := range refs {
		if c.Removed[r.Name] {
			continue
		}
		if _, ok := c.Imports[r.Name]; !ok {
			return &UnknownPlaceholderError{Name: r.Name}
		}
	}
	return nil
}

// AppliedVariation records which variation (and, if relevant, which part)
// was substituted for one placeholder in one emitted item.
type AppliedVariation struct {
	Key  string
	Part string
}

// Warning is a non-fatal diagnostic collected during resolution (spec §7).
type Warning struct {
	Kind    WarningKind
	Message string
	Source  string
}

// WarningKind enumerates the three non-fatal conditions spec §7 names.
type WarningKind string

const (
	WarningParentPromptMissing WarningKind = "parent-prompt-missing"
	WarningUnusedWeight        WarningKind = "unused-weight"
	WarningUnusedImport        WarningKind = "unused-import"
)
