package entities

import "strings"

// PromptMarker is the reserved literal token a base template must contain
// exactly once (spec §3 invariant).
const PromptMarker = "{prompt}"

// TemplateConfig is a base parameterized prompt, not directly executable
// (spec §3). It is produced by the loader for sources classified
// SourceKindTemplate and is the parent side of template->template and
// template->prompt inheritance.
type TemplateConfig struct {
	// Text is the template body; must contain PromptMarker exactly once.
	Text string

	// Negative is the negative-prompt text, merged like Parameters.
	Negative string

	// Parameters holds numeric/string generation parameters (steps, cfg
	// scale, sampler, ...); merged with child priority during inheritance.
	Parameters map[string]any

	// Imports maps placeholder name to its import reference.
	Imports map[string]ImportRef

	// Parent is the path to the parent source, or empty if this is a root
	// template.
	Parent string
}

// CountPromptMarkers returns how many times PromptMarker occurs in text.
func CountPromptMarkers(text string) int {
	return strings.Count(text, PromptMarker)
}

// Validate enforces the base-template invariant: exactly one {prompt}.
func (t *TemplateConfig) Validate() error {
	var errs ValidationErrors
	if n := CountPromptMarkers(t.Text); n != 1 {
		errs.Add("TemplateConfig", "Text", t.Text, "template text must contain exactly one {prompt} marker", nil)
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// InjectPrompt substitutes promptText for the single {prompt} marker in
// parentText, returning the resulting flat template text. Callers must have
// already validated that parentText contains exactly one marker.
func InjectPrompt(parentText, promptText string) string {
	return strings.Replace(parentText, PromptMarker, promptText, 1)
}
