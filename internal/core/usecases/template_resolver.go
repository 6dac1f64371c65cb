package usecases

import (
	"context"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// TemplateResolver is stage 5 of the pipeline (spec §4.5): it expands chunk
// directives in a merged config's template text and parses the resulting
// placeholder references, producing the ResolvedConfig the plan generator
// enumerates against.
type TemplateResolver struct {
	expander *ChunkExpander
}

// NewTemplateResolver creates a TemplateResolver backed by expander.
func NewTemplateResolver(expander *ChunkExpander) *TemplateResolver {
	return &TemplateResolver{expander: expander}
}

// Resolve expands merged's chunk directives, scans the result for
// placeholder references and returns the ResolvedConfig alongside the
// deduplicated, first-occurrence-ordered list of names the import resolver
// must supply variation sets for.
func (t *TemplateResolver) Resolve(ctx context.Context, merged *MergedConfig) (*entities.ResolvedConfig, []string, []entities.Warning, error) {
	expandedText, warnings, err := t.expander.Expand(ctx, merged.TemplateText, merged.Imports)
	if err != nil {
		return nil, nil, nil, err
	}

	refs, err := entities.ScanPlaceholders(expandedText)
	if err != nil {
		return nil, nil, nil, err
	}
	refs = applyLastOccurrenceWeights(refs)

	names := uniqueNames(refs)

	rc := &entities.ResolvedConfig{
		TemplateText: expandedText,
		Negative:     merged.Negative,
		Parameters:   merged.Parameters,
		Generation:   merged.Generation,
		References:   refs,
	}

	return rc, names, warnings, nil
}

// applyLastOccurrenceWeights implements spec §4.5.4: when a placeholder name
// is referenced more than once and the occurrences disagree on an explicit
// $W weight, the last occurrence in the text wins for every occurrence of
// that name.
func applyLastOccurrenceWeights(refs []entities.PlaceholderRef) []entities.PlaceholderRef {
	lastWeight := make(map[string]int)
	hasWeight := make(map[string]bool)

	for _, r := range refs {
		if w, ok := r.Selector.HasExplicitWeight(); ok {
			lastWeight[r.Name] = w
			hasWeight[r.Name] = true
		}
	}

	out := make([]entities.PlaceholderRef, len(refs))
	copy(out, refs)
	for i, r := range out {
		if !hasWeight[r.Name] {
			continue
		}
		w := lastWeight[r.Name]
		if cur, ok := r.Selector.HasExplicitWeight(); ok && cur == w {
			continue
		}
		out[i].Selector = withWeight(r.Selector, w)
	}
	return out
}

// withWeight returns a copy of sel with its weight fragment replaced by w
// (or a bare Weight selector if sel is nil).
func withWeight(sel *entities.Selector, w int) *entities.Selector {
	if sel == nil {
		return &entities.Selector{Kind: entities.SelectorKindWeight, Weight: w}
	}
	if sel.Kind == entities.SelectorKindWeight {
		cp := *sel
		cp.Weight = w
		return &cp
	}
	if sel.Kind == entities.SelectorKindCombo {
		parts := make([]entities.Selector, len(sel.Parts))
		copy(parts, sel.Parts)
		replaced := false
		for i := range parts {
			if parts[i].Kind == entities.SelectorKindWeight {
				parts[i].Weight = w
				replaced = true
			}
		}
		if !replaced {
			parts = append(parts, entities.Selector{Kind: entities.SelectorKindWeight, Weight: w})
		}
		return &entities.Selector{Kind: entities.SelectorKindCombo, Parts: parts}
	}
	return &entities.Selector{Kind: entities.SelectorKindCombo, Parts: []entities.Selector{*sel, {Kind: entities.SelectorKindWeight, Weight: w}}}
}

func uniqueNames(refs []entities.PlaceholderRef) []string {
	seen := make(map[string]bool, len(refs))
	var out []string
	for _, r := range refs {
		if !seen[r.Name] {
			seen[r.Name] = true
			out = append(out, r.Name)
		}
	}
	return out
}
