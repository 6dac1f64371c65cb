package usecases

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// MergedConfig is stage 2's output: a single config of the same kind as the
// originally requested leaf, with its entire parent chain folded in root to
// leaf (spec §4.2).
type MergedConfig struct {
	Kind entities.SourceKind // Template, Prompt, or Chunk

	TemplateText string
	Negative     string
	Parameters   map[string]any
	Imports      map[string]entities.ImportRef

	// Prompt-only fields.
	Generation entities.GenerationBlock
	Theme      string
	ThemeFile  string
	Style      string

	// Chunk-only fields.
	Defaults  map[string]string
	SubChunks []string

	// Removed records placeholder names erased by a theme's [Remove]
	// directive for the active style (spec §4.3 step 1), populated by
	// stage 3 and carried forward into ResolvedContext by stage 4.
	Removed map[string]bool
}

// InheritanceResolver is stage 2 of the pipeline.
type InheritanceResolver struct {
	loader   *Loader
	maxDepth int
}

// NewInheritanceResolver creates a resolver that follows parent chains up
// to maxDepth links (spec §4.2: "at least 8").
func NewInheritanceResolver(loader *Loader, maxDepth int) *InheritanceResolver {
	if maxDepth <= 0 {
		maxDepth = 8
	}
	return &InheritanceResolver{loader: loader, maxDepth: maxDepth}
}

// Resolve loads the source at path and every ancestor in its parent chain,
// then merges root-to-leaf per spec §4.2's rule table.
func (r *InheritanceResolver) Resolve(ctx context.Context, path string) (*MergedConfig, []entities.Warning, error) {
	chain, err := r.loadChain(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	merged, err := toMergedConfig(chain[0])
	if err != nil {
		return nil, nil, err
	}

	var warnings []entities.Warning
	for _, child := range chain[1:] {
		childMerged, err := toMergedConfig(child)
		if err != nil {
			return nil, nil, err
		}
		w, err := mergeInto(merged, childMerged, child.Path)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}

	return merged, warnings, nil
}

// loadChain follows path's Parent references to the root ancestor, failing
// on a cycle or excess depth, and returns the chain root-first.
func (r *InheritanceResolver) loadChain(ctx context.Context, path string) ([]*LoadedSource, error) {
	var stack []string
	var chain []*LoadedSource
	visited := make(map[string]bool)

	current := path
	for {
		ls, err := r.loader.Load(ctx, current)
		if err != nil {
			return nil, err
		}

		if visited[ls.Path] {
			return nil, &entities.CycleError{Stack: append(append([]string{}, stack...), ls.Path)}
		}
		visited[ls.Path] = true
		stack = append(stack, ls.Path)
		chain = append(chain, ls)

		if len(chain) > r.maxDepth {
			return nil, &entities.InheritanceError{Detail: "parent chain exceeds the configured depth limit"}
		}

		parent := ls.ParentPath()
		if parent == "" {
			break
		}
		current = parent
	}

	reverseChain(chain)
	return chain, nil
}

func reverseChain(chain []*LoadedSource) {
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
}

// toMergedConfig lifts a single LoadedSource (with no inheritance applied
// yet) into the shared MergedConfig shape.
func toMergedConfig(ls *LoadedSource) (*MergedConfig, error) {
	switch ls.Kind {
	case entities.SourceKindTemplate:
		t := ls.Template
		return &MergedConfig{
			Kind:         entities.SourceKindTemplate,
			TemplateText: t.Text,
			Negative:     t.Negative,
			Parameters:   cloneParams(t.Parameters),
			Imports:      cloneImports(t.Imports),
		}, nil

	case entities.SourceKindPrompt:
		p := ls.Prompt
		return &MergedConfig{
			Kind:         entities.SourceKindPrompt,
			TemplateText: p.Text,
			Negative:     p.Negative,
			Parameters:   cloneParams(p.Parameters),
			Imports:      cloneImports(p.Imports),
			Generation:   p.Generation,
			Theme:        p.Theme,
			ThemeFile:    p.ThemeFile,
			Style:        p.Style,
		}, nil

	case entities.SourceKindChunk:
		c := ls.Chunk
		return &MergedConfig{
			Kind:         entities.SourceKindChunk,
			TemplateText: c.Text,
			Imports:      cloneImports(c.Imports),
			Defaults:     cloneStringMap(c.Defaults),
			SubChunks:    append([]string{}, c.SubChunks...),
		}, nil

	default:
		return nil, &entities.InheritanceError{Detail: "only template, prompt and chunk sources participate in inheritance"}
	}
}

// mergeInto folds child onto parent in place, following the (parent kind,
// child kind) rule table of spec §4.2, and returns any warnings raised.
func mergeInto(parent, child *MergedConfig, childPath string) ([]entities.Warning, error) {
	var warnings []entities.Warning

	switch {
	case parent.Kind == entities.SourceKindTemplate && child.Kind == entities.SourceKindTemplate:
		fallthrough
	case parent.Kind == entities.SourceKindTemplate && child.Kind == entities.SourceKindPrompt:
		fallthrough
	case parent.Kind == entities.SourceKindPrompt && child.Kind == entities.SourceKindPrompt:
		text, w := injectChild(parent.TemplateText, child.TemplateText, childPath)
		warnings = append(warnings, w...)
		parent.TemplateText = text
		parent.Negative = mergeText(parent.Negative, child.Negative)
		parent.Parameters = mergeParams(parent.Parameters, child.Parameters)
		parent.Imports = mergeImports(parent.Imports, child.Imports)
		if child.Kind == entities.SourceKindPrompt {
			parent.Kind = entities.SourceKindPrompt
			parent.Generation = child.Generation
			parent.Theme = child.Theme
			parent.ThemeFile = child.ThemeFile
			parent.Style = child.Style
		}

	case parent.Kind == entities.SourceKindChunk && child.Kind == entities.SourceKindChunk:
		if child.TemplateText != "" {
			parent.TemplateText = child.TemplateText
		}
		parent.Imports = mergeImports(parent.Imports, child.Imports)
		parent.Defaults = mergeStringMap(parent.Defaults, child.Defaults)
		parent.SubChunks = mergeStringSlice(parent.SubChunks, child.SubChunks)

	default:
		return nil, &entities.InheritanceError{
			Detail: fmt.Sprintf("incompatible parent/child kinds: %s -> %s", parent.Kind, child.Kind),
		}
	}

	return warnings, nil
}

// injectChild substitutes child's text into parent's single {prompt}
// marker. If parent has none, a warning is emitted and parent's text is
// replaced entirely by child's (spec §4.2 table, template->template row).
func injectChild(parentText, childText, childPath string) (string, []entities.Warning) {
	if entities.CountPromptMarkers(parentText) != 1 {
		return childText, []entities.Warning{{
			Kind:    entities.WarningParentPromptMissing,
			Message: "parent template lacks a {prompt} marker; parent text replaced entirely",
			Source:  childPath,
		}}
	}
	return entities.InjectPrompt(parentText, childText), nil
}

func mergeText(parent, child string) string {
	if child != "" {
		return child
	}
	return parent
}

func cloneParams(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeParams(parent, child map[string]any) map[string]any {
	out := cloneParams(parent)
	if out == nil {
		out = make(map[string]any)
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func cloneImports(m map[string]entities.ImportRef) map[string]entities.ImportRef {
	if m == nil {
		return nil
	}
	out := make(map[string]entities.ImportRef, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeImports(parent, child map[string]entities.ImportRef) map[string]entities.ImportRef {
	out := cloneImports(parent)
	if out == nil {
		out = make(map[string]entities.ImportRef)
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeStringMap(parent, child map[string]string) map[string]string {
	out := cloneStringMap(parent)
	if out == nil {
		out = make(map[string]string)
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func mergeStringSlice(parent, child []string) []string {
	seen := make(map[string]bool, len(parent)+len(child))
	out := make([]string, 0, len(parent)+len(child))
	for _, s := range append(append([]string{}, parent...), child...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
