package usecases

import (
	"context"
	"strings"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// ChunkExpander recursively expands `@Name` / `@{Name k=v, ...}` directives
// in template text (spec §4.5.1). A directive's Name is looked up in the
// same import map a `{Name}` placeholder would use; that entry's source must
// turn out to be a chunk once loaded, and any other kind is a
// SchemaViolationError.
//
// Override bindings (from the chunk's own Defaults, overridden per injection
// site by a braced directive) are substituted into the chunk's text via a
// `<key>` token, a sigil distinct from `{Name}` placeholder syntax so the
// two binding mechanisms never collide.
type ChunkExpander struct {
	resolver *InheritanceResolver
	maxDepth int
}

// NewChunkExpander creates a ChunkExpander that follows chunk-of-chunk
// nesting up to maxDepth levels (defaulting to 16 when maxDepth <= 0).
func NewChunkExpander(resolver *InheritanceResolver, maxDepth int) *ChunkExpander {
	if maxDepth <= 0 {
		maxDepth = 16
	}
	return &ChunkExpander{resolver: resolver, maxDepth: maxDepth}
}

// Expand resolves every chunk directive in text against imports, returning
// the fully spliced text. Placeholder references (`{Name}`) are left intact
// for the template resolver and plan generator to handle.
func (e *ChunkExpander) Expand(ctx context.Context, text string, imports map[string]entities.ImportRef) (string, []entities.Warning, error) {
	return e.expand(ctx, text, imports, 0, nil)
}

func (e *ChunkExpander) expand(ctx context.Context, text string, imports map[string]entities.ImportRef, depth int, stack []string) (string, []entities.Warning, error) {
	directives, err := entities.ScanChunkDirectives(text)
	if err != nil {
		return "", nil, err
	}
	if len(directives) == 0 {
		return text, nil, nil
	}
	if depth >= e.maxDepth {
		return "", nil, &entities.DepthError{Limit: e.maxDepth}
	}

	var warnings []entities.Warning
	var out strings.Builder
	runes := []rune(text)
	cursor := 0

	for _, d := range directives {
		path, ok := chunkPathFor(imports, d.Name)
		if !ok {
			return "", nil, &entities.UnknownPlaceholderError{Name: d.Name}
		}
		for _, s := range stack {
			if s == path {
				return "", nil, &entities.CycleError{Stack: append(append([]string{}, stack...), path)}
			}
		}

		merged, mergeWarnings, err := e.resolver.Resolve(ctx, path)
		if err != nil {
			return "", nil, err
		}
		if merged.Kind != entities.SourceKindChunk {
			return "", nil, &entities.SchemaViolationError{Detail: "chunk directive \"" + d.Name + "\" does not refer to a chunk source"}
		}
		warnings = append(warnings, mergeWarnings...)

		chunkText := bindChunkKeys(merged.TemplateText, merged.Defaults, d.Overrides)

		expanded, w, err := e.expand(ctx, chunkText, imports, depth+1, append(stack, path))
		if err != nil {
			return "", nil, err
		}
		warnings = append(warnings, w...)

		out.WriteString(string(runes[cursor:d.Start]))
		out.WriteString(expanded)
		cursor = d.Start + len([]rune(d.Raw))
	}
	out.WriteString(string(runes[cursor:]))

	return out.String(), warnings, nil
}

// chunkPathFor resolves a chunk directive's name to the source path its
// import entry points at. A path-list import uses its last entry, matching
// the later-overrides-earlier convention used elsewhere; a literal import
// cannot serve as a chunk source.
func chunkPathFor(imports map[string]entities.ImportRef, name string) (string, bool) {
	ref, ok := imports[name]
	if !ok {
		return "", false
	}
	switch ref.Kind {
	case entities.ImportRefPath, entities.ImportRefChunkPath:
		return ref.Path, true
	case entities.ImportRefPathList:
		if len(ref.Paths) == 0 {
			return "", false
		}
		return ref.Paths[len(ref.Paths)-1], true
	default:
		return "", false
	}
}

// bindChunkKeys replaces every `<key>` token in text with the effective
// binding for key: the chunk's own Defaults, overridden by the injection
// site's braced directive bindings.
func bindChunkKeys(text string, defaults, overrides map[string]string) string {
	if len(defaults) == 0 && len(overrides) == 0 {
		return text
	}
	effective := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		effective[k] = v
	}
	for k, v := range overrides {
		effective[k] = v
	}
	for k, v := range effective {
		text = strings.ReplaceAll(text, "<"+k+">", v)
	}
	return text
}
