package usecases

import (
	"context"
	"sort"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// ImportResolver is stage 4 of the pipeline (spec §4.4): given a merged
// config's import map and the placeholder names a (chunk-expanded) template
// actually references, it loads every referenced source into a normalised
// *entities.VariationSet and records where each came from.
type ImportResolver struct {
	loader   *Loader
	maxDepth int
}

// NewImportResolver creates a resolver that follows chunk-of-variation-set
// nesting up to maxDepth levels (defaulting to 5, spec §4.4: "at least 5").
func NewImportResolver(loader *Loader, maxDepth int) *ImportResolver {
	if maxDepth <= 0 {
		maxDepth = 5
	}
	return &ImportResolver{loader: loader, maxDepth: maxDepth}
}

// Resolve builds a ResolvedContext covering every name in names, resolving
// each against imports. Names already present in removed are carried into
// the context's Removed set and otherwise skipped (spec §4.3 step 1).
func (r *ImportResolver) Resolve(ctx context.Context, style string, imports map[string]entities.ImportRef, removed map[string]bool, names []string) (*entities.ResolvedContext, []entities.Warning, error) {
	rc := entities.NewResolvedContext(style)
	var warnings []entities.Warning

	for name := range removed {
		rc.Removed[name] = true
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] || rc.Removed[name] {
			continue
		}
		seen[name] = true

		ref, ok := imports[name]
		if !ok {
			return nil, nil, &entities.UnknownPlaceholderError{Name: name}
		}

		vs, source, w, err := r.resolveRef(ctx, name, ref, nil)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)

		rc.Imports[name] = vs
		rc.Provenance[name] = source
	}

	for name := range imports {
		if !seen[name] && !rc.Removed[name] {
			warnings = append(warnings, entities.Warning{
				Kind:    entities.WarningUnusedImport,
				Message: "import \"" + name + "\" is declared but never referenced",
				Source:  name,
			})
		}
	}

	return rc, warnings, nil
}

// resolveRef resolves a single import-map entry into a normalised variation
// set, following chunk-path indirection and detecting cycles via stack.
func (r *ImportResolver) resolveRef(ctx context.Context, name string, ref entities.ImportRef, stack []string) (*entities.VariationSet, string, []entities.Warning, error) {
	switch ref.Kind {
	case entities.ImportRefLiteral:
		order := ref.LiteralOrder
		if len(order) == 0 {
			order = sortedAnyKeys(ref.Literal)
		}
		vs, ok := entities.BuildVariationSet(name, order, ref.Literal)
		if !ok {
			return nil, "", nil, &entities.SchemaViolationError{Detail: "literal import for \"" + name + "\" is malformed"}
		}
		return vs, "<literal>", nil, nil

	case entities.ImportRefPath, entities.ImportRefChunkPath:
		return r.resolvePath(ctx, name, ref.Path, stack)

	case entities.ImportRefPathList:
		return r.resolvePathList(ctx, name, ref.Paths, stack)

	default:
		return nil, "", nil, &entities.SchemaViolationError{Detail: "unknown import kind for \"" + name + "\""}
	}
}

// resolvePath loads path, and, if it turns out to be a chunk, recurses into
// the chunk's own import map looking for an entry with the same name (spec
// §4.4 step 3: "attach the chunk's template as an expansion target" is
// handled by the chunk expander; here we only need its variation data, if
// it re-exports one under the same placeholder name).
func (r *ImportResolver) resolvePath(ctx context.Context, name, path string, stack []string) (*entities.VariationSet, string, []entities.Warning, error) {
	for _, s := range stack {
		if s == path {
			return nil, "", nil, &entities.CycleError{Stack: append(append([]string{}, stack...), path)}
		}
	}
	if len(stack) >= r.maxDepth {
		return nil, "", nil, &entities.DepthError{Limit: r.maxDepth}
	}
	nextStack := append(append([]string{}, stack...), path)

	ls, err := r.loader.Load(ctx, path)
	if err != nil {
		return nil, "", nil, err
	}

	switch ls.Kind {
	case entities.SourceKindVariationSet:
		return ls.Variations, path, nil, nil

	case entities.SourceKindChunk:
		inner, ok := ls.Chunk.Imports[name]
		if !ok {
			return nil, "", nil, &entities.SchemaViolationError{
				Detail: "chunk \"" + path + "\" does not re-export an import named \"" + name + "\"",
			}
		}
		vs, source, w, err := r.resolveRef(ctx, name, inner, nextStack)
		return vs, source, w, err

	default:
		return nil, "", nil, &entities.SchemaViolationError{Detail: "source \"" + path + "\" is not usable as a variation import"}
	}
}

// resolvePathList merges a list of path imports in order, later paths
// overriding earlier ones key-for-key (spec §4.4: "list of paths to merge").
func (r *ImportResolver) resolvePathList(ctx context.Context, name string, paths []string, stack []string) (*entities.VariationSet, string, []entities.Warning, error) {
	merged := entities.NewVariationSet(name)
	var warnings []entities.Warning
	var lastSource string

	for _, path := range paths {
		vs, source, w, err := r.resolvePath(ctx, name, path, stack)
		if err != nil {
			return nil, "", nil, err
		}
		warnings = append(warnings, w...)
		lastSource = source
		for _, key := range vs.Keys {
			entry, _ := vs.Get(key)
			merged.Add(key, entry.Parts)
		}
	}

	return merged, lastSource, warnings, nil
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
