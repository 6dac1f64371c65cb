package usecases

import (
	"context"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// LoadedSource is a Source decoded into its kind-specific config type (spec
// §4.1, stage 1). Exactly one of Template, Prompt, Chunk, Variations is
// non-nil, matching Kind.
type LoadedSource struct {
	Path string
	Kind entities.SourceKind

	Template   *entities.TemplateConfig
	Prompt     *entities.PromptConfig
	Chunk      *entities.ChunkConfig
	Variations *entities.VariationSet
}

// ParentPath returns the single-parent reference this source declares, or
// "" if it has none (spec §4.2).
func (l *LoadedSource) ParentPath() string {
	switch l.Kind {
	case entities.SourceKindTemplate:
		return l.Template.Parent
	case entities.SourceKindPrompt:
		return l.Prompt.Parent
	case entities.SourceKindChunk:
		return l.Chunk.Parent
	default:
		return ""
	}
}

// Imports returns the source's import map, or nil if its kind carries none.
func (l *LoadedSource) Imports() map[string]entities.ImportRef {
	switch l.Kind {
	case entities.SourceKindTemplate:
		return l.Template.Imports
	case entities.SourceKindPrompt:
		return l.Prompt.Imports
	case entities.SourceKindChunk:
		return l.Chunk.Imports
	default:
		return nil
	}
}

// Loader is stage 1 of the pipeline (spec §4.1): it reads a named source via
// a SourceReader and decodes its raw body into the concrete config type its
// kind implies.
type Loader struct {
	reader SourceReader
}

// NewLoader creates a Loader backed by reader.
func NewLoader(reader SourceReader) *Loader {
	return &Loader{reader: reader}
}

// Load reads and decodes the source at path.
func (l *Loader) Load(ctx context.Context, path string) (*LoadedSource, error) {
	src, err := l.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return l.Decode(src)
}

// Decode decodes an already-read Source into its kind-specific config.
// Exposed separately from Load so the import resolver (stage 4), which
// reads sources without necessarily following inheritance, can reuse it.
func (l *Loader) Decode(src *entities.Source) (*LoadedSource, error) {
	ls := &LoadedSource{Path: src.Path, Kind: src.Kind}

	switch src.Kind {
	case entities.SourceKindTemplate:
		cfg, err := decodeTemplateConfig(src)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, &entities.SchemaViolationError{Detail: err.Error()}
		}
		ls.Template = cfg

	case entities.SourceKindPrompt:
		cfg, err := decodePromptConfig(src)
		if err != nil {
			return nil, err
		}
		ls.Prompt = cfg

	case entities.SourceKindChunk:
		cfg, err := decodeChunkConfig(src)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, &entities.SchemaViolationError{Detail: err.Error()}
		}
		ls.Chunk = cfg

	case entities.SourceKindVariationSet:
		vs, err := decodeVariationSetSource(src)
		if err != nil {
			return nil, err
		}
		ls.Variations = vs

	default:
		// classify() (spec §4.1 rule 4) never fails outright — an
		// unrecognised type value or suffix just falls through to the
		// template default. This default case fires only for
		// SourceKindTheme: themes are loaded through ThemeStore, not
		// through this Loader, so a theme file reached as an inheritance
		// parent or import target is the one kind the Loader has no
		// decoder for.
		return nil, &entities.UnknownKindError{Path: src.Path}
	}

	return ls, nil
}
