package entities

// SourceKind is the closed tagged variant a loaded Source is classified
// into (spec §4.1). Every stage that branches on kind does so with an
// exhaustive switch; there is no dynamic dispatch on kind beyond that.
type SourceKind string

const (
	SourceKindTemplate     SourceKind = "template"
	SourceKindPrompt       SourceKind = "prompt"
	SourceKindChunk        SourceKind = "chunk"
	SourceKindVariationSet SourceKind = "variation-set"
	SourceKindTheme        SourceKind = "theme"
)

// IsValid reports whether k is one of the five known kinds.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindTemplate, SourceKindPrompt, SourceKindChunk, SourceKindVariationSet, SourceKindTheme:
		return true
	default:
		return false
	}
}

// Source is a named, loaded document: the output of the loader (spec §4.1).
// Raw is the parsed-but-untyped document (a YAML mapping decoded to
// map[string]any); each later stage decodes Raw into the concrete config
// type its kind implies.
type Source struct {
	// Path is the canonicalized origin path, used as the cache key and as
	// the cycle-detection stack entry.
	Path string

	// Kind is the classification determined by the loader.
	Kind SourceKind

	// Raw holds the parsed document body prior to kind-specific decoding.
	Raw map[string]any

	// Order preserves the top-level key order as authored, lost by Raw's
	// plain map[string]any. Variation-set resolution depends on it for
	// positional selectors and reproducible enumeration (spec §4.5.3,
	// §4.5.4, §9); other kinds may ignore it.
	Order []string
}
