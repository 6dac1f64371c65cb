package entities

// ImportRefKind distinguishes the four shapes an import-map value may take
// (spec §4.4 step 1).
type ImportRefKind string

const (
	ImportRefPath      ImportRefKind = "path"       // single source path
	ImportRefPathList  ImportRefKind = "path-list"  // list of paths to merge
	ImportRefLiteral   ImportRefKind = "literal"    // inline variation set
	ImportRefChunkPath ImportRefKind = "chunk-path"  // path to a chunk source
)

// ImportRef is the value side of an import-map entry: config.Imports[N].
type ImportRef struct {
	Kind ImportRefKind

	// Path is populated for ImportRefPath and ImportRefChunkPath.
	Path string

	// Paths is populated for ImportRefPathList, in merge order (later
	// entries override earlier ones on key collision).
	Paths []string

	// Literal is populated for ImportRefLiteral: the raw authored mapping,
	// normalised by BuildVariationSet at resolution time.
	Literal map[string]any
	// LiteralOrder preserves the authoring order of Literal's keys.
	LiteralOrder []string
}
