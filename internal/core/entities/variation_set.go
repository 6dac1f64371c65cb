package entities

// PartMap is the set of named sub-fields of a single variation entry, e.g.
// {main: "blonde hair", lora: "<lora:blonde:0.8>"}. A simple string entry is
// normalised to PartMap{"main": value} at load time (spec §3).
type PartMap map[string]string

// MainPart is the reserved part name used when a placeholder reference
// carries no explicit :part selector.
const MainPart = "main"

// VariationEntry is one keyed value within a VariationSet, after
// normalisation to multi-part form.
type VariationEntry struct {
	Key   string
	Parts PartMap
}

// Part returns the named part's value and whether it exists.
func (e VariationEntry) Part(name string) (string, bool) {
	v, ok := e.Parts[name]
	return v, ok
}

// PartNames returns the entry's part names, for diagnostics on an unknown
// part request. Order is not significant (PartMap is unordered).
func (e VariationEntry) PartNames() []string {
	names := make([]string, 0, len(e.Parts))
	for k := range e.Parts {
		names = append(names, k)
	}
	return names
}

// VariationSet is an ordered map from variation key to its (normalised)
// part-map, as produced by the import resolver (spec §4.4). Insertion
// order is preserved for reproducible enumeration (spec §9).
type VariationSet struct {
	// Name is the placeholder name the set was built for; a set decoded
	// directly from a variations file carries that file's path instead.
	Name string

	// Entries preserves authoring order; Keys mirrors the key order for
	// fast positional/selector lookups.
	Entries map[string]VariationEntry
	Keys    []string
}

// NewVariationSet creates an empty, ordered variation set.
func NewVariationSet(name string) *VariationSet {
	return &VariationSet{
		Name:    name,
		Entries: make(map[string]VariationEntry),
	}
}

// Add appends a normalised entry, preserving insertion order. Re-adding an
// existing key overwrites its parts in place without disturbing order,
// matching the "later sources override earlier ones" merge rule (spec §4.4).
func (vs *VariationSet) Add(key string, parts PartMap) {
	if _, exists := vs.Entries[key]; !exists {
		vs.Keys = append(vs.Keys, key)
	}
	vs.Entries[key] = VariationEntry{Key: key, Parts: parts}
}

// Remove deletes a key, e.g. in response to a theme's [Remove] directive.
func (vs *VariationSet) Remove(key string) {
	if _, exists := vs.Entries[key]; !exists {
		return
	}
	delete(vs.Entries, key)
	for i, k := range vs.Keys {
		if k == key {
			vs.Keys = append(vs.Keys[:i], vs.Keys[i+1:]...)
			break
		}
	}
}

// Get retrieves an entry by key.
func (vs *VariationSet) Get(key string) (VariationEntry, bool) {
	e, ok := vs.Entries[key]
	return e, ok
}

// Len returns the number of entries.
func (vs *VariationSet) Len() int {
	return len(vs.Keys)
}

// OrderedEntries returns entries in insertion order.
func (vs *VariationSet) OrderedEntries() []VariationEntry {
	result := make([]VariationEntry, 0, len(vs.Keys))
	for _, k := range vs.Keys {
		result = append(result, vs.Entries[k])
	}
	return result
}

// normalisePartValue converts an authored YAML value (string leaf, or a
// mapping of part name to string) into a PartMap. A bare string becomes a
// single "main" part; anything else is rejected by the caller before this
// is invoked.
func normalisePartValue(value any) (PartMap, bool) {
	switch v := value.(type) {
	case string:
		return PartMap{MainPart: v}, true
	case map[string]string:
		out := make(PartMap, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, true
	case map[string]any:
		out := make(PartMap, len(v))
		for k, val := range v {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// BuildVariationSet normalises a raw authored mapping (key -> string, or
// key -> {part: string, ...}) into a VariationSet, preserving the order
// given by keyOrder. Mixing simple and multi-part entries within one file
// is permitted at authoring time (spec §3 invariant); every entry is
// normalised independently.
func BuildVariationSet(name string, keyOrder []string, raw map[string]any) (*VariationSet, bool) {
	vs := NewVariationSet(name)
	for _, key := range keyOrder {
		parts, ok := normalisePartValue(raw[key])
		if !ok {
			return nil, false
		}
		vs.Add(key, parts)
	}
	return vs, true
}
