package entities

import "strings"

// RemoveSentinel is the authored value that marks a placeholder's theme
// import as removed for a given style (spec §4.3 step 1).
const RemoveSentinel = "[Remove]"

// ThemeConfig is a replacement import map, optionally style-qualified
// (spec §3). Its Imports keys may be either a bare placeholder name N or a
// style-qualified "N.style" form.
type ThemeConfig struct {
	// Name identifies the theme (derived from its filename for implicit
	// discovery, or carried explicitly for an explicit theme file).
	Name string

	// Imports maps "N" or "N.style" to either an ImportRef or the
	// RemoveSentinel encoded as ImportRefLiteral{"__remove__": true} is
	// avoided in favor of a dedicated Removed set, below, since a removal
	// marker is not itself a valid import value.
	Imports map[string]ImportRef

	// Removed records keys (in "N" or "N.style" form) whose authored value
	// was the RemoveSentinel.
	Removed map[string]bool
}

// NewThemeConfig creates an empty theme configuration.
func NewThemeConfig(name string) *ThemeConfig {
	return &ThemeConfig{
		Name:    name,
		Imports: make(map[string]ImportRef),
		Removed: make(map[string]bool),
	}
}

// SplitThemeKey splits a theme import-map key into its placeholder name and
// optional style qualifier: "Jewelry.restricted" -> ("Jewelry", "restricted", true).
func SplitThemeKey(key string) (name, style string, qualified bool) {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[:idx], key[idx+1:], true
	}
	return key, "", false
}

// Resolve implements the per-placeholder style resolution of spec §4.3:
//  1. N.<style> present and == [Remove]        -> removed=true
//  2. N.<style> present and resolves to a path -> that ref
//  3. N (unqualified) present                  -> that ref
//  4. otherwise                                -> ok=false (caller falls
//     back to the pre-theme import for N, if any)
func (t *ThemeConfig) Resolve(name, style string) (ref ImportRef, removed bool, ok bool) {
	qualified := name + "." + style
	if t.Removed[qualified] {
		return ImportRef{}, true, true
	}
	if ref, exists := t.Imports[qualified]; exists {
		return ref, false, true
	}
	if t.Removed[name] {
		return ImportRef{}, true, true
	}
	if ref, exists := t.Imports[name]; exists {
		return ref, false, true
	}
	return ImportRef{}, false, false
}
