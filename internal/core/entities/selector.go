package entities

import (
	"strconv"
	"strings"
)

// SelectorKind is the tag of the Selector sum type (spec §4.5.3, §9):
// All | Random(n) | Indices([i]) | Keys([s]) | Weight(w) | Combo([Selector]).
type SelectorKind string

const (
	SelectorKindRandom  SelectorKind = "random"
	SelectorKindIndices SelectorKind = "indices"
	SelectorKindKeys    SelectorKind = "keys"
	SelectorKindWeight  SelectorKind = "weight"
	SelectorKindCombo   SelectorKind = "combo"
)

// Selector is the parsed bracketed modifier on a placeholder reference.
// A bare `{Name[$5]}` parses to Weight(5); a compound `{Name[random:10;$5]}`
// parses to Combo([Random(10), Weight(5)]).
type Selector struct {
	Kind SelectorKind

	// N is populated for SelectorKindRandom.
	N int

	// Indices is populated for SelectorKindIndices (the #i,j,k form).
	Indices []int

	// Keys is populated for SelectorKindKeys (the key1,key2,... form).
	Keys []string

	// Weight is populated for SelectorKindWeight.
	Weight int

	// Parts is populated for SelectorKindCombo, one element per ';'-joined
	// fragment, in the order written.
	Parts []Selector
}

// HasExplicitWeight reports whether the selector (or one of its combo
// parts) carries a $W fragment, and returns it.
func (s *Selector) HasExplicitWeight() (int, bool) {
	if s == nil {
		return 0, false
	}
	if s.Kind == SelectorKindWeight {
		return s.Weight, true
	}
	if s.Kind == SelectorKindCombo {
		for i := range s.Parts {
			if w, ok := s.Parts[i].HasExplicitWeight(); ok {
				return w, true
			}
		}
	}
	return 0, false
}

// SelectionPart returns the non-weight selection fragment (Random, Indices
// or Keys), if any, ignoring a combined $W. Returns nil if the selector
// carries only a weight (or is nil), meaning "all variations, in authored
// order" is the selection.
func (s *Selector) SelectionPart() *Selector {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case SelectorKindRandom, SelectorKindIndices, SelectorKindKeys:
		return s
	case SelectorKindCombo:
		for i := range s.Parts {
			p := &s.Parts[i]
			if p.Kind != SelectorKindWeight {
				return p
			}
		}
	}
	return nil
}

// ParseSelector parses the bracket content of a {Name[...]} reference into
// a Selector. Fragments are split on ';' at the top level; each fragment is
// one of: "random:N", "#i,j,k", "key1,key2,...", "$W". An empty fragment,
// or a fragment that is neither a valid integer list, weight, nor key list,
// is a SelectorSyntaxError.
func ParseSelector(raw string) (*Selector, error) {
	fragments := splitTop(raw, ';')
	if len(fragments) == 0 {
		return nil, &SelectorSyntaxError{Fragment: raw}
	}

	parts := make([]Selector, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, &SelectorSyntaxError{Fragment: raw}
		}
		sel, err := parseFragment(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, *sel)
	}

	if len(parts) == 1 {
		return &parts[0], nil
	}
	return &Selector{Kind: SelectorKindCombo, Parts: parts}, nil
}

func parseFragment(f string) (*Selector, error) {
	switch {
	case strings.HasPrefix(f, "random:"):
		n, err := strconv.Atoi(strings.TrimSpace(f[len("random:"):]))
		if err != nil || n < 0 {
			return nil, &SelectorSyntaxError{Fragment: f}
		}
		return &Selector{Kind: SelectorKindRandom, N: n}, nil

	case strings.HasPrefix(f, "$"):
		w, err := strconv.Atoi(strings.TrimSpace(f[1:]))
		if err != nil || w < 0 {
			return nil, &SelectorSyntaxError{Fragment: f}
		}
		return &Selector{Kind: SelectorKindWeight, Weight: w}, nil

	case strings.HasPrefix(f, "#"):
		items := splitTop(f[1:], ',')
		indices := make([]int, 0, len(items))
		for _, it := range items {
			it = strings.TrimSpace(it)
			idx, err := strconv.Atoi(it)
			if err != nil || idx < 0 {
				return nil, &SelectorSyntaxError{Fragment: f}
			}
			indices = append(indices, idx)
		}
		if len(indices) == 0 {
			return nil, &SelectorSyntaxError{Fragment: f}
		}
		return &Selector{Kind: SelectorKindIndices, Indices: indices}, nil

	default:
		items := splitTop(f, ',')
		keys := make([]string, 0, len(items))
		for _, it := range items {
			it = strings.TrimSpace(it)
			if it == "" {
				return nil, &SelectorSyntaxError{Fragment: f}
			}
			keys = append(keys, it)
		}
		if len(keys) == 0 {
			return nil, &SelectorSyntaxError{Fragment: f}
		}
		return &Selector{Kind: SelectorKindKeys, Keys: keys}, nil
	}
}

// splitTop splits s on sep, trimming nothing else; unlike strings.Split it
// returns nil (not [""]) for an empty input, which ParseSelector treats as
// a syntax error rather than a single empty fragment.
func splitTop(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
