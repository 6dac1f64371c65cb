package entities

import "strings"

// PlaceholderRef is one `{Name}`, `{Name:part}` or `{Name[selector]}`
// reference found in a template's text (spec §3, §4.5). Part and Selector
// are mutually exclusive; a reference carrying both is a SelectorSyntaxError.
type PlaceholderRef struct {
	// Name is the placeholder's import name.
	Name string

	// Part is the explicit part requested via {Name:part}, or "" if absent
	// (in which case the template resolver substitutes the "main" part).
	Part string

	// Selector is the parsed bracket modifier from {Name[selector]}, or nil
	// if the reference carries none.
	Selector *Selector

	// Raw is the exact matched text, e.g. "{Jewelry[random:2]}", used by the
	// substitution pass to replace this occurrence in place.
	Raw string

	// Start is the rune offset of the opening '{' in the scanned text, used
	// to preserve first-occurrence order when references repeat.
	Start int
}

// ScanPlaceholders walks text and returns every placeholder reference it
// contains, in the order they occur. It is a hand-written scanner rather
// than a regular expression, since references nest optional `:part` and
// `[selector]` modifiers that a single regex cascade handles poorly.
func ScanPlaceholders(text string) ([]PlaceholderRef, error) {
	var refs []PlaceholderRef

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if runes[i] != '{' {
			i++
			continue
		}
		start := i
		end := indexRune(runes, '}', i+1)
		if end < 0 {
			// Unmatched '{' is not a placeholder; stop scanning for one here
			// and resume past it so plain text containing a stray brace
			// (e.g. in a negative prompt) doesn't abort the whole template.
			i++
			continue
		}
		inner := string(runes[i+1 : end])
		raw := string(runes[start : end+1])

		ref, ok, err := parsePlaceholderInner(inner)
		if err != nil {
			return nil, err
		}
		if ok {
			ref.Raw = raw
			ref.Start = start
			refs = append(refs, ref)
		}
		i = end + 1
	}
	return refs, nil
}

func indexRune(runes []rune, target rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// parsePlaceholderInner parses the content between '{' and '}'. ok is false
// for content that is not a well-formed placeholder body at all (e.g. it is
// empty or starts with whitespace), which the caller treats as plain text
// rather than an error.
func parsePlaceholderInner(inner string) (PlaceholderRef, bool, error) {
	if inner == "" {
		return PlaceholderRef{}, false, nil
	}
	if !isNameStart(rune(inner[0])) {
		return PlaceholderRef{}, false, nil
	}

	bracket := strings.IndexByte(inner, '[')
	colon := strings.IndexByte(inner, ':')

	switch {
	// A colon only signals a competing ":part" modifier when it occurs
	// before the bracket opens; a colon at or past the bracket (e.g. the
	// "random:1" inside "H[random:1]") is part of the selector grammar and
	// is handled by ParseSelector in the bracket case below.
	case bracket >= 0 && colon >= 0 && colon < bracket:
		return PlaceholderRef{}, false, &SelectorSyntaxError{Fragment: inner}

	case bracket >= 0:
		if !strings.HasSuffix(inner, "]") {
			return PlaceholderRef{}, false, &SelectorSyntaxError{Fragment: inner}
		}
		name := inner[:bracket]
		if !isValidName(name) {
			return PlaceholderRef{}, false, nil
		}
		sel, err := ParseSelector(inner[bracket+1 : len(inner)-1])
		if err != nil {
			return PlaceholderRef{}, false, err
		}
		return PlaceholderRef{Name: name, Selector: sel}, true, nil

	case colon >= 0:
		name := inner[:colon]
		part := inner[colon+1:]
		if !isValidName(name) || part == "" {
			return PlaceholderRef{}, false, nil
		}
		return PlaceholderRef{Name: name, Part: part}, true, nil

	default:
		if !isValidName(inner) {
			return PlaceholderRef{}, false, nil
		}
		return PlaceholderRef{Name: inner}, true, nil
	}
}

func isNameStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_'
}

func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNameStart(r) {
				return false
			}
			continue
		}
		if !(isNameStart(r) || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
