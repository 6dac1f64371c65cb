package entities

// Render reconstructs the final prompt string from chunk-expanded template
// text and the variation choices applied to one emitted item, by
// substituting each `{Name}` / `{Name:part}` / `{Name[selector]}` reference
// with the text of the applied variation's relevant part (spec §8.4's
// round-trip property). imports supplies the variation sets the applied
// choices were drawn from, keyed by placeholder name.
//
// Render is a verification helper: the plan generator itself substitutes
// placeholders as it builds each RenderedItem, it does not call back
// through Render. Tests use Render to confirm that applying
// RenderedItem.Applied to the template reproduces RenderedItem.Prompt.
func Render(templateText string, applied map[string]AppliedVariation, imports map[string]*VariationSet) (string, error) {
	refs, err := ScanPlaceholders(templateText)
	if err != nil {
		return "", err
	}

	var out []byte
	cursor := 0
	runes := []rune(templateText)

	for _, ref := range refs {
		start := ref.Start
		end := start + len([]rune(ref.Raw))

		out = append(out, string(runes[cursor:start])...)

		value, err := substituteRef(ref, applied, imports)
		if err != nil {
			return "", err
		}
		out = append(out, value...)

		cursor = end
	}
	out = append(out, string(runes[cursor:])...)
	return string(out), nil
}

func substituteRef(ref PlaceholderRef, applied map[string]AppliedVariation, imports map[string]*VariationSet) (string, error) {
	av, ok := applied[ref.Name]
	if !ok {
		return "", &UnknownPlaceholderError{Name: ref.Name}
	}

	set, ok := imports[ref.Name]
	if !ok {
		return "", &UnknownPlaceholderError{Name: ref.Name}
	}

	entry, ok := set.Get(av.Key)
	if !ok {
		return "", &UnknownVariationKeyError{Name: ref.Name, Requested: av.Key, Available: set.Keys}
	}

	part := ref.Part
	if part == "" {
		part = av.Part
	}
	if part == "" {
		part = MainPart
	}

	value, ok := entry.Part(part)
	if !ok {
		return "", &UnknownPartError{Name: ref.Name, VariationKey: av.Key, Part: part, AvailableParts: entry.PartNames()}
	}
	return value, nil
}
