package usecases

import "github.com/madstone-tech/loko/internal/core/entities"

// ThemeOverlay is stage 3 of the pipeline (spec §4.3): given a merged
// config and an optional theme selection, it replaces the import map
// wholesale for every placeholder the theme covers.
type ThemeOverlay struct {
	themes ThemeLoader
}

// NewThemeOverlay creates a ThemeOverlay backed by themes.
func NewThemeOverlay(themes ThemeLoader) *ThemeOverlay {
	return &ThemeOverlay{themes: themes}
}

// Apply resolves themeName/themeFile (mutually exclusive; themeFile wins if
// both are given) against style and returns a new MergedConfig with its
// import map replaced per spec §4.3's per-placeholder resolution. If
// neither theme selector is set, merged is returned unchanged.
func (o *ThemeOverlay) Apply(merged *MergedConfig, themeName, themeFile, style string) (*MergedConfig, error) {
	if themeName == "" && themeFile == "" {
		return merged, nil
	}
	if style == "" {
		style = "default"
	}

	theme, err := o.load(themeName, themeFile)
	if err != nil {
		return nil, err
	}

	placeholders := collectThemedNames(merged, theme)

	newImports := make(map[string]entities.ImportRef, len(placeholders))
	removed := make(map[string]bool)

	for name := range placeholders {
		ref, isRemoved, ok := theme.Resolve(name, style)
		switch {
		case ok && isRemoved:
			removed[name] = true
		case ok:
			newImports[name] = ref
		default:
			if existing, has := merged.Imports[name]; has {
				newImports[name] = existing
			}
		}
	}

	result := *merged
	result.Imports = newImports
	result.Removed = removed
	return &result, nil
}

func (o *ThemeOverlay) load(themeName, themeFile string) (*entities.ThemeConfig, error) {
	if themeFile != "" {
		return o.themes.LoadExplicit(themeFile)
	}
	return o.themes.LoadImplicit(themeName)
}

// collectThemedNames is the union of placeholder names the merged config
// already imports and every placeholder the theme mentions (qualified or
// not), since a theme may introduce or remove a placeholder the base
// config never imported itself.
func collectThemedNames(merged *MergedConfig, theme *entities.ThemeConfig) map[string]bool {
	names := make(map[string]bool, len(merged.Imports))
	for name := range merged.Imports {
		names[name] = true
	}
	for key := range theme.Imports {
		name, _, _ := entities.SplitThemeKey(key)
		names[name] = true
	}
	for key := range theme.Removed {
		name, _, _ := entities.SplitThemeKey(key)
		names[name] = true
	}
	return names
}
