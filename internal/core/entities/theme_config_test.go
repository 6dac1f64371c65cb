package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitThemeKey(t *testing.T) {
	name, style, qualified := SplitThemeKey("Jewelry.restricted")
	assert.Equal(t, "Jewelry", name)
	assert.Equal(t, "restricted", style)
	assert.True(t, qualified)

	name, style, qualified = SplitThemeKey("Jewelry")
	assert.Equal(t, "Jewelry", name)
	assert.Empty(t, style)
	assert.False(t, qualified)
}

func TestThemeConfig_Resolve_QualifiedRemove(t *testing.T) {
	th := NewThemeConfig("noir")
	th.Removed["Jewelry.restricted"] = true
	th.Imports["Jewelry"] = ImportRef{Kind: ImportRefPath, Path: "imports/jewelry.yaml"}

	_, removed, ok := th.Resolve("Jewelry", "restricted")
	assert.True(t, ok)
	assert.True(t, removed)
}

func TestThemeConfig_Resolve_QualifiedRef(t *testing.T) {
	th := NewThemeConfig("noir")
	th.Imports["Jewelry.restricted"] = ImportRef{Kind: ImportRefPath, Path: "imports/restricted-jewelry.yaml"}

	ref, removed, ok := th.Resolve("Jewelry", "restricted")
	assert.True(t, ok)
	assert.False(t, removed)
	assert.Equal(t, "imports/restricted-jewelry.yaml", ref.Path)
}

func TestThemeConfig_Resolve_UnqualifiedFallback(t *testing.T) {
	th := NewThemeConfig("noir")
	th.Imports["Jewelry"] = ImportRef{Kind: ImportRefPath, Path: "imports/jewelry.yaml"}

	ref, removed, ok := th.Resolve("Jewelry", "restricted")
	assert.True(t, ok)
	assert.False(t, removed)
	assert.Equal(t, "imports/jewelry.yaml", ref.Path)
}

func TestThemeConfig_Resolve_NotFound(t *testing.T) {
	th := NewThemeConfig("noir")
	_, removed, ok := th.Resolve("Ghost", "restricted")
	assert.False(t, ok)
	assert.False(t, removed)
}

func TestThemeConfig_Resolve_UnqualifiedRemove(t *testing.T) {
	th := NewThemeConfig("noir")
	th.Removed["Jewelry"] = true

	_, removed, ok := th.Resolve("Jewelry", "default")
	assert.True(t, ok)
	assert.True(t, removed)
}
