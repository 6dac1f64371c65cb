package encoding

import (
	"testing"
)

// Token Efficiency Benchmark: compares JSON vs TOON for a manifest snapshot
// shaped like the items a GenerationPlan would emit.

func BenchmarkTOONvsJSON(b *testing.B) {
	items := createTestItems(50)
	enc := NewEncoder()

	b.Run("JSON_Encoding", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = enc.EncodeJSON(items)
		}
	})

	b.Run("TOON_Encoding", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = enc.EncodeTOON(items)
		}
	})
}

func TestTokenEfficiencyMetrics(t *testing.T) {
	items := createTestItems(50)
	enc := NewEncoder()

	jsonData, _ := enc.EncodeJSON(items)
	toonData, _ := enc.EncodeTOON(items)

	jsonTokens := estimateTokenCount(string(jsonData))
	toonTokens := estimateTokenCount(string(toonData))

	savings := float64(jsonTokens-toonTokens) / float64(jsonTokens) * 100

	t.Logf("JSON tokens: %d", jsonTokens)
	t.Logf("TOON tokens: %d", toonTokens)
	t.Logf("Token savings: %.1f%%", savings)

	if savings < 5 {
		t.Errorf("expected >5%% token savings, got %.1f%%", savings)
	}
}

// Helper: estimate token count (4 chars ≈ 1 token on average)
func estimateTokenCount(s string) int {
	return (len(s) + 3) / 4
}

// Helper: create N snapshotFixture items resembling RenderedItem output.
func createTestItems(n int) []snapshotFixture {
	items := make([]snapshotFixture, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, snapshotFixture{
			Prompt:     "a studio portrait, soft lighting, variation " + string(rune('A'+(i%26))),
			Negative:   "blurry, low quality",
			Seed:       int64(1000 + i),
			Parameters: map[string]string{"steps": "20", "cfg_scale": "7"},
		})
	}
	return items
}
