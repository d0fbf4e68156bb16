package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeNoData(t *testing.T) {
	n := NewNormalizer()

	assert.True(t, n.Normalize(NewResearchDocument("x", nil)).NoData, "nil research")
	assert.True(t, n.Normalize(NewResearchDocument("x", strPtr(""))).NoData, "empty research")
	assert.True(t, n.Normalize(NewResearchDocument("x", strPtr(" \n\t "))).NoData, "blank research")
}

func TestNormalizeViews(t *testing.T) {
	raw := "USA:   126 total medals\n10,500 athletes from 206 countries\n40 gold, 44 silver, 42 bronze"
	got := NewNormalizer().Normalize(NewResearchDocument("Olympics", &raw))

	require.False(t, got.NoData)
	assert.Equal(t, []string{
		"USA: 126 total medals",
		"10,500 athletes from 206 countries",
		"40 gold, 44 silver, 42 bronze",
	}, got.Display())
	assert.Equal(t, []string{
		"USA: 126 total medals",
		"10500 athletes from 206 countries",
		"40 gold, 44 silver, 42 bronze",
	}, got.Numeric())
}

func TestNormalizeSections(t *testing.T) {
	raw := `# Research on Solar Power

**Key Findings:**
- China: 609 gigawatts
- **United States**: 179 gigawatts

**Visual Suggestions:**
- Bar chart: 3 bars comparing countries

**Sources:**
- https://example.com/report
- Energy Agency: 2024 report
`
	got := NewNormalizer().Normalize(NewResearchDocument("Solar", &raw))

	assert.Equal(t, []string{"China: 609 gigawatts", "United States: 179 gigawatts"}, got.Display())
	for _, l := range got.Lines {
		assert.Equal(t, SectionKeyFindings, l.Section)
	}
}

func TestNormalizeKeepsPreamble(t *testing.T) {
	raw := "Intro line with [a link](https://example.com) inside.\n\nKey Findings: Berlin: 12 venues"
	got := NewNormalizer().Normalize(NewResearchDocument("x", &raw))

	assert.Equal(t, []string{"Intro line with a link inside.", "Berlin: 12 venues"}, got.Display())
	require.Len(t, got.Lines, 2)
	assert.Equal(t, SectionPreamble, got.Lines[0].Section)
	assert.Equal(t, SectionKeyFindings, got.Lines[1].Section)
}

func TestStripThousands(t *testing.T) {
	tests := map[string]string{
		"10,500 athletes":     "10500 athletes",
		"1,234,567 visitors":  "1234567 visitors",
		"40 gold, 44 silver":  "40 gold, 44 silver",
		"values 1,23 and 4,5": "values 1,23 and 4,5",
		"no numbers here":     "no numbers here",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripThousands(in), in)
	}
}

func TestResearchDocumentCopiesText(t *testing.T) {
	raw := "original"
	doc := NewResearchDocument("  Topic  ", &raw)
	raw = "changed"

	text, ok := doc.Text()
	assert.True(t, ok)
	assert.Equal(t, "original", text)
	assert.Equal(t, "Topic", doc.Topic)
}
