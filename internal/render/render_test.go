package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

func pct(v float64) *float64 { return &v }

func sampleDeck() deck.Deck {
	return deck.Deck{
		ID:        "01J0000000000000000000000",
		Topic:     "Paris Olympics",
		CreatedAt: time.Date(2024, 8, 12, 10, 0, 0, 0, time.UTC),
		Slides: []deck.SlideSpec{
			{Ordinal: 1, Kind: deck.KindTitle, Title: "Paris Olympics", Payload: deck.TitlePayload{Topic: "Paris Olympics", Subtitle: "Research-Enhanced Presentation"}},
			{Ordinal: 2, Kind: deck.KindKeyFindings, Title: "Key Research Findings", Payload: deck.BulletsPayload{Items: []deck.Bullet{{Text: "USA: 126 total medals"}}}},
			{Ordinal: 3, Kind: deck.KindPie, Title: "Medal Breakdown", Payload: deck.ChartPayload{Spec: deck.VisualizationSpec{
				Type: deck.VizPie, Title: "Medal Breakdown",
				Series: []deck.Point{{Label: "Gold", Value: 40, Percent: pct(31.7)}},
			}}},
			{Ordinal: 4, Kind: deck.KindTable, Title: "Key Figures", Payload: deck.ChartPayload{Spec: deck.VisualizationSpec{
				Type: deck.VizTable, Title: "Key Figures",
				Series: []deck.Point{{Label: "Athletes", Value: 10500}},
			}}},
			{Ordinal: 5, Kind: deck.KindContent, Title: "Paris Olympics - Point 1", Placeholder: true, Payload: deck.BulletsPayload{Items: []deck.Bullet{
				{Text: "Key concept 5 related to Paris Olympics"},
				{Text: "Supporting detail 1 for concept 5", Level: 1},
			}}},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleDeck())

	for _, want := range []string{
		"# Paris Olympics\n",
		"## 1. Paris Olympics\n\n_Generated on August 12, 2024 | Research-Enhanced Presentation_\n",
		"## 2. Key Research Findings\n\n- USA: 126 total medals\n",
		"| Gold | 40 | 31.7% |\n",
		"| Athletes | 10,500 |\n",
		"- Key concept 5 related to Paris Olympics\n  - Supporting detail 1 for concept 5\n",
	} {
		assert.Contains(t, md, want)
	}
}

func TestMarkdownEmptyFindings(t *testing.T) {
	d := deck.Deck{Topic: "t", Slides: []deck.SlideSpec{
		{Ordinal: 1, Kind: deck.KindKeyFindings, Title: "Key Research Findings", Payload: deck.BulletsPayload{}},
	}}
	assert.Contains(t, Markdown(d), "_No findings available._")
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleDeck())
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Paris Olympics</title>")
	assert.Contains(t, html, "<h2>2. Key Research Findings</h2>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Athletes</td>")
}

func TestJSON(t *testing.T) {
	d := sampleDeck()
	out, err := Render(d, FormatJSON)
	require.NoError(t, err)

	var got deck.Deck
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, d.Kinds(), got.Kinds())
	assert.Contains(t, string(out), `"kind": "pie"`)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"md": FormatMarkdown, "Markdown": FormatMarkdown, "HTML": FormatHTML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pptx")
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 8, 12, 9, 5, 3, 0, time.UTC)

	assert.Equal(t, "Paris_Olympics_2024_20240812_090503.md", FileName("Paris Olympics 2024", at, FormatMarkdown))
	assert.Equal(t, "AI___ML_20240812_090503.json", FileName("AI & ML", at, FormatJSON))
	assert.Equal(t, "presentation_20240812_090503.html", FileName("   ", at, FormatHTML))

	long := FileName(strings.Repeat("a", 80), at, FormatMarkdown)
	assert.Equal(t, strings.Repeat("a", 50)+"_20240812_090503.md", long)
}

func TestTitleSubtitle(t *testing.T) {
	stamped := time.Date(2024, 8, 2, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "Generated on August 02, 2024", subtitle(stamped, ""))
	assert.Equal(t, "Generated on August 02, 2024 | Research-Enhanced Presentation",
		subtitle(stamped, "Research-Enhanced Presentation"))
	assert.Equal(t, "Research-Enhanced Presentation", subtitle(time.Time{}, "Research-Enhanced Presentation"))
	assert.Empty(t, subtitle(time.Time{}, ""))
}
