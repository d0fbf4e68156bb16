// Package viz turns ranked entries into VisualizationSpecs.
package viz

import (
	"math"

	"github.com/cognicore/deckgen/pkg/deckgen/classify"
	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/extract"
	"github.com/cognicore/deckgen/pkg/deckgen/rank"
)

const (
	defaultBarTitle   = "Key Comparisons"
	defaultPieTitle   = "Breakdown"
	defaultTableTitle = "Key Figures"
)

// Builder applies the threshold policy and produces specs in the fixed
// order bar, pie, table.
type Builder struct {
	policy       classify.Policy
	familyTitles map[string]string
}

// NewBuilder creates a builder. familyTitles maps distribution family names
// to pie chart titles.
func NewBuilder(p classify.Policy, familyTitles map[string]string) *Builder {
	titles := make(map[string]string, len(familyTitles))
	for k, v := range familyTitles {
		titles[k] = v
	}
	return &Builder{policy: p, familyTitles: titles}
}

// Result lists the emitted specs and the chart types rejected by the policy.
type Result struct {
	Specs    []deck.VisualizationSpec
	Rejected []deck.VizType
}

// Build emits at most one spec per chart type.
func (b *Builder) Build(r rank.Ranked) Result {
	var res Result

	if len(r.Bar) > 0 {
		if b.policy.Allows(deck.VizBar, len(r.Bar)) {
			res.Specs = append(res.Specs, barSpec(r))
		} else {
			res.Rejected = append(res.Rejected, deck.VizBar)
		}
	}

	if len(r.Pie) > 0 {
		spec, ok := b.pieSpec(r)
		if ok && b.policy.Allows(deck.VizPie, len(spec.Series)) {
			res.Specs = append(res.Specs, spec)
		} else {
			res.Rejected = append(res.Rejected, deck.VizPie)
		}
	}

	if len(r.Table) > 0 {
		if b.policy.Allows(deck.VizTable, len(r.Table)) {
			res.Specs = append(res.Specs, tableSpec(r))
		} else {
			res.Rejected = append(res.Rejected, deck.VizTable)
		}
	}

	return res
}

func barSpec(r rank.Ranked) deck.VisualizationSpec {
	title := defaultBarTitle
	if r.BarQualifier != "" {
		title = extract.Title(r.BarQualifier)
	}
	spec := deck.VisualizationSpec{Type: deck.VizBar, Title: title}
	for _, e := range r.Bar {
		if len(spec.Series) == deck.MaxSeries {
			break
		}
		spec.Series = append(spec.Series, deck.Point{Label: e.Label, Value: e.Value})
	}
	return spec
}

// pieSpec computes one-decimal percentages. A distribution whose values sum
// to zero has no meaningful shares and is not charted.
func (b *Builder) pieSpec(r rank.Ranked) (deck.VisualizationSpec, bool) {
	title := b.familyTitles[r.PieFamily]
	if title == "" {
		title = defaultPieTitle
		if r.PieFamily != "" {
			title = extract.Title(r.PieFamily) + " " + defaultPieTitle
		}
	}

	entries := r.Pie
	if len(entries) > deck.MaxSeries {
		entries = entries[:deck.MaxSeries]
	}

	// Summed in float64: values near MaxInt64 would wrap an integer total.
	var total float64
	for _, e := range entries {
		if e.Value < 0 {
			return deck.VisualizationSpec{}, false
		}
		total += float64(e.Value)
	}
	if total == 0 {
		return deck.VisualizationSpec{}, false
	}

	spec := deck.VisualizationSpec{Type: deck.VizPie, Title: title}
	for _, e := range entries {
		pct := Round1(float64(e.Value) * 100 / total)
		spec.Series = append(spec.Series, deck.Point{Label: e.Label, Value: e.Value, Percent: &pct})
	}
	return spec, true
}

func tableSpec(r rank.Ranked) deck.VisualizationSpec {
	spec := deck.VisualizationSpec{Type: deck.VizTable, Title: defaultTableTitle}
	for _, e := range r.Table {
		spec.Series = append(spec.Series, deck.Point{Label: e.Label, Value: e.Value})
	}
	return spec
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
