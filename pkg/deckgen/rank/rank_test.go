package rank

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/deckgen/pkg/deckgen/classify"
	"github.com/cognicore/deckgen/pkg/deckgen/extract"
)

func comparison(seq int, label string, v int64, qualifier string) extract.Fact {
	return extract.Fact{
		Kind:      extract.Comparison,
		Qualifier: qualifier,
		Entities:  []extract.Entity{{Label: label, Value: v}},
		Seq:       seq,
	}
}

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func TestRankComparisons(t *testing.T) {
	routed := classify.Routed{Bar: []extract.Fact{
		comparison(0, "China", 91, "total medals"),
		comparison(1, "USA", 126, "total medals"),
		comparison(2, "Japan", 45, "gold medals"),
		comparison(3, "usa", 130, ""),
		comparison(4, "France", 45, "total medals"),
	}}
	got := NewRanker(DefaultLimits()).Rank(routed)

	want := []Entry{
		{Label: "USA", Value: 130, Seq: 1},
		{Label: "China", Value: 91, Seq: 0},
		{Label: "Japan", Value: 45, Seq: 2},
		{Label: "France", Value: 45, Seq: 4},
	}
	if diff := cmp.Diff(want, got.Bar); diff != "" {
		t.Errorf("bar entries (-want +got):\n%s", diff)
	}
	if got.BarQualifier != "total medals" {
		t.Errorf("BarQualifier = %q", got.BarQualifier)
	}
	if got.Stats.DedupDrops != 1 {
		t.Errorf("DedupDrops = %d, want 1", got.Stats.DedupDrops)
	}
}

func TestRankTruncatesBar(t *testing.T) {
	var facts []extract.Fact
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for i, n := range names {
		facts = append(facts, comparison(i, n, int64(i+1), ""))
	}
	got := NewRanker(DefaultLimits()).Rank(classify.Routed{Bar: facts})

	if len(got.Bar) != 8 {
		t.Fatalf("len(Bar) = %d, want 8", len(got.Bar))
	}
	if got.Bar[0].Label != "J" || got.Bar[7].Label != "C" {
		t.Errorf("unexpected order: %v", labels(got.Bar))
	}
	if got.Stats.Truncated != 2 {
		t.Errorf("Truncated = %d, want 2", got.Stats.Truncated)
	}
}

func TestRankDistribution(t *testing.T) {
	routed := classify.Routed{Pie: []extract.Fact{
		{Kind: extract.Distribution, Family: "medals", Seq: 0, Entities: []extract.Entity{{Label: "Gold", Value: 40}, {Label: "Silver", Value: 44}}},
		{Kind: extract.Distribution, Family: "sentiment", Seq: 1, Entities: []extract.Entity{{Label: "Positive", Value: 60}}},
		{Kind: extract.Distribution, Family: "medals", Seq: 2, Entities: []extract.Entity{{Label: "Bronze", Value: 42}, {Label: "Gold", Value: 39}}},
	}}
	got := NewRanker(DefaultLimits()).Rank(routed)

	want := []Entry{
		{Label: "Gold", Value: 39, Seq: 0},
		{Label: "Silver", Value: 44, Seq: 0},
		{Label: "Bronze", Value: 42, Seq: 2},
	}
	if diff := cmp.Diff(want, got.Pie); diff != "" {
		t.Errorf("pie entries (-want +got):\n%s", diff)
	}
	if got.PieFamily != "medals" {
		t.Errorf("PieFamily = %q", got.PieFamily)
	}
	if got.Stats.FamilyDrops != 1 || got.Stats.DedupDrops != 1 {
		t.Errorf("Stats = %+v", got.Stats)
	}
}

func TestRankSummaries(t *testing.T) {
	var facts []extract.Fact
	units := []string{"Athletes", "Countries", "Athletes", "Sports", "Venues", "Events", "Teams", "Nations", "Cities"}
	for i, u := range units {
		facts = append(facts, extract.Fact{Kind: extract.Summary, Seq: i, Entities: []extract.Entity{{Label: u, Value: int64(100 + i)}}})
	}
	got := NewRanker(DefaultLimits()).Rank(classify.Routed{Table: facts})

	if diff := cmp.Diff([]string{"Athletes", "Countries", "Sports", "Venues", "Events", "Teams"}, labels(got.Table)); diff != "" {
		t.Errorf("table labels (-want +got):\n%s", diff)
	}
	if got.Table[0].Value != 100 {
		t.Errorf("first occurrence should win, got %d", got.Table[0].Value)
	}
	if got.Stats.DedupDrops != 1 || got.Stats.Truncated != 2 {
		t.Errorf("Stats = %+v", got.Stats)
	}
}

func TestRankIsDeterministic(t *testing.T) {
	routed := classify.Routed{Bar: []extract.Fact{
		comparison(0, "A", 5, ""), comparison(1, "B", 5, ""), comparison(2, "C", 7, ""),
	}}
	r := NewRanker(DefaultLimits())
	first := r.Rank(routed)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, r.Rank(routed)); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
}

func TestRankDistributionSkipsSingleCategoryFamily(t *testing.T) {
	routed := classify.Routed{Pie: []extract.Fact{
		{Kind: extract.Distribution, Family: "medals", Seq: 0, Entities: []extract.Entity{{Label: "Gold", Value: 1}}},
		{Kind: extract.Distribution, Family: "sentiment", Seq: 1, Entities: []extract.Entity{
			{Label: "Positive", Value: 60}, {Label: "Neutral", Value: 25}, {Label: "Negative", Value: 15},
		}},
	}}
	got := NewRanker(DefaultLimits()).Rank(routed)

	if got.PieFamily != "sentiment" {
		t.Fatalf("PieFamily = %q, want sentiment", got.PieFamily)
	}
	if diff := cmp.Diff([]string{"Positive", "Neutral", "Negative"}, labels(got.Pie)); diff != "" {
		t.Errorf("pie labels (-want +got):\n%s", diff)
	}
	if got.Stats.FamilyDrops != 1 {
		t.Errorf("FamilyDrops = %d, want 1", got.Stats.FamilyDrops)
	}
}

func TestRankDistributionFallsBackToFirstFamily(t *testing.T) {
	routed := classify.Routed{Pie: []extract.Fact{
		{Kind: extract.Distribution, Family: "medals", Seq: 0, Entities: []extract.Entity{{Label: "Gold", Value: 1}}},
		{Kind: extract.Distribution, Family: "sentiment", Seq: 1, Entities: []extract.Entity{{Label: "Positive", Value: 60}}},
	}}
	got := NewRanker(DefaultLimits()).Rank(routed)

	if got.PieFamily != "medals" || len(got.Pie) != 1 {
		t.Errorf("got family %q with %d entries", got.PieFamily, len(got.Pie))
	}
}
