package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func entities(facts []Fact, kind Kind) []Entity {
	var out []Entity
	for _, f := range facts {
		if f.Kind == kind {
			out = append(out, f.Entities...)
		}
	}
	return out
}

func TestExtractOlympics(t *testing.T) {
	lines := []string{
		"USA: 126 total medals",
		"China: 91 total medals",
		"40 gold, 44 silver, 42 bronze",
		"10500 athletes from 206 countries",
	}
	facts := NewDefault().Extract(lines)

	if diff := cmp.Diff([]Entity{{"USA", 126}, {"China", 91}}, entities(facts, Comparison)); diff != "" {
		t.Errorf("comparisons (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Entity{{"Gold", 40}, {"Silver", 44}, {"Bronze", 42}}, entities(facts, Distribution)); diff != "" {
		t.Errorf("distribution (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Entity{{"Athletes", 10500}, {"Countries", 206}}, entities(facts, Summary)); diff != "" {
		t.Errorf("summaries (-want +got):\n%s", diff)
	}

	for i, f := range facts {
		if f.Seq != i {
			t.Errorf("fact %d has Seq %d", i, f.Seq)
		}
	}
	if facts[0].Qualifier != "total medals" {
		t.Errorf("qualifier = %q, want %q", facts[0].Qualifier, "total medals")
	}
}

func TestComparisonRejectsNonIntegers(t *testing.T) {
	lines := []string{
		"Growth: 45% year over year",
		"Average: 3.5 points",
		"Kickoff: 10:30 local time",
	}
	facts := NewDefault().Extract(lines)
	if got := entities(facts, Comparison); len(got) != 0 {
		t.Errorf("expected no comparisons, got %v", got)
	}
}

func TestDistributionColonForm(t *testing.T) {
	facts := NewDefault().Extract([]string{"Positive: 60, Neutral: 25, Negative: 15"})

	got := entities(facts, Distribution)
	want := []Entity{{"Positive", 60}, {"Neutral", 25}, {"Negative", 15}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("distribution (-want +got):\n%s", diff)
	}
	for _, f := range facts {
		if f.Kind == Distribution && f.Family != "sentiment" {
			t.Errorf("family = %q, want sentiment", f.Family)
		}
	}
}

func TestDistributionIsOneFactPerLine(t *testing.T) {
	facts := NewDefault().Extract([]string{"40 gold and 44 silver", "42 bronze"})

	var dist []Fact
	for _, f := range facts {
		if f.Kind == Distribution {
			dist = append(dist, f)
		}
	}
	if len(dist) != 2 {
		t.Fatalf("expected 2 distribution facts, got %d", len(dist))
	}
	if len(dist[0].Entities) != 2 || dist[0].Line != 0 {
		t.Errorf("first fact = %+v", dist[0])
	}
}

func TestExtractEmpty(t *testing.T) {
	if facts := NewDefault().Extract(nil); facts != nil {
		t.Errorf("expected nil, got %v", facts)
	}
	if facts := NewDefault().Extract([]string{"nothing numeric here"}); len(facts) != 0 {
		t.Errorf("expected no facts, got %v", facts)
	}
}

func TestRulesOrder(t *testing.T) {
	rules := Rules(DefaultVocabulary())
	var names []string
	for _, r := range rules {
		names = append(names, r.Name)
	}
	want := []string{"comparison", "distribution/medals", "distribution/sentiment", "distribution/priority", "summary"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("rule order (-want +got):\n%s", diff)
	}
}

func TestTitle(t *testing.T) {
	if got := Title("total MEDALS"); got != "Total Medals" {
		t.Errorf("Title() = %q", got)
	}
}
