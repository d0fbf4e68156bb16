package rank

import (
	"sort"
	"strings"

	"github.com/cognicore/deckgen/pkg/deckgen/classify"
	"github.com/cognicore/deckgen/pkg/deckgen/extract"
)

// Ranker deduplicates and caps routed facts
type Ranker struct {
	limits Limits
}

// Limits defines the cardinality caps
type Limits struct {
	MaxBar   int // bar entries kept after sorting
	MaxTable int // table rows kept in first-seen order
	MinPie   int // categories a family needs to be charted; below 2 means 2
}

// DefaultLimits returns the built-in caps
func DefaultLimits() Limits {
	return Limits{MaxBar: 8, MaxTable: 6, MinPie: 2}
}

// NewRanker creates a new ranker with the given caps
func NewRanker(l Limits) *Ranker {
	return &Ranker{limits: l}
}

// Entry is a ranked (label, value) pair. Seq is the extraction order of the
// occurrence that fixed its position.
type Entry struct {
	Label string
	Value int64
	Seq   int
}

// Stats counts what ranking removed
type Stats struct {
	DedupDrops  int
	Truncated   int
	FamilyDrops int
}

// Ranked is the output of the ranker, one list per chart type.
type Ranked struct {
	Bar          []Entry
	BarQualifier string // most common comparison qualifier, first seen on ties
	Pie          []Entry
	PieFamily    string
	Table        []Entry
	Stats        Stats
}

// Rank applies the per-category dedup and cap policy. It is a pure function of
// its input, so ranking the same facts twice yields identical output.
func (r *Ranker) Rank(routed classify.Routed) Ranked {
	var out Ranked
	out.Bar, out.BarQualifier = r.rankComparisons(routed.Bar, &out.Stats)
	out.Pie, out.PieFamily = r.rankDistribution(routed.Pie, &out.Stats)
	out.Table = r.rankSummaries(routed.Table, &out.Stats)
	return out
}

// rankComparisons keeps the larger value of a repeated label, at the position
// of the label's first occurrence, then sorts descending with a stable sort so
// equal values stay in first-seen order.
func (r *Ranker) rankComparisons(facts []extract.Fact, st *Stats) ([]Entry, string) {
	var entries []Entry
	index := make(map[string]int)
	qualifiers := make(map[string]int)
	var qualifierOrder []string

	for _, f := range facts {
		if q := strings.ToLower(f.Qualifier); q != "" {
			if _, ok := qualifiers[q]; !ok {
				qualifierOrder = append(qualifierOrder, q)
			}
			qualifiers[q]++
		}
		for _, e := range f.Entities {
			key := normKey(e.Label)
			if i, ok := index[key]; ok {
				st.DedupDrops++
				if e.Value > entries[i].Value {
					entries[i].Value = e.Value
				}
				continue
			}
			index[key] = len(entries)
			entries = append(entries, Entry{Label: strings.TrimSpace(e.Label), Value: e.Value, Seq: f.Seq})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if r.limits.MaxBar > 0 && len(entries) > r.limits.MaxBar {
		st.Truncated += len(entries) - r.limits.MaxBar
		entries = entries[:r.limits.MaxBar]
	}

	best := ""
	for _, q := range qualifierOrder {
		if best == "" || qualifiers[q] > qualifiers[best] {
			best = q
		}
	}
	return entries, best
}

// rankDistribution merges the facts of the charted family. Categories keep
// first-seen order; a recurring category takes its latest value.
func (r *Ranker) rankDistribution(facts []extract.Fact, st *Stats) ([]Entry, string) {
	if len(facts) == 0 {
		return nil, ""
	}
	family := r.pieFamily(facts)

	var entries []Entry
	index := make(map[string]int)
	for _, f := range facts {
		if f.Family != family {
			st.FamilyDrops++
			continue
		}
		for _, e := range f.Entities {
			key := normKey(e.Label)
			if i, ok := index[key]; ok {
				st.DedupDrops++
				entries[i].Value = e.Value
				continue
			}
			index[key] = len(entries)
			entries = append(entries, Entry{Label: e.Label, Value: e.Value, Seq: f.Seq})
		}
	}
	return entries, family
}

// pieFamily picks the first-seen family whose distinct categories reach
// MinPie, or the first-seen family when none does.
func (r *Ranker) pieFamily(facts []extract.Fact) string {
	minPie := r.limits.MinPie
	if minPie < 2 {
		minPie = 2
	}
	var order []string
	categories := make(map[string]map[string]struct{})
	for _, f := range facts {
		cats, ok := categories[f.Family]
		if !ok {
			cats = make(map[string]struct{})
			categories[f.Family] = cats
			order = append(order, f.Family)
		}
		for _, e := range f.Entities {
			cats[normKey(e.Label)] = struct{}{}
		}
	}
	for _, name := range order {
		if len(categories[name]) >= minPie {
			return name
		}
	}
	return order[0]
}

// rankSummaries keeps the first occurrence of each metric and drops rows past
// the table cap.
func (r *Ranker) rankSummaries(facts []extract.Fact, st *Stats) []Entry {
	var entries []Entry
	seen := make(map[string]struct{})
	for _, f := range facts {
		for _, e := range f.Entities {
			key := normKey(e.Label)
			if _, ok := seen[key]; ok {
				st.DedupDrops++
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, Entry{Label: e.Label, Value: e.Value, Seq: f.Seq})
		}
	}
	if r.limits.MaxTable > 0 && len(entries) > r.limits.MaxTable {
		st.Truncated += len(entries) - r.limits.MaxTable
		entries = entries[:r.limits.MaxTable]
	}
	return entries
}

func normKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
