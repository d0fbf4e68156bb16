// Package diag carries the per-run diagnostic record of a composition.
//
// Nothing here is process-wide: each run fills its own Record, and callers who
// want aggregates inject a Collector.
package diag

import (
	"sync"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
)

// Record summarises what one composition run extracted, dropped and synthesized.
type Record struct {
	Lines          int // normalized narrative lines
	UnmatchedLines int // lines that produced no fact

	Comparisons   int
	Distributions int
	Summaries     int

	DedupDrops  int // duplicate labels, categories or metrics merged away
	Truncated   int // entries cut by the bar/table caps
	FamilyDrops int // distribution facts from a family other than the charted one

	Bullets        int
	KeyFindings    int
	LeftoverUnused int // bullets past key findings with no content slide to land on

	VisualsEmitted []deck.VizType
	VisualsDropped []deck.VizType // emitted but cut to fit the slide budget
	Rejected       []deck.VizType // below threshold

	Placeholders   int
	NoData         bool
	TopicDefaulted bool
	CacheHit       bool
}

// Facts returns the total number of extracted facts.
func (r Record) Facts() int {
	return r.Comparisons + r.Distributions + r.Summaries
}

// Collector receives the record of every run.
type Collector interface {
	Collect(Record)
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(Record)

// Collect implements Collector.
func (f CollectorFunc) Collect(r Record) { f(r) }

// Tally aggregates records across runs. Safe for concurrent use.
type Tally struct {
	mu       sync.Mutex
	runs     int
	facts    int
	drops    int
	fallback int
	levels   map[string]int
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{levels: make(map[string]int)}
}

// Collect implements Collector.
func (t *Tally) Collect(r Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runs++
	t.facts += r.Facts()
	t.drops += r.DedupDrops + r.Truncated + r.FamilyDrops
	if r.NoData {
		t.fallback++
	}
}

// Observe counts the degradation level of a produced deck.
func (t *Tally) Observe(level deck.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.levels[level.String()]++
}

// Snapshot is a point-in-time copy of a Tally.
type Snapshot struct {
	Runs      int
	Facts     int
	Drops     int
	Fallbacks int
	Levels    map[string]int
}

// Snapshot returns the current totals.
func (t *Tally) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	levels := make(map[string]int, len(t.levels))
	for k, v := range t.levels {
		levels[k] = v
	}
	return Snapshot{
		Runs:      t.runs,
		Facts:     t.facts,
		Drops:     t.drops,
		Fallbacks: t.fallback,
		Levels:    levels,
	}
}
