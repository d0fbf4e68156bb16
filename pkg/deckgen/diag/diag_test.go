package diag

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
)

func TestTallyAggregates(t *testing.T) {
	tally := NewTally()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tally.Collect(Record{Comparisons: 2, Summaries: 1, DedupDrops: 1, Truncated: 1, NoData: i%2 == 0})
			tally.Observe(deck.LevelPartial)
		}(i)
	}
	wg.Wait()

	snap := tally.Snapshot()
	assert.Equal(t, 10, snap.Runs)
	assert.Equal(t, 30, snap.Facts)
	assert.Equal(t, 20, snap.Drops)
	assert.Equal(t, 5, snap.Fallbacks)
	assert.Equal(t, map[string]int{"partial": 10}, snap.Levels)

	snap.Levels["partial"] = 0
	assert.Equal(t, 10, tally.Snapshot().Levels["partial"], "snapshot must be a copy")
}

func TestCollectorFunc(t *testing.T) {
	var got Record
	var c Collector = CollectorFunc(func(r Record) { got = r })
	c.Collect(Record{Lines: 3, Distributions: 1})

	assert.Equal(t, 3, got.Lines)
	assert.Equal(t, 1, got.Facts())
}
