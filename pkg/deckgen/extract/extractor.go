package extract

import "golang.org/x/sync/errgroup"

// Extractor applies an ordered rule table to normalized lines.
type Extractor struct {
	rules []Rule
}

// New creates an extractor over the given rules
func New(rules []Rule) *Extractor {
	return &Extractor{rules: rules}
}

// NewDefault creates an extractor over the built-in vocabulary
func NewDefault() *Extractor {
	return New(Rules(DefaultVocabulary()))
}

// Rules returns the rule table in evaluation order.
func (e *Extractor) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Extract runs every rule concurrently over the lines and joins the results
// in rule-table order. Seq numbers the facts in that order.
func (e *Extractor) Extract(lines []string) []Fact {
	if len(lines) == 0 || len(e.rules) == 0 {
		return nil
	}

	results := make([][]Fact, len(e.rules))
	var g errgroup.Group
	for i, rule := range e.rules {
		g.Go(func() error {
			results[i] = rule.Apply(lines)
			return nil
		})
	}
	// Rules never fail; Wait is the join point before ranking.
	_ = g.Wait()

	var facts []Fact
	for _, rf := range results {
		for _, f := range rf {
			f.Seq = len(facts)
			facts = append(facts, f)
		}
	}
	return facts
}
