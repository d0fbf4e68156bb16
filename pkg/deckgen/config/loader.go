package config

import (
	"fmt"

	"github.com/cognicore/deckgen/pkg/deckgen/classify"
	"github.com/cognicore/deckgen/pkg/deckgen/extract"
	"github.com/cognicore/deckgen/pkg/deckgen/ingest"
	"github.com/cognicore/deckgen/pkg/deckgen/plan"
	"github.com/cognicore/deckgen/pkg/deckgen/rank"
	"github.com/cognicore/deckgen/pkg/deckgen/viz"
)

// Loader loads the configuration file and constructs components
type Loader struct {
	ConfigPath string
}

// Components holds the pipeline stages built from one configuration
type Components struct {
	Normalizer     *ingest.Normalizer
	Extractor      *extract.Extractor
	Ranker         *rank.Ranker
	Policy         classify.Policy
	Viz            *viz.Builder
	Planner        *plan.Planner
	MinBulletChars int
}

// Load reads the configuration file, or uses the defaults when no path is set
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	return Build(cfg), nil
}

// Build constructs the components of a validated configuration
func Build(cfg *Config) *Components {
	policy := classify.Policy{
		MinBar:   cfg.Thresholds.MinBar,
		MinPie:   cfg.Thresholds.MinPie,
		MinTable: cfg.Thresholds.MinTable,
	}

	titles := make(map[string]string, len(cfg.DistributionFamilies))
	for _, f := range cfg.DistributionFamilies {
		titles[f.Name] = f.Title
	}

	return &Components{
		Normalizer: ingest.NewNormalizer(),
		Extractor:  extract.New(extract.Rules(cfg.Vocabulary())),
		Ranker: rank.NewRanker(rank.Limits{
			MaxBar:   cfg.Limits.MaxBar,
			MaxTable: cfg.Limits.MaxTable,
			MinPie:   cfg.Thresholds.MinPie,
		}),
		Policy:         policy,
		Viz:            viz.NewBuilder(policy, titles),
		Planner:        plan.New(cfg.Limits.MaxKeyFindings),
		MinBulletChars: cfg.Limits.MinBulletChars,
	}
}
