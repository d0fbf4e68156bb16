package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/deckgen/pkg/deckgen/extract"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
	"github.com/cognicore/deckgen/pkg/deckgen/plan"
)

// Config represents the engine configuration file
type Config struct {
	SummaryUnits         []string   `yaml:"summary_units"`
	DistributionFamilies []Family   `yaml:"distribution_families"`
	Limits               Limits     `yaml:"limits"`
	Thresholds           Thresholds `yaml:"thresholds"`
}

// Family is a distribution category family
type Family struct {
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	Categories []string `yaml:"categories"`
}

// Limits caps cardinalities
type Limits struct {
	MaxBar         int `yaml:"max_bar"`
	MaxTable       int `yaml:"max_table"`
	MaxKeyFindings int `yaml:"max_key_findings"`
	MinBulletChars int `yaml:"min_bullet_chars"`
}

// Thresholds are the minimum entries per chart type
type Thresholds struct {
	MinBar   int `yaml:"min_bar"`
	MinPie   int `yaml:"min_pie"`
	MinTable int `yaml:"min_table"`
}

// Default returns the built-in configuration
func Default() *Config {
	v := extract.DefaultVocabulary()
	cfg := &Config{
		SummaryUnits: append([]string(nil), v.SummaryUnits...),
		Limits: Limits{
			MaxBar:         8,
			MaxTable:       6,
			MaxKeyFindings: plan.MaxKeyFindings,
			MinBulletChars: 3,
		},
		Thresholds: Thresholds{MinBar: 2, MinPie: 2, MinTable: 1},
	}
	for _, f := range v.Families {
		cfg.DistributionFamilies = append(cfg.DistributionFamilies, Family{
			Name:       f.Name,
			Title:      f.Title,
			Categories: append([]string(nil), f.Categories...),
		})
	}
	return cfg
}

// Load reads a YAML file over the defaults: keys present in the file replace
// the built-in values, absent keys keep them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the bounds the engine relies on.
func (c *Config) Validate() error {
	if c.Limits.MaxBar < 1 || c.Limits.MaxBar > 8 {
		return fmt.Errorf("%w: limits.max_bar must be in [1, 8], got %d", internalerr.ErrInvalidConfig, c.Limits.MaxBar)
	}
	if c.Limits.MaxTable < 1 || c.Limits.MaxTable > 6 {
		return fmt.Errorf("%w: limits.max_table must be in [1, 6], got %d", internalerr.ErrInvalidConfig, c.Limits.MaxTable)
	}
	if c.Limits.MaxKeyFindings < 0 || c.Limits.MaxKeyFindings > plan.MaxKeyFindings {
		return fmt.Errorf("%w: limits.max_key_findings must be in [0, %d], got %d",
			internalerr.ErrInvalidConfig, plan.MaxKeyFindings, c.Limits.MaxKeyFindings)
	}
	if c.Limits.MinBulletChars < 0 {
		return fmt.Errorf("%w: limits.min_bullet_chars must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.Thresholds.MinBar < 2 || c.Thresholds.MinPie < 2 || c.Thresholds.MinTable < 1 {
		return fmt.Errorf("%w: thresholds below min_bar=2 min_pie=2 min_table=1", internalerr.ErrInvalidConfig)
	}
	for _, u := range c.SummaryUnits {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("%w: empty summary unit", internalerr.ErrInvalidConfig)
		}
	}

	names := make(map[string]struct{}, len(c.DistributionFamilies))
	for i, f := range c.DistributionFamilies {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: distribution family %d has no name", internalerr.ErrInvalidConfig, i)
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("%w: duplicate distribution family %q", internalerr.ErrInvalidConfig, f.Name)
		}
		names[f.Name] = struct{}{}
		if len(f.Categories) < 2 || len(f.Categories) > 8 {
			return fmt.Errorf("%w: family %q needs 2 to 8 categories, got %d",
				internalerr.ErrInvalidConfig, f.Name, len(f.Categories))
		}
		for _, cat := range f.Categories {
			if strings.TrimSpace(cat) == "" {
				return fmt.Errorf("%w: family %q has an empty category", internalerr.ErrInvalidConfig, f.Name)
			}
		}
	}
	return nil
}

// Vocabulary converts the word lists to the extractor's form.
func (c *Config) Vocabulary() extract.Vocabulary {
	v := extract.Vocabulary{SummaryUnits: append([]string(nil), c.SummaryUnits...)}
	for _, f := range c.DistributionFamilies {
		v.Families = append(v.Families, extract.Family{
			Name:       f.Name,
			Title:      f.Title,
			Categories: append([]string(nil), f.Categories...),
		})
	}
	return v
}
