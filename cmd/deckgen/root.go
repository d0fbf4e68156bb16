package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/deckgen/pkg/deckgen"
	"github.com/cognicore/deckgen/pkg/deckgen/config"
	"github.com/cognicore/deckgen/pkg/deckgen/store"
	"github.com/cognicore/deckgen/pkg/deckgen/store/sqlite"
)

// app holds the global flags and the state built from them
type app struct {
	cfgFile string
	dbPath  string
	verbose bool
	noColor bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "deckgen",
		Short: "Compose research-driven slide decks",
		Long: `deckgen turns a topic and optional research text into a slide deck:
a title slide, a key findings slide, charts for the numbers found in the
research, and content slides.

Example usage:
  deckgen compose --topic "Paris Olympics 2024" --slides 6 --research-file notes.md
  deckgen compose --topic "Solar Power" --research-url https://example.com/report --format html --out decks/
  deckgen list --db decks.db
  deckgen show 01J... --db decks.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "engine config file (YAML)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite deck archive")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(a.composeCmd(), a.listCmd(), a.showCmd())
	return root
}

// engine builds an Engine from the global flags. The store is opened only
// when --db is set.
func (a *app) engine(ctx context.Context) (*deckgen.Engine, error) {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		a.logger.Debug("configuration loaded", zap.String("path", a.cfgFile))
	}

	var st store.DeckStore
	if a.dbPath != "" {
		opened, err := sqlite.OpenSQLite(ctx, a.dbPath)
		if err != nil {
			return nil, fmt.Errorf("open deck archive: %w", err)
		}
		st = opened
	}

	e, err := deckgen.New(deckgen.Options{
		Config: cfg,
		Logger: a.logger,
		Store:  st,
	})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, err
	}
	return e, nil
}
