package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/deckgen/internal/render"
	"github.com/cognicore/deckgen/internal/research"
	"github.com/cognicore/deckgen/pkg/deckgen"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

const (
	minSlides = 1
	maxSlides = 20
)

type composeOptions struct {
	topic        string
	slides       int
	researchFile string
	researchURL  string
	researchText string
	researchLLM  bool
	model        string
	format       string
	out          string
	timeout      time.Duration
}

func (a *app) composeCmd() *cobra.Command {
	o := &composeOptions{}
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a deck for a topic",
		Long: `Compose a deck of exactly --slides slides. Research text may come from a
file, a web page, an OpenAI-compatible model or the command line; several
sources are concatenated in that order. Without research the deck is filled
with placeholder content.

The LLM source reads OPENAI_API_KEY and, optionally, OPENAI_BASE_URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompose(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.topic, "topic", "t", "", "presentation topic")
	f.IntVarP(&o.slides, "slides", "n", 5, "number of slides (1-20)")
	f.StringVar(&o.researchFile, "research-file", "", "read research text from a file")
	f.StringVar(&o.researchURL, "research-url", "", "fetch research text from a web page")
	f.StringVar(&o.researchText, "research", "", "research text")
	f.BoolVar(&o.researchLLM, "research-llm", false, "ask an OpenAI-compatible model for research")
	f.StringVar(&o.model, "model", "gpt-4o-mini", "model used by --research-llm")
	f.StringVarP(&o.format, "format", "f", "md", "output format: md, html or json")
	f.StringVarP(&o.out, "out", "o", "", "output file, or a directory to generate a name in (default stdout)")
	f.DurationVar(&o.timeout, "timeout", 60*time.Second, "research timeout")
	return cmd
}

func (a *app) runCompose(cmd *cobra.Command, o *composeOptions) error {
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !a.noColor)

	if o.slides < minSlides || o.slides > maxSlides {
		return fmt.Errorf("%w: --slides must be between %d and %d, got %d",
			internalerr.ErrInvalidInput, minSlides, maxSlides, o.slides)
	}
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	providers, err := o.providers()
	if err != nil {
		return err
	}
	var text *string
	if len(providers) > 0 {
		rctx, cancel := context.WithTimeout(ctx, o.timeout)
		gathered, err := research.Gather(rctx, o.topic, providers...)
		cancel()
		if err != nil {
			a.logger.Warn("research unavailable, composing without it", zap.Error(err))
			p.Warning("research unavailable: %v", err)
		} else {
			text = &gathered
		}
	}

	e, err := a.engine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	req := deckgen.Request{Topic: o.topic, SlideCount: o.slides, Research: text}
	var res deckgen.Result
	if a.dbPath != "" {
		if res, err = e.ComposeAndArchive(ctx, req); err != nil {
			return err
		}
	} else {
		res = e.Compose(req)
	}

	data, err := render.Render(res.Deck, format)
	if err != nil {
		return err
	}

	if o.out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	path := o.out
	if info, statErr := os.Stat(path); (statErr == nil && info.IsDir()) || strings.HasSuffix(path, string(os.PathSeparator)) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return err
		}
		path = filepath.Join(path, render.FileName(res.Deck.Topic, res.Deck.CreatedAt, format))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	p.Success("wrote %d slides (%s) to %s", len(res.Deck.Slides), res.Deck.Level(), path)
	return nil
}

func (o *composeOptions) providers() ([]research.Provider, error) {
	var out []research.Provider
	if o.researchFile != "" {
		out = append(out, research.File{Path: o.researchFile})
	}
	if o.researchURL != "" {
		out = append(out, research.Web{URL: o.researchURL})
	}
	if o.researchLLM {
		llm, err := research.NewOpenAI(research.OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   o.model,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, llm)
	}
	if o.researchText != "" {
		out = append(out, research.Static(o.researchText))
	}
	return out, nil
}
