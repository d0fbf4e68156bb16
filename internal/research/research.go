// Package research gathers the free-form research text a deck is composed from.
package research

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

// Provider returns research text about a topic.
type Provider interface {
	Research(ctx context.Context, topic string) (string, error)
}

// Static always returns the same text.
type Static string

// Research implements Provider.
func (s Static) Research(context.Context, string) (string, error) {
	return string(s), nil
}

// File reads research text from a local file.
type File struct {
	Path string
}

// Research implements Provider.
func (f File) Research(ctx context.Context, topic string) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalerr.ErrProviderUnavailable, err)
	}
	return string(data), nil
}

// Gather queries all providers concurrently and joins their text in provider
// order, separated by blank lines. Any provider error cancels the rest.
func Gather(ctx context.Context, topic string, providers ...Provider) (string, error) {
	texts := make([]string, len(providers))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			text, err := p.Research(ctx, topic)
			if err != nil {
				return err
			}
			texts[i] = strings.TrimSpace(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	parts := texts[:0]
	for _, t := range texts {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}
