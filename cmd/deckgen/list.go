package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

func (a *app) listCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List archived decks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.dbPath == "" {
				return fmt.Errorf("%w: --db is required", internalerr.ErrInvalidInput)
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			decks, err := e.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(decks))
			for _, d := range decks {
				rows = append(rows, []string{
					d.ID,
					d.Topic,
					strconv.Itoa(d.Slides),
					d.Level.String(),
					humanize.Time(d.CreatedAt),
				})
			}
			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !a.noColor)
			return p.Table([]string{"ID", "TOPIC", "SLIDES", "LEVEL", "CREATED"}, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of decks")
	return cmd
}
