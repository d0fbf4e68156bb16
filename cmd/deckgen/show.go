package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/deckgen/internal/render"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

func (a *app) showCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render an archived deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.dbPath == "" {
				return fmt.Errorf("%w: --db is required", internalerr.ErrInvalidInput)
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			d, err := e.Deck(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := render.Render(d, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md, html or json")
	return cmd
}
