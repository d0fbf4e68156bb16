package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printer writes human-facing status lines
type printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func newPrinter(out, errOut io.Writer, useColors bool) *printer {
	return &printer{out: out, err: errOut, useColors: useColors}
}

// Success prints a success message
func (p *printer) Success(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.err, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[OK] "+format+"\n", args...)
	}
}

// Warning prints a warning message
func (p *printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

// Error prints an error message
func (p *printer) Error(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Table renders rows under a header without borders
func (p *printer) Table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
