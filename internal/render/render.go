// Package render writes decks as Markdown, HTML or JSON documents.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

// Format names an output format
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat accepts md, markdown, html and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", internalerr.ErrInvalidInput, s)
}

// Render writes d in the given format.
func Render(d deck.Deck, f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(Markdown(d)), nil
	case FormatHTML:
		return HTML(d)
	case FormatJSON:
		return JSON(d)
	}
	return nil, fmt.Errorf("%w: unknown format %q", internalerr.ErrInvalidInput, f)
}

// Markdown renders one level-2 heading per slide. Charts become tables.
func Markdown(d deck.Deck) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", d.Topic)

	for _, s := range d.Slides {
		fmt.Fprintf(&buf, "## %d. %s\n\n", s.Ordinal, s.Title)

		switch p := s.Payload.(type) {
		case deck.TitlePayload:
			if line := subtitle(d.CreatedAt, p.Subtitle); line != "" {
				fmt.Fprintf(&buf, "_%s_\n\n", line)
			}
		case deck.BulletsPayload:
			if len(p.Items) == 0 {
				buf.WriteString("_No findings available._\n\n")
				continue
			}
			for _, b := range p.Items {
				fmt.Fprintf(&buf, "%s- %s\n", strings.Repeat("  ", b.Level), escape(b.Text))
			}
			buf.WriteString("\n")
		case deck.ChartPayload:
			writeChart(&buf, p.Spec)
		}
	}
	return buf.String()
}

// subtitle prefixes the planned subtitle with the generation date of a
// stamped deck.
func subtitle(created time.Time, planned string) string {
	if created.IsZero() {
		return planned
	}
	line := "Generated on " + created.Format("January 02, 2006")
	if planned != "" {
		line += " | " + planned
	}
	return line
}

func writeChart(buf *bytes.Buffer, spec deck.VisualizationSpec) {
	fmt.Fprintf(buf, "_%s chart_\n\n", spec.Type)
	if spec.Type == deck.VizPie {
		buf.WriteString("| Category | Value | Share |\n|---|---:|---:|\n")
		for _, pt := range spec.Series {
			share := ""
			if pt.Percent != nil {
				share = fmt.Sprintf("%.1f%%", *pt.Percent)
			}
			fmt.Fprintf(buf, "| %s | %s | %s |\n", escape(pt.Label), humanize.Comma(pt.Value), share)
		}
	} else {
		buf.WriteString("| Label | Value |\n|---|---:|\n")
		for _, pt := range spec.Series {
			fmt.Fprintf(buf, "| %s | %s |\n", escape(pt.Label), humanize.Comma(pt.Value))
		}
	}
	buf.WriteString("\n")
}

var mdEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`)

func escape(s string) string {
	return mdEscaper.Replace(s)
}

// HTML converts the Markdown rendition with GitHub table support.
func HTML(d deck.Deck) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(d)), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", htmlEscaper.Replace(d.Topic))
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// JSON encodes the deck with two-space indentation.
func JSON(d deck.Deck) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// maxNameRunes bounds the topic part of a generated file name.
const maxNameRunes = 50

// FileName derives "<topic>_<YYYYmmdd_HHMMSS>.<ext>" from a topic. Characters
// other than letters, digits and spaces become underscores, spaces become
// underscores, and the topic part is cut to 50 characters.
func FileName(topic string, t time.Time, f Format) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(topic) {
		if n == maxNameRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		n++
	}
	name := b.String()
	if name == "" {
		name = "presentation"
	}
	return fmt.Sprintf("%s_%s.%s", name, t.Format("20060102_150405"), f)
}
