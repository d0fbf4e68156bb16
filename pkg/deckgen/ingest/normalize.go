package ingest

import (
	"regexp"
	"strings"
)

var (
	thousandsSep = regexp.MustCompile(`(\d),(\d{3})\b`)
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	emphasis     = strings.NewReplacer("**", "", "__", "", "`", "")
)

// Line is one narrative line of research text in its two views.
type Line struct {
	Display string  // whitespace-collapsed, original number tokens kept
	Numeric string  // Display with thousands separators removed between digits
	Section Section // section the line was found in
}

// Normalized is the output of the Normalizer.
// NoData is the sentinel for absent or blank input.
type Normalized struct {
	Lines  []Line
	NoData bool
}

// Numeric returns the numeric view, one entry per line.
func (n Normalized) Numeric() []string {
	out := make([]string, len(n.Lines))
	for i, l := range n.Lines {
		out[i] = l.Numeric
	}
	return out
}

// Display returns the display view, one entry per line.
func (n Normalized) Display() []string {
	out := make([]string, len(n.Lines))
	for i, l := range n.Lines {
		out[i] = l.Display
	}
	return out
}

// Normalizer cleans research text for pattern matching.
type Normalizer struct {
	splitter *SectionSplitter
}

// NewNormalizer creates a normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{splitter: NewSectionSplitter()}
}

// Normalize never fails: absent or blank text yields the NoData sentinel.
// Only narrative sections contribute lines; advisory sections (visual
// suggestions, sources) are dropped here.
func (n *Normalizer) Normalize(doc ResearchDocument) Normalized {
	if !doc.HasText() {
		return Normalized{NoData: true}
	}
	raw, _ := doc.Text()

	var out Normalized
	for _, sec := range n.splitter.Split(raw) {
		if !sec.Section.Narrative() {
			continue
		}
		for _, l := range sec.Lines {
			display := CleanLine(l)
			if display == "" {
				continue
			}
			out.Lines = append(out.Lines, Line{
				Display: display,
				Numeric: StripThousands(display),
				Section: sec.Section,
			})
		}
	}
	return out
}

// CleanLine removes inline markdown and collapses whitespace runs.
func CleanLine(line string) string {
	line = markdownLink.ReplaceAllString(line, "$1")
	line = emphasis.Replace(line)
	return CollapseWhitespace(line)
}

// CollapseWhitespace reduces every whitespace run to a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripThousands removes commas that group digits, e.g. "10,500" -> "10500".
// Commas not flanked by digits ("40 gold, 44 silver") are kept.
func StripThousands(s string) string {
	for {
		next := thousandsSep.ReplaceAllString(s, "$1$2")
		if next == s {
			return s
		}
		s = next
	}
}
