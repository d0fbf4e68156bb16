package ingest

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section identifies a part of a research brief
type Section string

const (
	SectionPreamble          Section = "preamble"
	SectionKeyFindings       Section = "key_findings"
	SectionVisualSuggestions Section = "visual_suggestions"
	SectionSources           Section = "sources"
	SectionOther             Section = "other"
)

// Narrative reports whether lines of this section feed extraction and bullets.
// Visual suggestions are hints for humans and sources are citations.
func (s Section) Narrative() bool {
	return s != SectionVisualSuggestions && s != SectionSources
}

// sectionLabels maps lowercase labels to sections, longest first so that
// "key findings" wins over "findings".
var sectionLabels = []struct {
	label   string
	section Section
}{
	{"visual suggestions", SectionVisualSuggestions},
	{"key research findings", SectionKeyFindings},
	{"key findings", SectionKeyFindings},
	{"key insights", SectionKeyFindings},
	{"references", SectionSources},
	{"findings", SectionKeyFindings},
	{"visuals", SectionVisualSuggestions},
	{"sources", SectionSources},
}

// SectionLines holds the raw lines found under one section label.
type SectionLines struct {
	Section Section
	Lines   []string
}

// SectionSplitter parses research briefs as Markdown and groups their lines
// by section. List markers are removed by the parser; inline markup is kept.
type SectionSplitter struct {
	md goldmark.Markdown
}

// NewSectionSplitter creates a splitter with the default CommonMark parser
func NewSectionSplitter() *SectionSplitter {
	return &SectionSplitter{md: goldmark.New()}
}

// Split returns sections in document order. Consecutive lines of the same
// section are grouped together; "#" headings and section labels are not lines.
func (s *SectionSplitter) Split(raw string) []SectionLines {
	src := []byte(raw)
	root := s.md.Parser().Parse(text.NewReader(src))

	var out []SectionLines
	current := SectionPreamble
	emit := func(line string) {
		if len(out) == 0 || out[len(out)-1].Section != current {
			out = append(out, SectionLines{Section: current})
		}
		out[len(out)-1].Lines = append(out[len(out)-1].Lines, line)
	}

	emitLines := func(n ast.Node) {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimSpace(string(seg.Value(src)))
			if line == "" {
				continue
			}
			if sec, rest, ok := labelSection(line); ok {
				current = sec
				if rest == "" {
					continue
				}
				line = rest
			}
			if isLink(line) {
				continue
			}
			emit(line)
		}
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			// An underlined line is ordinary text in a brief; only "#" starts a heading.
			if !isATXHeading(n, src) {
				emitLines(n)
				return ast.WalkSkipChildren, nil
			}
			heading := strings.TrimSpace(string(n.Lines().Value(src)))
			if sec, _, ok := labelSection(heading); ok {
				current = sec
			} else {
				current = SectionOther
			}
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock, ast.KindCodeBlock:
			emitLines(n)
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return out
}

// labelSection recognises "Key Findings", "**Key Findings:**" or
// "Sources: ..." and returns any text following the label.
func labelSection(line string) (Section, string, bool) {
	clean := strings.TrimSpace(strings.NewReplacer("*", "", "_", "", "#", "").Replace(line))
	for _, l := range sectionLabels {
		if len(clean) < len(l.label) || !strings.EqualFold(clean[:len(l.label)], l.label) {
			continue
		}
		rest := strings.TrimSpace(clean[len(l.label):])
		if rest == "" {
			return l.section, "", true
		}
		if strings.HasPrefix(rest, ":") {
			return l.section, strings.TrimSpace(rest[1:]), true
		}
	}
	return "", "", false
}

// isATXHeading reports whether the heading's first line starts with "#".
// Empty headings have no lines and can only be ATX.
func isATXHeading(n ast.Node, src []byte) bool {
	lines := n.Lines()
	if lines.Len() == 0 {
		return true
	}
	start := lines.At(0).Start
	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	return bytes.HasPrefix(bytes.TrimLeft(src[lineStart:start], " \t"), []byte("#"))
}

func isLink(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "www.")
}
