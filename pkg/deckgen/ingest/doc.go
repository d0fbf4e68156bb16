package ingest

import "strings"

// ResearchDocument is the immutable input of one composition request.
// A nil Text means no research was supplied.
type ResearchDocument struct {
	Topic string
	text  *string
}

// NewResearchDocument copies the research text so later changes by the caller
// cannot leak into a running composition.
func NewResearchDocument(topic string, text *string) ResearchDocument {
	doc := ResearchDocument{Topic: strings.TrimSpace(topic)}
	if text != nil {
		cp := *text
		doc.text = &cp
	}
	return doc
}

// Text returns the raw research text and whether any was supplied.
func (d ResearchDocument) Text() (string, bool) {
	if d.text == nil {
		return "", false
	}
	return *d.text, true
}

// HasText reports whether the document carries non-blank research text.
func (d ResearchDocument) HasText() bool {
	return d.text != nil && strings.TrimSpace(*d.text) != ""
}
