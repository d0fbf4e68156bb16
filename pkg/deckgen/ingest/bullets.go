package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BulletGroup is the ordered pool of narrative lines shown as prose.
// Lines that also produced a chart stay in the pool.
type BulletGroup struct {
	Items []string
}

// Len returns the number of bullets
func (b BulletGroup) Len() int { return len(b.Items) }

// BuildBullets collects display lines in first-seen order, skipping repeats
// (case-insensitive) and fragments shorter than minChars runes.
func BuildBullets(n Normalized, minChars int) BulletGroup {
	var group BulletGroup
	seen := make(map[string]struct{}, len(n.Lines))
	for _, line := range n.Lines {
		text := strings.TrimSpace(line.Display)
		if utf8.RuneCountInString(text) < minChars || !hasWordChar(text) {
			continue
		}
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		group.Items = append(group.Items, text)
	}
	return group
}

func hasWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
