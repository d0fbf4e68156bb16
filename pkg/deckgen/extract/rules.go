package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule is one named recognition pattern.
// Windowed rules fold every match on a line into a single fact.
type Rule struct {
	Name     string
	Kind     Kind
	Pattern  *regexp.Regexp
	Family   string
	windowed bool
	capture  func(m []string) (Entity, string, bool)
}

// Apply runs the rule over every line and returns facts in line order.
// Seq is left at zero; the Extractor assigns it after joining all rules.
func (r Rule) Apply(lines []string) []Fact {
	var facts []Fact
	for lineNo, line := range lines {
		matches := r.Pattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		if r.windowed {
			fact := Fact{Kind: r.Kind, Rule: r.Name, Family: r.Family, Line: lineNo}
			for _, m := range matches {
				if ent, _, ok := r.capture(m); ok {
					fact.Entities = append(fact.Entities, ent)
				}
			}
			if len(fact.Entities) > 0 {
				facts = append(facts, fact)
			}
			continue
		}

		for _, m := range matches {
			ent, qualifier, ok := r.capture(m)
			if !ok {
				continue
			}
			facts = append(facts, Fact{
				Kind:      r.Kind,
				Rule:      r.Name,
				Family:    r.Family,
				Qualifier: qualifier,
				Entities:  []Entity{ent},
				Line:      lineNo,
			})
		}
	}
	return facts
}

// Family is a fixed set of category words that split a whole, e.g. medals
// split into gold, silver and bronze.
type Family struct {
	Name       string
	Title      string
	Categories []string
}

// Vocabulary holds the closed word lists the rules recognise.
type Vocabulary struct {
	SummaryUnits []string
	Families     []Family
}

// DefaultVocabulary returns the built-in word lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SummaryUnits: []string{
			"athletes", "participants", "countries", "nations", "cities", "venues",
			"sports", "events", "disciplines", "teams", "delegates", "attendees",
			"visitors", "users", "customers", "employees", "companies", "members",
			"students", "people", "languages", "regions", "locations", "categories",
			"sessions", "competitions", "products", "projects", "schools", "hospitals",
		},
		Families: []Family{
			{Name: "medals", Title: "Medal Breakdown", Categories: []string{"gold", "silver", "bronze"}},
			{Name: "sentiment", Title: "Sentiment Breakdown", Categories: []string{"positive", "neutral", "negative"}},
			{Name: "priority", Title: "Priority Breakdown", Categories: []string{"high", "medium", "low"}},
		},
	}
}

// Rules builds the ordered rule table: comparison, one distribution rule per
// family, then summary.
func Rules(v Vocabulary) []Rule {
	rules := []Rule{ComparisonRule()}
	for _, fam := range v.Families {
		if len(fam.Categories) == 0 {
			continue
		}
		rules = append(rules, DistributionRule(fam))
	}
	if len(v.SummaryUnits) > 0 {
		rules = append(rules, SummaryRule(v.SummaryUnits))
	}
	return rules
}

// ComparisonRule matches "<Label>: <integer>[ qualifier words]".
// Values followed by "%", a decimal fraction or a clock minute are rejected.
func ComparisonRule() Rule {
	re := regexp.MustCompile(`(?P<label>[A-Z][A-Za-z0-9&.'\- ]{0,47}?)\s*:\s*(?P<value>\d+)(?P<tail>%|\.\d|:\d)?(?P<qualifier>(?:[ \t]+[a-z]+){0,2})`)
	label, value := re.SubexpIndex("label"), re.SubexpIndex("value")
	tail, qualifier := re.SubexpIndex("tail"), re.SubexpIndex("qualifier")

	return Rule{
		Name:    "comparison",
		Kind:    Comparison,
		Pattern: re,
		capture: func(m []string) (Entity, string, bool) {
			if m[tail] != "" {
				return Entity{}, "", false
			}
			v, ok := parseValue(m[value])
			if !ok {
				return Entity{}, "", false
			}
			l := strings.TrimSpace(m[label])
			if l == "" {
				return Entity{}, "", false
			}
			return Entity{Label: l, Value: v}, strings.TrimSpace(m[qualifier]), true
		},
	}
}

// DistributionRule matches "<integer> <category>" or "<category>: <integer>"
// for the family's categories within one line.
func DistributionRule(fam Family) Rule {
	alts := make([]string, len(fam.Categories))
	for i, c := range fam.Categories {
		alts[i] = regexp.QuoteMeta(strings.ToLower(c))
	}
	cats := strings.Join(alts, "|")
	re := regexp.MustCompile(fmt.Sprintf(
		`(?i)\b(?:(?P<value>\d+)\s+(?P<category>%[1]s)|(?P<category2>%[1]s)\s*:?\s*(?P<value2>\d+))\b`, cats))
	value, category := re.SubexpIndex("value"), re.SubexpIndex("category")
	value2, category2 := re.SubexpIndex("value2"), re.SubexpIndex("category2")

	return Rule{
		Name:     "distribution/" + fam.Name,
		Kind:     Distribution,
		Pattern:  re,
		Family:   fam.Name,
		windowed: true,
		capture: func(m []string) (Entity, string, bool) {
			raw, cat := m[value], m[category]
			if cat == "" {
				raw, cat = m[value2], m[category2]
			}
			v, ok := parseValue(raw)
			if !ok || cat == "" {
				return Entity{}, "", false
			}
			return Entity{Label: Title(cat), Value: v}, "", true
		},
	}
}

// SummaryRule matches "<integer> <unit>" where unit is in the vocabulary.
func SummaryRule(units []string) Rule {
	alts := make([]string, 0, len(units))
	for _, u := range units {
		if u = strings.TrimSpace(u); u != "" {
			alts = append(alts, regexp.QuoteMeta(strings.ToLower(u)))
		}
	}
	re := regexp.MustCompile(`(?i)\b(?P<value>\d+)\s+(?P<unit>` + strings.Join(alts, "|") + `)\b`)
	value, unit := re.SubexpIndex("value"), re.SubexpIndex("unit")

	return Rule{
		Name:    "summary",
		Kind:    Summary,
		Pattern: re,
		capture: func(m []string) (Entity, string, bool) {
			v, ok := parseValue(m[value])
			if !ok {
				return Entity{}, "", false
			}
			return Entity{Label: Title(m[unit]), Value: v}, "", true
		},
	}
}

// Title upper-cases the first letter of every word and lower-cases the rest.
func Title(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func parseValue(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
