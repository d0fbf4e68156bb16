package deck

import "fmt"

// Level is the degradation level of a deck, derived from its composition.
type Level int

const (
	LevelNoData Level = iota
	LevelPartial
	LevelFull
)

var levelNames = map[Level]string{
	LevelNoData:  "no_data",
	LevelPartial: "partial",
	LevelFull:    "full",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	for lvl, name := range levelNames {
		if name == string(b) {
			*l = lvl
			return nil
		}
	}
	return fmt.Errorf("unknown level %q", string(b))
}

// Level inspects the deck. Full means a bar, a pie and a table slide are all
// present; Partial means some research content made it in; NoData means every
// slide past the title is empty or synthesized.
func (d Deck) Level() Level {
	seen := make(map[SlideKind]bool)
	research := false
	for _, s := range d.Slides {
		switch s.Kind {
		case KindBar, KindPie, KindTable:
			seen[s.Kind] = true
			research = true
		case KindKeyFindings, KindContent:
			if !s.Placeholder && len(s.Bullets()) > 0 {
				research = true
			}
		}
	}
	if seen[KindBar] && seen[KindPie] && seen[KindTable] {
		return LevelFull
	}
	if research {
		return LevelPartial
	}
	return LevelNoData
}
