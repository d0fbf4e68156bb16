package plan

import (
	"crypto/rand"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/oklog/ulid/v2"
)

const (
	// MaxKeyFindings is the hard upper bound of bullets on slide 2.
	MaxKeyFindings = 22

	DefaultTopic     = "Untitled Presentation"
	KeyFindingsTitle = "Key Research Findings"
	researchSubtitle = "Research-Enhanced Presentation"
	supportingDetail = 3
)

// Planner assembles the ordered slide sequence
type Planner struct {
	maxKeyFindings int

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a planner. maxKeyFindings is clamped to [0, MaxKeyFindings];
// a negative value selects the maximum.
func New(maxKeyFindings int) *Planner {
	if maxKeyFindings < 0 || maxKeyFindings > MaxKeyFindings {
		maxKeyFindings = MaxKeyFindings
	}
	return &Planner{
		maxKeyFindings: maxKeyFindings,
		entropy:        ulid.Monotonic(rand.Reader, 0),
	}
}

// Input is everything the planner needs for one deck
type Input struct {
	Topic      string
	SlideCount int
	Research   bool // research text was supplied, even if nothing was extracted
	NoData     bool // absent input, or zero facts and zero bullets
	Visuals    []deck.VisualizationSpec
	Bullets    []string
}

// Stats reports planning decisions
type Stats struct {
	KeyFindings    int
	LeftoverUnused int
	VisualsDropped []deck.VizType
	Placeholders   int
	TopicDefaulted bool
}

// Plan builds exactly max(1, SlideCount) slides. It never fails: missing data
// is replaced by synthesized placeholder text.
func (p *Planner) Plan(in Input) (deck.Deck, Stats) {
	var st Stats

	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		topic = DefaultTopic
		st.TopicDefaulted = true
	}
	n := in.SlideCount
	if n < 1 {
		n = 1
	}

	d := deck.Deck{Topic: topic, Slides: make([]deck.SlideSpec, 0, n)}
	add := func(s deck.SlideSpec) {
		s.Ordinal = len(d.Slides) + 1
		d.Slides = append(d.Slides, s)
	}

	subtitle := ""
	if in.Research {
		subtitle = researchSubtitle
	}
	add(deck.SlideSpec{
		Kind:    deck.KindTitle,
		Title:   topic,
		Payload: deck.TitlePayload{Topic: topic, Subtitle: subtitle},
	})
	if n == 1 {
		st.VisualsDropped = vizTypes(in.Visuals)
		return d, st
	}

	bullets := in.Bullets
	if in.NoData {
		bullets = nil
	}
	kf := bullets
	if len(kf) > p.maxKeyFindings {
		kf = kf[:p.maxKeyFindings]
	}
	st.KeyFindings = len(kf)
	add(deck.SlideSpec{
		Kind:    deck.KindKeyFindings,
		Title:   KeyFindingsTitle,
		Payload: deck.BulletsPayload{Items: toBullets(kf)},
	})

	visuals := orderVisuals(in.Visuals)
	if slots := n - len(d.Slides); len(visuals) > slots {
		st.VisualsDropped = vizTypes(visuals[slots:])
		visuals = visuals[:slots]
	}
	for _, v := range visuals {
		add(deck.SlideSpec{
			Kind:    v.Type.SlideKind(),
			Title:   v.Title,
			Payload: deck.ChartPayload{Spec: v.Clone()},
		})
	}

	content := n - len(d.Slides)
	leftover := bullets[len(kf):]
	groups := distribute(leftover, content)
	if content == 0 {
		st.LeftoverUnused = len(leftover)
	}

	for i := 0; i < content; i++ {
		ordinal := len(d.Slides) + 1
		s := deck.SlideSpec{
			Kind:  deck.KindContent,
			Title: fmt.Sprintf("%s - Point %d", topic, i+1),
		}
		switch {
		case in.NoData:
			s.Placeholder = true
			s.Payload = deck.BulletsPayload{Items: placeholder(topic, ordinal)}
		case len(groups[i]) == 0:
			s.Placeholder = true
			s.Payload = deck.BulletsPayload{Items: []deck.Bullet{
				{Text: fmt.Sprintf("Additional insights related to %s", topic)},
			}}
		default:
			s.Payload = deck.BulletsPayload{Items: toBullets(groups[i])}
		}
		if s.Placeholder {
			st.Placeholders++
		}
		add(s)
	}

	return d, st
}

// Stamp assigns a fresh ULID and creation time to a planned deck.
func (p *Planner) Stamp(d *deck.Deck, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d.ID = ulid.MustNew(ulid.Timestamp(now), p.entropy).String()
	d.CreatedAt = now
}

// placeholder follows the fixed no-data template for the slide at ordinal.
func placeholder(topic string, ordinal int) []deck.Bullet {
	items := []deck.Bullet{{Text: fmt.Sprintf("Key concept %d related to %s", ordinal, topic)}}
	for j := 1; j <= supportingDetail; j++ {
		items = append(items, deck.Bullet{
			Text:  fmt.Sprintf("Supporting detail %d for concept %d", j, ordinal),
			Level: 1,
		})
	}
	return items
}

// distribute assigns bullets round-robin to k groups. Each group keeps the
// original relative order and no bullet lands in two groups.
func distribute(bullets []string, k int) [][]string {
	groups := make([][]string, k)
	if k == 0 {
		return groups
	}
	for i, b := range bullets {
		groups[i%k] = append(groups[i%k], b)
	}
	return groups
}

// orderVisuals sorts by priority bar, pie, table so that trimming the tail
// drops the lowest-priority charts first.
func orderVisuals(in []deck.VisualizationSpec) []deck.VisualizationSpec {
	out := make([]deck.VisualizationSpec, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type < out[j].Type
	})
	return out
}

func vizTypes(specs []deck.VisualizationSpec) []deck.VizType {
	if len(specs) == 0 {
		return nil
	}
	out := make([]deck.VizType, len(specs))
	for i, s := range specs {
		out[i] = s.Type
	}
	return out
}

func toBullets(lines []string) []deck.Bullet {
	items := make([]deck.Bullet, len(lines))
	for i, l := range lines {
		items[i] = deck.Bullet{Text: l}
	}
	return items
}
