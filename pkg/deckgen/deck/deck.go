// Package deck defines the ordered slide plan handed to a renderer.
//
// A Deck never holds raw research text: every slide carries a typed payload
// (title, bullets, or a visualization) built by the planner.
package deck

import (
	"fmt"
	"time"
)

// SlideKind identifies the layout of a slide
type SlideKind int

const (
	KindTitle SlideKind = iota + 1
	KindKeyFindings
	KindBar
	KindPie
	KindTable
	KindContent
)

var slideKindNames = map[SlideKind]string{
	KindTitle:       "title",
	KindKeyFindings: "key_findings",
	KindBar:         "bar",
	KindPie:         "pie",
	KindTable:       "table",
	KindContent:     "content",
}

func (k SlideKind) String() string {
	if name, ok := slideKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("slide_kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k SlideKind) MarshalText() ([]byte, error) {
	if _, ok := slideKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown slide kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SlideKind) UnmarshalText(b []byte) error {
	for kind, name := range slideKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown slide kind %q", string(b))
}

// VizType is the chart family of a VisualizationSpec
type VizType int

const (
	VizBar VizType = iota + 1
	VizPie
	VizTable
)

var vizTypeNames = map[VizType]string{
	VizBar:   "bar",
	VizPie:   "pie",
	VizTable: "table",
}

func (v VizType) String() string {
	if name, ok := vizTypeNames[v]; ok {
		return name
	}
	return fmt.Sprintf("viz_type(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v VizType) MarshalText() ([]byte, error) {
	if _, ok := vizTypeNames[v]; !ok {
		return nil, fmt.Errorf("unknown viz type %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VizType) UnmarshalText(b []byte) error {
	for t, name := range vizTypeNames {
		if name == string(b) {
			*v = t
			return nil
		}
	}
	return fmt.Errorf("unknown viz type %q", string(b))
}

// SlideKind returns the slide layout used to show a visualization of this type.
func (v VizType) SlideKind() SlideKind {
	switch v {
	case VizBar:
		return KindBar
	case VizPie:
		return KindPie
	case VizTable:
		return KindTable
	}
	return KindContent
}

// MaxSeries bounds the entries of a bar or pie chart
const MaxSeries = 8

// Point is one series entry. Percent is only set for pie charts.
type Point struct {
	Label   string   `json:"label"`
	Value   int64    `json:"value"`
	Percent *float64 `json:"percent,omitempty"`
}

// VisualizationSpec describes a chart or table derived from extracted facts
type VisualizationSpec struct {
	Type   VizType `json:"type"`
	Title  string  `json:"title"`
	Series []Point `json:"series"`
}

// Clone returns a deep copy of the spec.
func (v VisualizationSpec) Clone() VisualizationSpec {
	out := VisualizationSpec{Type: v.Type, Title: v.Title}
	if v.Series != nil {
		out.Series = make([]Point, len(v.Series))
		for i, p := range v.Series {
			out.Series[i] = Point{Label: p.Label, Value: p.Value}
			if p.Percent != nil {
				pct := *p.Percent
				out.Series[i].Percent = &pct
			}
		}
	}
	return out
}

// Payload is the kind-specific content of a slide.
// Implementations: TitlePayload, BulletsPayload, ChartPayload.
type Payload interface {
	isPayload()
}

// TitlePayload is the content of the opening slide
type TitlePayload struct {
	Topic    string `json:"topic"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Bullet is a line of slide text. Level 0 is a top-level bullet.
type Bullet struct {
	Text  string `json:"text"`
	Level int    `json:"level,omitempty"`
}

// BulletsPayload is the content of key-findings and content slides
type BulletsPayload struct {
	Items []Bullet `json:"items"`
}

// ChartPayload is the content of bar, pie and table slides
type ChartPayload struct {
	Spec VisualizationSpec `json:"spec"`
}

func (TitlePayload) isPayload()   {}
func (BulletsPayload) isPayload() {}
func (ChartPayload) isPayload()   {}

// SlideSpec is one planned slide. Ordinal starts at 1.
type SlideSpec struct {
	Ordinal     int
	Kind        SlideKind
	Title       string
	Placeholder bool // synthesized text rather than research content
	Payload     Payload
}

// Bullets returns the bullet items of a bullet slide, or nil.
func (s SlideSpec) Bullets() []Bullet {
	if p, ok := s.Payload.(BulletsPayload); ok {
		return p.Items
	}
	return nil
}

// Chart returns the visualization of a chart slide.
func (s SlideSpec) Chart() (VisualizationSpec, bool) {
	if p, ok := s.Payload.(ChartPayload); ok {
		return p.Spec, true
	}
	return VisualizationSpec{}, false
}

// Deck is the complete ordered slide plan
type Deck struct {
	ID        string      `json:"id"`
	Topic     string      `json:"topic"`
	Slides    []SlideSpec `json:"slides"`
	CreatedAt time.Time   `json:"created_at"`
}

// Kinds lists the slide kinds in order.
func (d Deck) Kinds() []SlideKind {
	kinds := make([]SlideKind, len(d.Slides))
	for i, s := range d.Slides {
		kinds[i] = s.Kind
	}
	return kinds
}

// Visuals returns the visualizations present in the deck, in slide order.
func (d Deck) Visuals() []VisualizationSpec {
	var out []VisualizationSpec
	for _, s := range d.Slides {
		if spec, ok := s.Chart(); ok {
			out = append(out, spec)
		}
	}
	return out
}

// Clone returns a deep copy so callers can own and mutate the result.
func (d Deck) Clone() Deck {
	out := Deck{ID: d.ID, Topic: d.Topic, CreatedAt: d.CreatedAt}
	if d.Slides == nil {
		return out
	}
	out.Slides = make([]SlideSpec, len(d.Slides))
	for i, s := range d.Slides {
		cp := s
		switch p := s.Payload.(type) {
		case BulletsPayload:
			items := make([]Bullet, len(p.Items))
			copy(items, p.Items)
			cp.Payload = BulletsPayload{Items: items}
		case ChartPayload:
			cp.Payload = ChartPayload{Spec: p.Spec.Clone()}
		}
		out.Slides[i] = cp
	}
	return out
}
