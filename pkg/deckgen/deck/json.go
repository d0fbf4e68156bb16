package deck

import (
	"encoding/json"
	"fmt"
)

type slideJSON struct {
	Ordinal     int             `json:"ordinal"`
	Kind        SlideKind       `json:"kind"`
	Title       string          `json:"title"`
	Placeholder bool            `json:"placeholder,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

// MarshalJSON encodes the payload next to its slide kind.
func (s SlideSpec) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(slideJSON{
		Ordinal:     s.Ordinal,
		Kind:        s.Kind,
		Title:       s.Title,
		Placeholder: s.Placeholder,
		Payload:     payload,
	})
}

// UnmarshalJSON decodes the payload according to the slide kind.
func (s *SlideSpec) UnmarshalJSON(b []byte) error {
	var raw slideJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var payload Payload
	switch raw.Kind {
	case KindTitle:
		var p TitlePayload
		if err := unmarshalPayload(raw.Payload, &p); err != nil {
			return err
		}
		payload = p
	case KindKeyFindings, KindContent:
		var p BulletsPayload
		if err := unmarshalPayload(raw.Payload, &p); err != nil {
			return err
		}
		payload = p
	case KindBar, KindPie, KindTable:
		var p ChartPayload
		if err := unmarshalPayload(raw.Payload, &p); err != nil {
			return err
		}
		payload = p
	default:
		return fmt.Errorf("slide %d: unknown kind %v", raw.Ordinal, raw.Kind)
	}

	*s = SlideSpec{
		Ordinal:     raw.Ordinal,
		Kind:        raw.Kind,
		Title:       raw.Title,
		Placeholder: raw.Placeholder,
		Payload:     payload,
	}
	return nil
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
