package venue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseFootprint decodes a JSON footprint of the form
// {"start":{"x":0,"y":0},"end":{"x":10,"y":20}}. CSV-style doubled quotes
// are accepted. The result is normalized.
func ParseFootprint(s string) (Rect, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, `""`, `"`))
	if raw == "" {
		return Rect{}, fmt.Errorf("%w: empty", ErrMalformedFootprint)
	}
	var wire struct {
		Start *Point `json:"start"`
		End   *Point `json:"end"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrMalformedFootprint, err)
	}
	if wire.Start == nil || wire.End == nil {
		return Rect{}, fmt.Errorf("%w: missing start or end", ErrMalformedFootprint)
	}
	r := NewRect(*wire.Start, *wire.End)
	if !r.Finite() {
		return Rect{}, fmt.Errorf("%w: non-finite coordinates", ErrMalformedFootprint)
	}
	return r, nil
}

// FormatFootprint is the inverse of ParseFootprint.
func FormatFootprint(r Rect) (string, error) {
	if !r.Finite() {
		return "", fmt.Errorf("%w: non-finite coordinates", ErrMalformedFootprint)
	}
	b, err := json.Marshal(r.Normalize())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
