package venue

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnknownKind indicates a kind label outside the known set.
	ErrUnknownKind = errors.New("venue: unknown element kind")
	// ErrMalformedFootprint indicates an undecodable or non-finite footprint.
	ErrMalformedFootprint = errors.New("venue: malformed footprint")
)

// Point is a position in venue pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned footprint between two corner points.
type Rect struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// NewRect returns the normalized rectangle spanned by two arbitrary corners.
func NewRect(a, b Point) Rect {
	return Rect{Start: a, End: b}.Normalize()
}

// Normalize swaps coordinates so that Start ≤ End on each axis.
func (r Rect) Normalize() Rect {
	if r.Start.X > r.End.X {
		r.Start.X, r.End.X = r.End.X, r.Start.X
	}
	if r.Start.Y > r.End.Y {
		r.Start.Y, r.End.Y = r.End.Y, r.Start.Y
	}
	return r
}

// Finite reports whether all four coordinates are finite.
func (r Rect) Finite() bool { return r.Start.Finite() && r.End.Finite() }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Start.X + r.End.X) / 2, Y: (r.Start.Y + r.End.Y) / 2}
}

// Contains reports whether p lies inside r, bounds included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Start.X && p.X <= r.End.X && p.Y >= r.Start.Y && p.Y <= r.End.Y
}

// Kind classifies a venue element.
type Kind int

const (
	// KindOther covers anything unrecognized, such as stages or entrances.
	KindOther Kind = iota
	// KindObstacle is an explicit blocker: walls, pillars, closed areas.
	KindObstacle
	// KindBooth is an exhibitor booth; routable as a destination.
	KindBooth
	// KindBeacon is a BLE beacon mount point.
	KindBeacon
	// KindWalkableZone marks floor area open to visitors.
	KindWalkableZone
	// KindFacility is an enclosed fixture such as a restroom.
	KindFacility
)

var kindNames = [...]string{
	KindOther:        "other",
	KindObstacle:     "obstacle",
	KindBooth:        "booth",
	KindBeacon:       "beacon",
	KindWalkableZone: "walkable",
	KindFacility:     "facility",
}

// String returns the lower-case label of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a label back to a Kind. It accepts the String() labels
// plus the aliases "blocker", "walkable-zone", "restroom" and "bathroom".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "other", "":
		return KindOther, nil
	case "obstacle", "blocker":
		return KindObstacle, nil
	case "booth":
		return KindBooth, nil
	case "beacon":
		return KindBeacon, nil
	case "walkable", "walkable-zone", "walkable_zone":
		return KindWalkableZone, nil
	case "facility", "restroom", "bathroom":
		return KindFacility, nil
	}
	return KindOther, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KindFromName infers a kind from an element's display name. Blockers win
// over booths so that "booth blocker" stays impassable. Names mentioning a
// bathroom, restroom or "other" area are facilities.
func KindFromName(name string) Kind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "blocker"):
		return KindObstacle
	case strings.Contains(n, "booth"):
		return KindBooth
	case strings.Contains(n, "bathroom"), strings.Contains(n, "restroom"), strings.Contains(n, "other"):
		return KindFacility
	case strings.Contains(n, "beacon"):
		return KindBeacon
	case strings.Contains(n, "walkable"), strings.Contains(n, "aisle"):
		return KindWalkableZone
	}
	return KindOther
}

// Element is a single labeled footprint in the venue.
type Element struct {
	ID          string
	Name        string
	Kind        Kind
	Area        Rect
	Center      Point
	Description string
}

// Finite reports whether the element's footprint and center are finite
// numbers. Elements that are not finite are skipped when a venue loads.
func (e Element) Finite() bool { return e.Area.Finite() && e.Center.Finite() }

// NewElement builds an element with a normalized area and its center set to
// the area midpoint. An empty id is replaced by a fresh random one.
func NewElement(id, name string, kind Kind, area Rect) Element {
	if id == "" {
		id = NewID()
	}
	area = area.Normalize()
	return Element{
		ID:     id,
		Name:   strings.TrimSpace(name),
		Kind:   kind,
		Area:   area,
		Center: area.Center(),
	}
}

// NewID returns a random element identifier.
func NewID() string { return uuid.NewString() }

// Set is an ordered collection of elements.
type Set []Element

// ByName finds the first element whose trimmed name matches name, ignoring case.
func (s Set) ByName(name string) (Element, bool) {
	want := strings.TrimSpace(name)
	for _, e := range s {
		if strings.EqualFold(strings.TrimSpace(e.Name), want) {
			return e, true
		}
	}
	return Element{}, false
}

// ByID finds the element with the given id.
func (s Set) ByID(id string) (Element, bool) {
	for _, e := range s {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// OfKind returns the elements of kind k, preserving order.
func (s Set) OfKind(k Kind) Set {
	var out Set
	for _, e := range s {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Extent returns the maximum footprint end point over all elements with a
// finite footprint. ok is false when no such element exists.
func (s Set) Extent() (end Point, ok bool) {
	for _, e := range s {
		if !e.Area.Finite() {
			continue
		}
		a := e.Area.Normalize()
		if !ok {
			end, ok = a.End, true
			continue
		}
		end.X = math.Max(end.X, a.End.X)
		end.Y = math.Max(end.Y, a.End.Y)
	}
	return end, ok
}
