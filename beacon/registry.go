package beacon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

// Sentinel errors, all in the inmaps.ErrValidation class.
var (
	// ErrEmptyID indicates an empty beacon id or alias.
	ErrEmptyID = fmt.Errorf("beacon: empty identifier: %w", inmaps.ErrValidation)
	// ErrUnknownBeacon indicates an id that resolves to no registered beacon.
	ErrUnknownBeacon = fmt.Errorf("beacon: unknown beacon: %w", inmaps.ErrValidation)
	// ErrDuplicateBeacon indicates a second registration of the same id.
	ErrDuplicateBeacon = fmt.Errorf("beacon: beacon already registered: %w", inmaps.ErrValidation)
	// ErrAliasConflict indicates an alias that collides with a canonical id
	// or is already bound to another beacon.
	ErrAliasConflict = fmt.Errorf("beacon: alias conflict: %w", inmaps.ErrValidation)
	// ErrBadPosition indicates a beacon element whose center is not a
	// finite point.
	ErrBadPosition = fmt.Errorf("beacon: position is not finite: %w", inmaps.ErrValidation)
)

// Reading is one raw scan result: an identifier as advertised (possibly
// an alias) and its received signal strength in dBm.
type Reading struct {
	ID   string  `json:"uuid" yaml:"id"`
	RSSI float64 `json:"rssi" yaml:"rssi"`
}

// Registry maps canonical beacon ids to grid cells.
type Registry struct {
	positions map[string]occupancy.Cell
	aliases   map[string]string   // alias → canonical
	reverse   map[string][]string // canonical → aliases
	folded    map[string]string   // folded key → canonical; "" when ambiguous
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		positions: make(map[string]occupancy.Cell),
		aliases:   make(map[string]string),
		reverse:   make(map[string][]string),
		folded:    make(map[string]string),
	}
}

// FromElements registers every beacon-kind element under its id at the
// cell containing its center. A non-empty name that differs from the id is
// added as an alias. A beacon with a non-finite center fails with
// ErrBadPosition.
func FromElements(elements []venue.Element, cellSize float64) (*Registry, error) {
	r := NewRegistry()
	for _, e := range elements {
		if e.Kind != venue.KindBeacon {
			continue
		}
		if !e.Center.Finite() {
			return nil, fmt.Errorf("%w: beacon %q at %v", ErrBadPosition, e.ID, e.Center)
		}
		if err := r.Register(e.ID, occupancy.PointToCell(e.Center, cellSize)); err != nil {
			return nil, err
		}
	}
	for _, e := range elements {
		if e.Kind != venue.KindBeacon || e.Name == "" || e.Name == e.ID {
			continue
		}
		if err := r.AddAlias(e.Name, e.ID); err != nil {
			return nil, fmt.Errorf("beacon %q name: %w", e.ID, err)
		}
	}
	return r, nil
}

// Register adds a beacon with its canonical grid position.
func (r *Registry) Register(id string, at occupancy.Cell) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := r.positions[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBeacon, id)
	}
	if _, ok := r.aliases[id]; ok {
		return fmt.Errorf("%w: %q is already an alias", ErrAliasConflict, id)
	}
	r.positions[id] = at
	r.fold(id, id)
	return nil
}

// AddAlias binds alias to the canonical id. Re-adding an identical binding
// is a no-op.
func (r *Registry) AddAlias(alias, canonical string) error {
	if alias == "" || canonical == "" {
		return ErrEmptyID
	}
	if _, ok := r.positions[canonical]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBeacon, canonical)
	}
	if _, ok := r.positions[alias]; ok {
		return fmt.Errorf("%w: %q is a canonical id", ErrAliasConflict, alias)
	}
	if prev, ok := r.aliases[alias]; ok {
		if prev == canonical {
			return nil
		}
		return fmt.Errorf("%w: %q already maps to %q", ErrAliasConflict, alias, prev)
	}
	r.aliases[alias] = canonical
	r.reverse[canonical] = append(r.reverse[canonical], alias)
	r.fold(alias, canonical)
	return nil
}

// Resolve returns the canonical id for a raw identifier.
func (r *Registry) Resolve(raw string) (string, bool) {
	if _, ok := r.positions[raw]; ok {
		return raw, true
	}
	if id, ok := r.aliases[raw]; ok {
		return id, true
	}
	if id := r.folded[foldKey(raw)]; id != "" {
		return id, true
	}
	return "", false
}

// Position returns the cell of a canonical beacon id.
func (r *Registry) Position(id string) (occupancy.Cell, bool) {
	c, ok := r.positions[id]
	return c, ok
}

// Lookup resolves raw and returns the canonical id with its position.
func (r *Registry) Lookup(raw string) (string, occupancy.Cell, bool) {
	id, ok := r.Resolve(raw)
	if !ok {
		return "", occupancy.Cell{}, false
	}
	return id, r.positions[id], true
}

// Aliases lists the aliases bound to a canonical id, sorted.
func (r *Registry) Aliases(id string) []string {
	out := append([]string(nil), r.reverse[id]...)
	sort.Strings(out)
	return out
}

// IDs lists the canonical ids, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.positions))
	for id := range r.positions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered beacons.
func (r *Registry) Len() int { return len(r.positions) }

func (r *Registry) fold(key, canonical string) {
	k := foldKey(key)
	if k == "" {
		return
	}
	if prev, ok := r.folded[k]; ok && prev != canonical {
		r.folded[k] = ""
		return
	}
	r.folded[k] = canonical
}

var foldReplacer = strings.NewReplacer("-", "", ":", "", " ", "")

func foldKey(s string) string {
	return strings.ToLower(foldReplacer.Replace(strings.TrimSpace(s)))
}
