// Package store persists venue geometry and beacon aliases in SQLite.
//
// Only the inputs of the engine are stored. Grids, routes and position
// estimates are always recomputed.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/sofiagarciadougherty/InMaps/venue"
)

//go:embed schema.sql
var schema string

// Store wraps the venue database.
type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db}, nil
}

// LoadReport describes rows LoadElements could not decode.
type LoadReport struct {
	Loaded  int
	Skipped []string // ids of rows with a malformed footprint or kind
}

// SaveElements replaces the stored venue with elements, keeping their order.
func (s *Store) SaveElements(ctx context.Context, elements []venue.Element) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM elements"); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO elements
			(id, position, name, kind, footprint, center_x, center_y, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range elements {
			fp, err := venue.FormatFootprint(e.Area)
			if err != nil {
				return fmt.Errorf("element %q: %w", e.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, e.ID, i, e.Name, e.Kind.String(), fp, e.Center.X, e.Center.Y, e.Description); err != nil {
				return fmt.Errorf("insert element %q: %w", e.ID, err)
			}
		}
		return nil
	})
}

// LoadElements returns the stored venue in saved order. Rows whose
// footprint or kind cannot be decoded are skipped and reported.
func (s *Store) LoadElements(ctx context.Context) ([]venue.Element, LoadReport, error) {
	var rep LoadReport
	rows, err := s.QueryContext(ctx, `SELECT id, name, kind, footprint, center_x, center_y, description
		FROM elements ORDER BY position, id`)
	if err != nil {
		return nil, rep, err
	}
	defer rows.Close()

	var elements []venue.Element
	for rows.Next() {
		var (
			id, name, kind, footprint, description string
			cx, cy                                 sql.NullFloat64
		)
		if err := rows.Scan(&id, &name, &kind, &footprint, &cx, &cy, &description); err != nil {
			return nil, rep, err
		}
		area, err := venue.ParseFootprint(footprint)
		if err != nil {
			rep.Skipped = append(rep.Skipped, id)
			continue
		}
		k, err := venue.ParseKind(kind)
		if err != nil {
			rep.Skipped = append(rep.Skipped, id)
			continue
		}
		e := venue.NewElement(id, name, k, area)
		if cx.Valid && cy.Valid {
			e.Center = venue.Point{X: cx.Float64, Y: cy.Float64}
		}
		e.Description = description
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, rep, err
	}
	rep.Loaded = len(elements)
	return elements, rep, nil
}

// SaveAliases replaces the stored alias table.
func (s *Store) SaveAliases(ctx context.Context, aliases map[string]string) error {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM beacon_aliases"); err != nil {
			return err
		}
		for _, alias := range keys {
			if _, err := tx.ExecContext(ctx, "INSERT INTO beacon_aliases (alias, beacon_id) VALUES (?, ?)", alias, aliases[alias]); err != nil {
				return fmt.Errorf("insert alias %q: %w", alias, err)
			}
		}
		return nil
	})
}

// LoadAliases returns the stored alias table.
func (s *Store) LoadAliases(ctx context.Context) (map[string]string, error) {
	rows, err := s.QueryContext(ctx, "SELECT alias, beacon_id FROM beacon_aliases")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var alias, id string
		if err := rows.Scan(&alias, &id); err != nil {
			return nil, err
		}
		out[alias] = id
	}
	return out, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
