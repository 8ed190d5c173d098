// Package registry exposes hierarchy-aware query operations over the
// locally replicated GAR address registry.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"garmirror/internal/database"
	"garmirror/internal/sqlutil"
)

// ErrInvalidGUID is returned when an identifier-typed operation receives
// a string that is not a canonical GUID. This is distinct from a lookup
// that finds no row.
var ErrInvalidGUID = errors.New("not a canonical GUID")

// searchTextMax bounds free-text search payloads.
const searchTextMax = 500

// Table property names understood by the backing store.
const (
	propCanImport  = "CanImport"
	propLastImport = "LastImport"
)

// Division-independent procedure entry points.
const (
	procLevels           = "UP_Levels"
	procChildren         = "UP_RegistryChildren"
	procIDByGUID         = "UP_IDByGUID"
	procTablePropertyGet = "UP_TablePropertyGet"
	procTablePropertySet = "UP_TablePropertySet"
	procTablesInfo       = "UP_TablesInfo"
	procStatistics       = "UP_Statistics"
	procShrink           = "UP_ShrinkDatabase"
)

// statementURL is the template for the official per-object statement
// document, keyed by the internal numeric identifier.
const statementURL = "https://fias.nalog.ru/Export/ExportPdfStatement?objId=%d&actual=true&division=%d"

// IsGUID reports whether s is a canonical 36-character GUID. Any other
// length is rejected without parsing; anything failing this check is
// treated as free text by Search.
func IsGUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Store answers registry queries through the execution gateway.
type Store struct {
	gw *database.Gateway
}

// NewStore creates a Store over the given gateway.
func NewStore(gw *database.Gateway) *Store {
	return &Store{gw: gw}
}

// Levels returns the fixed classification table of hierarchy ranks.
func (s *Store) Levels(ctx context.Context) ([]Level, error) {
	var out []Level
	err := s.gw.Query(ctx, procLevels, func(rows *sql.Rows) error {
		var err error
		out, err = scanLevels(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Object looks up a single object by GUID under the given division.
// A missing object is a normal outcome: (nil, nil).
func (s *Store) Object(ctx context.Context, division Division, guid string) (*Object, error) {
	if !IsGUID(guid) {
		return nil, fmt.Errorf("%q: %w", guid, ErrInvalidGUID)
	}
	ps, err := division.procs()
	if err != nil {
		return nil, err
	}

	var out []Object
	err = s.gw.Query(ctx, ps.selectObject, func(rows *sql.Rows) error {
		var err error
		out, err = scanObjects(rows)
		return err
	}, guid)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Children returns the direct children of the object identified by guid.
// The child relationship is intrinsic to the object, not to the selected
// hierarchy view.
func (s *Store) Children(ctx context.Context, guid string) ([]Object, error) {
	if !IsGUID(guid) {
		return nil, fmt.Errorf("%q: %w", guid, ErrInvalidGUID)
	}
	var out []Object
	err := s.gw.Query(ctx, procChildren, func(rows *sql.Rows) error {
		var err error
		out, err = scanObjects(rows)
		return err
	}, guid)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Hierarchy returns the ancestor chain of the object under the given
// division, ordered from the root down to the object. The chain is empty
// when the object does not exist under that division.
func (s *Store) Hierarchy(ctx context.Context, division Division, guid string) ([]HierarchyItem, error) {
	if !IsGUID(guid) {
		return nil, fmt.Errorf("%q: %w", guid, ErrInvalidGUID)
	}
	ps, err := division.procs()
	if err != nil {
		return nil, err
	}

	var out []HierarchyItem
	err = s.gw.Query(ctx, ps.hierarchy, func(rows *sql.Rows) error {
		var err error
		out, err = scanHierarchy(rows)
		return err
	}, guid)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search finds objects by full-address text or by GUID. Identifier-shaped
// queries dispatch to the GUID procedure, anything else to text search.
// level restricts results to one hierarchy rank, limit caps the row
// count; nil means unrestricted.
func (s *Store) Search(ctx context.Context, division Division, query string, level, limit *int) ([]Object, error) {
	ps, err := division.procs()
	if err != nil {
		return nil, err
	}

	proc := ps.searchText
	if IsGUID(query) {
		proc = ps.searchGUID
	} else if r := []rune(query); len(r) > searchTextMax {
		query = string(r[:searchTextMax])
	}

	var out []Object
	err = s.gw.Query(ctx, proc, func(rows *sql.Rows) error {
		var err error
		out, err = scanObjects(rows)
		return err
	}, query, sqlutil.NullInt(level), sqlutil.NullInt(limit))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ID resolves the internal numeric identifier for a GUID.
func (s *Store) ID(ctx context.Context, guid string) (int64, error) {
	if !IsGUID(guid) {
		return 0, fmt.Errorf("%q: %w", guid, ErrInvalidGUID)
	}
	var id int64
	if err := s.gw.Scalar(ctx, procIDByGUID, &id, guid); err != nil {
		return 0, err
	}
	return id, nil
}

// StatementURL builds the link to the official statement document for
// the object. Pure formatting over the resolved numeric identifier.
func (s *Store) StatementURL(ctx context.Context, division Division, guid string) (string, error) {
	id, err := s.ID(ctx, guid)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(statementURL, id, division.Code()), nil
}

// TablesInfo returns a snapshot of all tracked tables and their import
// metadata.
func (s *Store) TablesInfo(ctx context.Context) ([]TableInfo, error) {
	var out []TableInfo
	err := s.gw.Query(ctx, procTablesInfo, func(rows *sql.Rows) error {
		var err error
		out, err = scanTableInfo(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CanImport reports whether the operator has enabled the table for
// import runs.
func (s *Store) CanImport(ctx context.Context, table string) (bool, error) {
	var v bool
	if err := s.gw.Scalar(ctx, procTablePropertyGet, &v, table, propCanImport); err != nil {
		return false, err
	}
	return v, nil
}

// SetCanImport toggles the table's import eligibility.
func (s *Store) SetCanImport(ctx context.Context, table string, value bool) error {
	return s.gw.Exec(ctx, procTablePropertySet, table, propCanImport, value)
}

// LastImport returns the timestamp of the table's last successful
// import, or nil when the table has never been imported.
func (s *Store) LastImport(ctx context.Context, table string) (*time.Time, error) {
	var v sql.NullTime
	err := s.gw.Scalar(ctx, procTablePropertyGet, &v, table, propLastImport)
	if err != nil {
		if errors.Is(err, database.ErrAbsent) {
			return nil, nil
		}
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	t := v.Time
	return &t, nil
}

// SetLastImport records a successful import of the table. Only the
// import pipeline calls this, and only on success.
func (s *Store) SetLastImport(ctx context.Context, table string, at time.Time) error {
	return s.gw.Exec(ctx, procTablePropertySet, table, propLastImport, at)
}

// Statistics returns free-form named aggregate metrics for operator
// display.
func (s *Store) Statistics(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	err := s.gw.Query(ctx, procStatistics, func(rows *sql.Rows) error {
		for rows.Next() {
			var name, value string
			if err := rows.Scan(&name, &value); err != nil {
				return err
			}
			out[name] = value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Shrink runs the post-import compaction pass over the backing store.
func (s *Store) Shrink(ctx context.Context) error {
	return s.gw.Exec(ctx, procShrink)
}
