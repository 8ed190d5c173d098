package registry

import (
	"database/sql"
	"time"
)

// Object is one address/administrative entity in the registry.
// Objects are immutable once imported; later imports replace them
// wholesale.
type Object struct {
	// GUID is the stable global identifier, canonical 36-character form.
	GUID string
	// ID is the internal surrogate key, monotonic but not contiguous.
	ID int64
	// TypeName is the short object type ("обл", "г", "ул", ...).
	TypeName string
	// Name is the object's own display name.
	Name string
	// AddressFull is the normalized full-address string used by text search.
	AddressFull string
	// Level is the hierarchy rank of the object.
	Level int
	// ParentGUID references the parent object; null at hierarchy roots.
	ParentGUID sql.NullString
}

// HierarchyItem is one link in an ancestor chain under a division,
// ordered root-first.
type HierarchyItem struct {
	GUID       string
	ID         int64
	TypeName   string
	Name       string
	Level      int
	ParentGUID sql.NullString
}

// Level describes one rung of the hierarchy.
type Level struct {
	ID    int
	Name  string
	Short string
}

// TableInfo is per-table import metadata tracked in the replica.
type TableInfo struct {
	Name     string
	RowCount int64
	TotalMB  float64
	// LastImport is nil when the table has never been imported
	// successfully.
	LastImport *time.Time
	// CanImport is the operator-controlled eligibility flag; false
	// excludes the table from import runs unconditionally.
	CanImport bool
}

func scanObjects(rows *sql.Rows) ([]Object, error) {
	var out []Object
	for rows.Next() {
		var o Object
		if err := rows.Scan(&o.GUID, &o.ID, &o.TypeName, &o.Name, &o.AddressFull, &o.Level, &o.ParentGUID); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func scanHierarchy(rows *sql.Rows) ([]HierarchyItem, error) {
	var out []HierarchyItem
	for rows.Next() {
		var h HierarchyItem
		if err := rows.Scan(&h.GUID, &h.ID, &h.TypeName, &h.Name, &h.Level, &h.ParentGUID); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func scanLevels(rows *sql.Rows) ([]Level, error) {
	var out []Level
	for rows.Next() {
		var l Level
		if err := rows.Scan(&l.ID, &l.Name, &l.Short); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func scanTableInfo(rows *sql.Rows) ([]TableInfo, error) {
	var out []TableInfo
	for rows.Next() {
		var (
			t    TableInfo
			last sql.NullTime
		)
		if err := rows.Scan(&t.Name, &t.RowCount, &t.TotalMB, &last, &t.CanImport); err != nil {
			return nil, err
		}
		if last.Valid {
			v := last.Time
			t.LastImport = &v
		}
		out = append(out, t)
	}
	return out, nil
}
