package sqlutil

import "database/sql"

// NullInt converts an optional int into a driver-bindable value.
// A nil pointer binds as SQL NULL, which stored procedures must be able
// to distinguish from zero.
func NullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
