package importer

import (
	"github.com/elliotchance/orderedmap/v2"
)

// StatusImported marks a table whose load completed and whose import
// timestamp was recorded.
const StatusImported = "imported"

// Result is the operator-facing summary of one import run: a mapping
// from table name to terminal status, in processing order. Only tables
// that were candidates in the run appear.
type Result struct {
	statuses *orderedmap.OrderedMap[string, string]
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{statuses: orderedmap.NewOrderedMap[string, string]()}
}

func (r *Result) add(table, status string) {
	r.statuses.Set(table, status)
}

// Status returns the terminal status recorded for the table.
func (r *Result) Status(table string) (string, bool) {
	return r.statuses.Get(table)
}

// Tables returns the processed table names in processing order.
func (r *Result) Tables() []string {
	return r.statuses.Keys()
}

// Len returns the number of processed tables.
func (r *Result) Len() int {
	return r.statuses.Len()
}

// Each calls fn for every table in processing order.
func (r *Result) Each(fn func(table, status string)) {
	for el := r.statuses.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}
