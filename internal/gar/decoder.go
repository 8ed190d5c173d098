package gar

import (
	"encoding/xml"
	"io"
)

// Decoder streams rows out of one GAR XML file. Rows are elements named
// after the table's row element; values arrive as attributes. The files
// run to tens of millions of rows, so the whole document is never held
// in memory.
type Decoder struct {
	d     *xml.Decoder
	table Table
}

// NewDecoder creates a Decoder for the given table over r.
func NewDecoder(r io.Reader, table Table) *Decoder {
	return &Decoder{
		d:     xml.NewDecoder(r),
		table: table,
	}
}

// Next returns the values of the next row, aligned with the table's
// column order. Attributes missing from the element come back as nil so
// they bind as SQL NULL. Returns io.EOF after the last row.
func (d *Decoder) Next() ([]interface{}, error) {
	for {
		tok, err := d.d.Token()
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != d.table.Element {
			continue
		}

		attrs := make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			attrs[a.Name.Local] = a.Value
		}

		row := make([]interface{}, len(d.table.Columns))
		for i, col := range d.table.Columns {
			if v, ok := attrs[col]; ok {
				row[i] = v
			}
		}
		return row, nil
	}
}
