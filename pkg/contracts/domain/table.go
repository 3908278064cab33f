package domain

import (
	"github.com/shopspring/decimal"
)

// CellKind identifies what a cell holds.
type CellKind int

const (
	// CellMissing marks an absent or unparsable value. A missing cell never
	// satisfies a numeric comparison.
	CellMissing CellKind = iota
	// CellText holds a raw string value.
	CellText
	// CellNumber holds a parsed decimal value.
	CellNumber
)

// Cell is a single nullable table value. The zero value is a missing cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
}

// MissingCell returns an explicitly missing cell.
func MissingCell() Cell {
	return Cell{Kind: CellMissing}
}

// TextCell returns a cell holding the given string.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a cell holding the given decimal.
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Number: d}
}

// NumberCellFromFloat returns a numeric cell from a float64.
func NumberCellFromFloat(f float64) Cell {
	return NumberCell(decimal.NewFromFloat(f))
}

// NumberCellFromInt returns a numeric cell from an int.
func NumberCellFromInt(n int) Cell {
	return NumberCell(decimal.NewFromInt(int64(n)))
}

// IsMissing reports whether the cell has no value.
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// Decimal returns the numeric value of the cell. The second return value is
// false for missing and text cells.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	if c.Kind != CellNumber {
		return decimal.Decimal{}, false
	}
	return c.Number, true
}

// String renders the cell for display and composite keys. Missing cells
// render as the empty string, numbers in their canonical decimal form.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Number.String()
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same value. Numbers compare by
// numeric value, so 1.50 equals 1.5.
func (c Cell) Equal(other Cell) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case CellText:
		return c.Text == other.Text
	case CellNumber:
		return c.Number.Equal(other.Number)
	default:
		return true
	}
}

// Row maps column names to cell values.
type Row map[string]Cell

// Get returns the cell for the given column, or a missing cell when the
// column is absent from the row.
func (r Row) Get(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return MissingCell()
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows sharing a column schema. Column order
// is significant for output. Operations treat tables as immutable and return
// new tables instead of mutating their inputs.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column schema.
func NewTable(columns ...string) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{Columns: cols}
}

// HasColumn reports whether the table schema contains the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnSet returns the schema as a set for membership tests.
func (t Table) ColumnSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		set[c] = struct{}{}
	}
	return set
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := NewTable(t.Columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Project returns a new table restricted to the given columns, in the given
// order. Columns absent from a row surface as missing cells.
func (t Table) Project(columns []string) Table {
	out := NewTable(columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = r.Get(col)
		}
		out.Rows[i] = row
	}
	return out
}

// AppendRow adds a row to the table and returns the table for chaining in
// test fixtures.
func (t *Table) AppendRow(r Row) *Table {
	t.Rows = append(t.Rows, r)
	return t
}
