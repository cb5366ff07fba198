package domain

import (
	"log/slog"
	"strings"
)

// RawRow is one data line of a delimited table: the header names in source
// order paired with the cell values found on that line.
type RawRow struct {
	header  []string // full header line; columns is a prefix of it
	columns []string
	values  []string

	// Line is the 1-based source line (or sheet row) the values came from.
	// Zero when the row was built in memory.
	Line int
}

// NewRawRow pairs header names with cell values. Columns beyond the end of
// values are treated as absent, which is how short lines surface as missing
// columns.
func NewRawRow(line int, columns, values []string) RawRow {
	n := min(len(columns), len(values))
	header := append([]string(nil), columns...)
	return RawRow{
		header:  header,
		columns: header[:n:n],
		values:  append([]string(nil), values[:n]...),
		Line:    line,
	}
}

// RowOf builds a RawRow from alternating column/value pairs, e.g.
// RowOf("Day", "1", "MxT", "88"). A trailing unpaired column is ignored.
func RowOf(pairs ...string) RawRow {
	columns := make([]string, 0, len(pairs)/2)
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		columns = append(columns, pairs[i])
		values = append(values, pairs[i+1])
	}
	return RawRow{header: columns, columns: columns, values: values}
}

// Get returns the value stored under column and whether the column exists.
func (r RawRow) Get(column string) (string, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return "", false
}

// Columns returns the names of the columns this row has values for, in
// source order.
func (r RawRow) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Header returns every column named on the header line, including those a
// short line has no value for.
func (r RawRow) Header() []string {
	return append([]string(nil), r.header...)
}

// Len reports the number of columns the row carries.
func (r RawRow) Len() int { return len(r.columns) }

// String renders the row as {Day=1, MxT=88} in column order.
func (r RawRow) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteByte('=')
		b.WriteString(r.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

// LogValue keeps log lines compact: the row is logged as its String form.
func (r RawRow) LogValue() slog.Value {
	return slog.StringValue(r.String())
}
