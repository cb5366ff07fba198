package domain

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawRow_Get(t *testing.T) {
	row := NewRawRow(3, []string{"Day", "MxT", "MnT"}, []string{"1", "88", "59"})

	v, ok := row.Get("MxT")
	assert.True(t, ok)
	assert.Equal(t, "88", v)

	_, ok = row.Get("AvT")
	assert.False(t, ok)
	assert.Equal(t, 3, row.Line)
	assert.Equal(t, 3, row.Len())
}

func TestNewRawRow_ShortLineDropsTrailingColumns(t *testing.T) {
	row := NewRawRow(2, []string{"Day", "MxT", "MnT"}, []string{"1", "88"})

	_, ok := row.Get("MnT")
	assert.False(t, ok)
	assert.Equal(t, []string{"Day", "MxT"}, row.Columns())
	assert.Equal(t, []string{"Day", "MxT", "MnT"}, row.Header())
}

func TestRowOf_HeaderMatchesColumns(t *testing.T) {
	row := RowOf("Day", "1", "MxT", "88")
	assert.Equal(t, row.Columns(), row.Header())
}

func TestNewRawRow_CopiesInput(t *testing.T) {
	columns := []string{"Day"}
	values := []string{"1"}
	row := NewRawRow(1, columns, values)

	values[0] = "99"
	v, _ := row.Get("Day")
	assert.Equal(t, "1", v)
}

func TestRawRow_String(t *testing.T) {
	row := RowOf("Name", "Malta", "Population", "450000")
	assert.Equal(t, "{Name=Malta, Population=450000}", row.String())
	assert.Equal(t, "{}", RawRow{}.String())
}

func TestRowOf_IgnoresUnpairedColumn(t *testing.T) {
	row := RowOf("Day", "1", "MxT")
	assert.Equal(t, 1, row.Len())
}

func TestResourceError(t *testing.T) {
	err := &ResourceError{Source: "data/weather.csv", Err: ErrResourceNotFound, Cause: fs.ErrNotExist}

	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, errors.Is(err, ErrResourceRead))
	assert.Contains(t, err.Error(), "data/weather.csv")

	bare := &ResourceError{Source: "x.csv", Err: ErrResourceRead}
	assert.Equal(t, "resource read error: x.csv", bare.Error())
}
