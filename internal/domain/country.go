package domain

import (
	"strconv"
	"strings"
)

// Country table columns.
const (
	ColumnName       = "Name"
	ColumnPopulation = "Population"
	ColumnArea       = "Area (km²)"
)

// Country is one row of the countries table.
type Country struct {
	Name       string  `json:"name"`
	Population int64   `json:"population"`
	Area       float64 `json:"area_km2"`
}

// Density is inhabitants per km². A zero area yields 0 rather than +Inf.
func (c Country) Density() float64 {
	if c.Area == 0 {
		return 0
	}
	return float64(c.Population) / c.Area
}

// ParseCountryRow converts a raw country row into a Country. Blank values
// count as missing. Every failure is a *RowParseError.
func ParseCountryRow(row RawRow) (Country, error) {
	name, err := requiredColumn(row, ColumnName)
	if err != nil {
		return Country{}, err
	}
	populationRaw, err := requiredColumn(row, ColumnPopulation)
	if err != nil {
		return Country{}, err
	}
	areaRaw, err := requiredColumn(row, ColumnArea)
	if err != nil {
		return Country{}, err
	}

	population, err := parsePopulation(row, populationRaw)
	if err != nil {
		return Country{}, err
	}
	area, err := parseArea(row, areaRaw)
	if err != nil {
		return Country{}, err
	}

	return Country{Name: name, Population: population, Area: area}, nil
}

func requiredColumn(row RawRow, column string) (string, error) {
	v, ok := row.Get(column)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", &RowParseError{Row: row, Column: column, Err: ErrMissingColumn}
	}
	return v, nil
}

func parsePopulation(row RawRow, raw string) (int64, error) {
	cleaned, err := CleanPopulation(raw)
	if err != nil {
		return 0, &RowParseError{Row: row, Column: ColumnPopulation, Value: raw, Err: err}
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, &RowParseError{Row: row, Column: ColumnPopulation, Value: raw, Err: ErrNotNumeric}
	}
	return v, nil
}

func parseArea(row RawRow, raw string) (float64, error) {
	cleaned, err := CleanArea(raw)
	if err != nil {
		return 0, &RowParseError{Row: row, Column: ColumnArea, Value: raw, Err: err}
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &RowParseError{Row: row, Column: ColumnArea, Value: raw, Err: ErrNotNumeric}
	}
	return v, nil
}
