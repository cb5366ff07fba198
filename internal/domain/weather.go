package domain

import (
	"strconv"
)

// Weather table columns.
const (
	ColumnDay     = "Day"
	ColumnMaxTemp = "MxT"
	ColumnMinTemp = "MnT"
)

// WeatherDay is one day of the weather table.
type WeatherDay struct {
	Day     int `json:"day"`
	MaxTemp int `json:"max_temp"`
	MinTemp int `json:"min_temp"`
}

// Spread is MaxTemp - MinTemp. It is negative when the source reports a
// minimum above the maximum; such rows are still valid.
func (w WeatherDay) Spread() int {
	return w.MaxTemp - w.MinTemp
}

// ParseWeatherRow converts a raw weather row into a WeatherDay. Every
// failure is a *RowParseError.
func ParseWeatherRow(row RawRow) (WeatherDay, error) {
	day, err := intColumn(row, ColumnDay)
	if err != nil {
		return WeatherDay{}, err
	}
	maxTemp, err := intColumn(row, ColumnMaxTemp)
	if err != nil {
		return WeatherDay{}, err
	}
	minTemp, err := intColumn(row, ColumnMinTemp)
	if err != nil {
		return WeatherDay{}, err
	}
	return WeatherDay{Day: day, MaxTemp: maxTemp, MinTemp: minTemp}, nil
}

// intColumn fetches column, strips markers with CleanInteger and parses the
// remainder as an int.
func intColumn(row RawRow, column string) (int, error) {
	raw, ok := row.Get(column)
	if !ok {
		return 0, &RowParseError{Row: row, Column: column, Err: ErrMissingColumn}
	}
	cleaned, err := CleanInteger(raw)
	if err != nil {
		return 0, &RowParseError{Row: row, Column: column, Value: raw, Err: err}
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, &RowParseError{Row: row, Column: column, Value: raw, Err: ErrNotNumeric}
	}
	return v, nil
}
