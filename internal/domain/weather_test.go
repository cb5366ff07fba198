package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherDay_Spread(t *testing.T) {
	assert.Equal(t, 30, WeatherDay{Day: 1, MaxTemp: 90, MinTemp: 60}.Spread())
	assert.Equal(t, 0, WeatherDay{Day: 3, MaxTemp: 88, MinTemp: 88}.Spread())
	assert.Equal(t, -4, WeatherDay{Day: 4, MaxTemp: 60, MinTemp: 64}.Spread())
}

func TestParseWeatherRow(t *testing.T) {
	t.Run("clean values", func(t *testing.T) {
		day, err := ParseWeatherRow(RowOf("Day", "1", "MxT", "88", "MnT", "59"))
		require.NoError(t, err)
		assert.Equal(t, WeatherDay{Day: 1, MaxTemp: 88, MinTemp: 59}, day)
	})

	t.Run("markers are stripped", func(t *testing.T) {
		day, err := ParseWeatherRow(RowOf("Day", "26", "MxT", "86*", "MnT", "32#"))
		require.NoError(t, err)
		assert.Equal(t, 86, day.MaxTemp)
		assert.Equal(t, 32, day.MinTemp)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		day, err := ParseWeatherRow(RowOf("Day", "2", "MxT", "79", "MnT", "63", "AvT", "71"))
		require.NoError(t, err)
		assert.Equal(t, 16, day.Spread())
	})

	t.Run("negative temperatures", func(t *testing.T) {
		day, err := ParseWeatherRow(RowOf("Day", "5", "MxT", "-2", "MnT", "-11"))
		require.NoError(t, err)
		assert.Equal(t, 9, day.Spread())
	})
}

func TestParseWeatherRow_Failures(t *testing.T) {
	tests := []struct {
		name   string
		row    RawRow
		column string
		cause  error
		reason string
	}{
		{"missing MnT", RowOf("Day", "1", "MxT", "88"), ColumnMinTemp, ErrMissingColumn, "missing_column"},
		{"missing Day", RowOf("MxT", "88", "MnT", "59"), ColumnDay, ErrMissingColumn, "missing_column"},
		{"n/a temperature", RowOf("Day", "1", "MxT", "n/a", "MnT", "59"), ColumnMaxTemp, ErrEmptyAfterCleaning, "empty_after_cleaning"},
		{"blank day", RowOf("Day", "", "MxT", "88", "MnT", "59"), ColumnDay, ErrEmptyAfterCleaning, "empty_after_cleaning"},
		{"lone minus", RowOf("Day", "1", "MxT", "-", "MnT", "59"), ColumnMaxTemp, ErrNotNumeric, "not_numeric"},
		{"minus in the middle", RowOf("Day", "1", "MxT", "8-6", "MnT", "59"), ColumnMaxTemp, ErrNotNumeric, "not_numeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeatherRow(tt.row)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.cause)

			var rowErr *RowParseError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.column, rowErr.Column)
			assert.Equal(t, tt.reason, rowErr.Reason())
			assert.Equal(t, tt.row.String(), rowErr.Row.String())
		})
	}
}

func TestRowParseError_Message(t *testing.T) {
	_, err := ParseWeatherRow(RowOf("Day", "1", "MxT", "n/a", "MnT", "59"))
	require.Error(t, err)
	assert.Equal(t, `column 'MxT': empty after cleaning: "n/a"`, err.Error())

	_, err = ParseWeatherRow(RowOf("Day", "1", "MxT", "88"))
	require.Error(t, err)
	assert.Equal(t, "missing column 'MnT'", err.Error())
}
