package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RowStats counts how many rows of one table were read, kept, and dropped.
type RowStats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Dropped int `json:"dropped"`
}

// WeatherFact is the winning weather day with its spread spelled out.
type WeatherFact struct {
	WeatherDay
	Spread int `json:"spread"`
}

// CountryFact is the winning country with its density spelled out.
type CountryFact struct {
	Country
	Density float64 `json:"density"`
}

// Report is the outcome of one analysis over both tables.
type Report struct {
	ID             string      `json:"id"`
	GeneratedAt    time.Time   `json:"generated_at"`
	SmallestSpread WeatherFact `json:"smallest_spread"`
	HighestDensity CountryFact `json:"highest_density"`
	WeatherRows    RowStats    `json:"weather_rows"`
	CountryRows    RowStats    `json:"country_rows"`
}

// NewReport stamps the two winners with a fresh ID and the current time.
func NewReport(day WeatherDay, weatherRows RowStats, country Country, countryRows RowStats) Report {
	return Report{
		ID:             uuid.NewString(),
		GeneratedAt:    clock.Now().UTC(),
		SmallestSpread: WeatherFact{WeatherDay: day, Spread: day.Spread()},
		HighestDensity: CountryFact{Country: country, Density: country.Density()},
		WeatherRows:    weatherRows,
		CountryRows:    countryRows,
	}
}

// Lines renders the two result lines printed by the command-line tool.
func (r Report) Lines() []string {
	return []string{
		fmt.Sprintf("Day with smallest temperature spread: %d", r.SmallestSpread.Day),
		fmt.Sprintf("Country with highest population density: %s", r.HighestDensity.Name),
	}
}
