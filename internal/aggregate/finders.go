package aggregate

import "github.com/couchcryptid/table-facts/internal/domain"

// Dataset names, used in NoValidRowsError messages, log lines and metric labels.
const (
	DatasetWeather = "weather"
	DatasetCountry = "country"
)

// WeatherSpec selects the day with the smallest temperature spread.
var WeatherSpec = Spec[domain.WeatherDay, int]{
	Dataset:  DatasetWeather,
	Parse:    domain.ParseWeatherRow,
	Key:      domain.WeatherDay.Spread,
	Selector: Min,
}

// CountrySpec selects the country with the highest population density.
var CountrySpec = Spec[domain.Country, float64]{
	Dataset:  DatasetCountry,
	Parse:    domain.ParseCountryRow,
	Key:      domain.Country.Density,
	Selector: Max,
}

// SmallestSpread returns the weather day with the smallest MxT - MnT.
func SmallestSpread(rows []domain.RawRow, opts ...Option) (Result[domain.WeatherDay], error) {
	return Aggregate(rows, WeatherSpec, opts...)
}

// HighestDensity returns the country with the highest population density.
func HighestDensity(rows []domain.RawRow, opts ...Option) (Result[domain.Country], error) {
	return Aggregate(rows, CountrySpec, opts...)
}
