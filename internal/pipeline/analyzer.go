package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/table-facts/internal/aggregate"
	"github.com/couchcryptid/table-facts/internal/domain"
	"github.com/couchcryptid/table-facts/internal/observability"
)

// TableLoader reads a whole table into raw rows.
type TableLoader interface {
	Load(ctx context.Context, src domain.Source) ([]domain.RawRow, error)
}

// TableAnalyzer loads both tables and reduces them to a report.
// It implements Analyzer.
type TableAnalyzer struct {
	loader    TableLoader
	weather   domain.Source
	countries domain.Source
	workers   int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewAnalyzer creates a TableAnalyzer. workers bounds parse parallelism per
// table; the result does not depend on it.
func NewAnalyzer(loader TableLoader, weather, countries domain.Source, workers int, logger *slog.Logger, metrics *observability.Metrics) *TableAnalyzer {
	return &TableAnalyzer{
		loader:    loader,
		weather:   weather,
		countries: countries,
		workers:   workers,
		logger:    logger,
		metrics:   metrics,
	}
}

// Analyze finds the day with the smallest temperature spread and the country
// with the highest population density. Both tables are always processed, so
// a failure in one does not hide a failure in the other.
func (a *TableAnalyzer) Analyze(ctx context.Context) (domain.Report, error) {
	start := time.Now()

	weather, weatherErr := run(ctx, a, a.weather, aggregate.WeatherSpec)
	country, countryErr := run(ctx, a, a.countries, aggregate.CountrySpec)
	a.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err := errors.Join(weatherErr, countryErr); err != nil {
		a.metrics.Analyses.WithLabelValues("error").Inc()
		return domain.Report{}, err
	}

	report := domain.NewReport(weather.Record, weather.Stats(), country.Record, country.Stats())
	a.metrics.Analyses.WithLabelValues("success").Inc()

	a.logger.Info("analysis complete",
		"report_id", report.ID,
		"day", report.SmallestSpread.Day,
		"spread", report.SmallestSpread.Spread,
		"country", report.HighestDensity.Name,
		"density", report.HighestDensity.Density,
		"weather_dropped", report.WeatherRows.Dropped,
		"country_dropped", report.CountryRows.Dropped,
	)
	return report, nil
}

// run loads one table and aggregates it under spec. Load failures are
// wrapped; aggregation failures are returned as-is so their fixed message
// reaches the caller untouched.
func run[R any, K cmp.Ordered](ctx context.Context, a *TableAnalyzer, src domain.Source, spec aggregate.Spec[R, K]) (aggregate.Result[R], error) {
	rows, err := a.loader.Load(ctx, src)
	if err != nil {
		return aggregate.Result[R]{}, fmt.Errorf("load %s table: %w", spec.Dataset, err)
	}
	a.metrics.RowsRead.WithLabelValues(spec.Dataset).Add(float64(len(rows)))

	res, err := aggregate.Aggregate(rows, spec,
		aggregate.WithWorkers(a.workers),
		aggregate.WithLogSink(aggregate.SlogSink{Logger: a.logger, Dataset: spec.Dataset}),
	)
	a.metrics.RowsDropped.WithLabelValues(spec.Dataset).Add(float64(res.Dropped))
	return res, err
}
