// Command challenge prints the day with the smallest temperature spread and
// the country with the highest population density.
//
// Usage:
//
//	go run ./cmd/challenge -weather data/weather.csv -countries data/countries.csv
//
// Table paths and delimiters default to the WEATHER_* and COUNTRIES_*
// environment variables. Dropped rows are logged to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/table-facts/internal/adapter/table"
	"github.com/couchcryptid/table-facts/internal/config"
	"github.com/couchcryptid/table-facts/internal/domain"
	"github.com/couchcryptid/table-facts/internal/observability"
	"github.com/couchcryptid/table-facts/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.WeatherPath, "weather", cfg.WeatherPath, "path to the weather table")
	flag.StringVar(&cfg.CountriesPath, "countries", cfg.CountriesPath, "path to the countries table")
	flag.IntVar(&cfg.ParseWorkers, "workers", cfg.ParseWorkers, "parallel row parsers per table")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel, "text")
	if code := run(context.Background(), cfg, logger, observability.NewMetrics(), os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, out io.Writer) int {
	analyzer := pipeline.NewAnalyzer(
		table.NewLoader(logger),
		domain.Source{Path: cfg.WeatherPath, Delimiter: cfg.WeatherDelimiter},
		domain.Source{Path: cfg.CountriesPath, Delimiter: cfg.CountriesDelimiter},
		cfg.ParseWorkers,
		logger,
		metrics,
	)

	report, err := analyzer.Analyze(ctx)
	if err != nil {
		logger.Error("Error: " + err.Error())
		return 1
	}

	for _, line := range report.Lines() {
		fmt.Fprintln(out, line)
	}
	return 0
}
