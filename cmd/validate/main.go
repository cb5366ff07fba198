// Command validate checks the weather and countries tables row by row. It
// lists every row the analysis would drop, with the reason, and reports
// whether each table still yields a result.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -weather data/weather.csv \
//	  -countries data/countries.csv \
//	  -strict
//
// Without -strict, dropped rows are listed but only a table without any
// valid row fails validation.
package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/table-facts/internal/adapter/table"
	"github.com/couchcryptid/table-facts/internal/aggregate"
	"github.com/couchcryptid/table-facts/internal/config"
	"github.com/couchcryptid/table-facts/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.WeatherPath, "weather", cfg.WeatherPath, "path to the weather table")
	flag.StringVar(&cfg.CountriesPath, "countries", cfg.CountriesPath, "path to the countries table")
	strict := flag.Bool("strict", false, "fail when any row is dropped")
	flag.Parse()

	if code := run(context.Background(), cfg, *strict, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Config, strict bool, out io.Writer) int {
	loader := table.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))

	fmt.Fprintln(out, "=== Table Validation ===")
	fmt.Fprintln(out)

	weatherRows, err := loader.Load(ctx, domain.Source{Path: cfg.WeatherPath, Delimiter: cfg.WeatherDelimiter})
	if err != nil {
		fmt.Fprintf(out, "FATAL: load weather table: %v\n", err)
		return 1
	}
	countryRows, err := loader.Load(ctx, domain.Source{Path: cfg.CountriesPath, Delimiter: cfg.CountriesDelimiter})
	if err != nil {
		fmt.Fprintf(out, "FATAL: load countries table: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeaders(weatherRows, countryRows),
		validateDataset(weatherRows, aggregate.WeatherSpec, strict, func(d domain.WeatherDay) string {
			return fmt.Sprintf("day %d (spread %d)", d.Day, d.Spread())
		}),
		validateDataset(countryRows, aggregate.CountrySpec, strict, func(c domain.Country) string {
			return fmt.Sprintf("%s (%.2f per km²)", c.Name, c.Density())
		}),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		} else if len(p.warnings) > 0 {
			status = fmt.Sprintf("\033[33mPASS (%d dropped)\033[0m", len(p.warnings))
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d weather, %d countries\n", len(weatherRows), len(countryRows))

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
		for _, w := range p.warnings {
			fmt.Fprintf(out, "  (dropped) %s\n", w)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Headers ──
// Every column the parsers read must be present in the header row.

var requiredColumns = map[string][]string{
	aggregate.DatasetWeather: {domain.ColumnDay, domain.ColumnMaxTemp, domain.ColumnMinTemp},
	aggregate.DatasetCountry: {domain.ColumnName, domain.ColumnPopulation, domain.ColumnArea},
}

func validateHeaders(weather, countries []domain.RawRow) *phase {
	p := &phase{name: "Phase 1: Headers"}
	checkHeaders(p, aggregate.DatasetWeather, weather)
	checkHeaders(p, aggregate.DatasetCountry, countries)
	return p
}

func checkHeaders(p *phase, dataset string, rows []domain.RawRow) {
	if len(rows) == 0 {
		p.errorf("%s: table has no data rows", dataset)
		return
	}
	present := make(map[string]bool)
	for _, col := range rows[0].Header() {
		present[col] = true
	}
	for _, col := range requiredColumns[dataset] {
		if !present[col] {
			p.errorf("%s: missing column %q", dataset, col)
		}
	}
}

// ── Phase 2/3: Rows ──
// Parses every row exactly as the analysis does.

func validateDataset[R any, K cmp.Ordered](rows []domain.RawRow, spec aggregate.Spec[R, K], strict bool, describe func(R) string) *phase {
	p := &phase{name: fmt.Sprintf("Rows: %s", spec.Dataset)}

	report := p.warnf
	if strict {
		report = p.errorf
	}
	sink := aggregate.LogSinkFunc(func(row domain.RawRow, reason string) {
		report("line %d: %s: %s", row.Line, reason, row)
	})

	res, err := aggregate.Aggregate(rows, spec, aggregate.WithLogSink(sink))
	if errors.Is(err, aggregate.ErrNoValidRows) {
		p.errorf("%v", err)
		return p
	}
	p.name = fmt.Sprintf("Rows: %s (%d/%d valid, winner %s)",
		spec.Dataset, res.Valid, res.Valid+res.Dropped, describe(res.Record))
	return p
}
