package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
)

const maxParseWorkers = 64

// Config holds all settings, populated from environment variables.
type Config struct {
	WeatherPath        string
	WeatherDelimiter   rune
	CountriesPath      string
	CountriesDelimiter rune
	ParseWorkers       int

	// TableCacheSize bounds the number of parsed tables kept between
	// refreshes. 0 disables caching.
	TableCacheSize int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RefreshSchedule is a standard cron expression or descriptor ("@every 1h").
	RefreshSchedule string

	// Report publishing. Disabled unless brokers are configured.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	weatherDelim, err := parseDelimiter("WEATHER_DELIMITER", ",")
	if err != nil {
		return nil, err
	}
	countriesDelim, err := parseDelimiter("COUNTRIES_DELIMITER", ";")
	if err != nil {
		return nil, err
	}

	workers, err := parseWorkers()
	if err != nil {
		return nil, err
	}

	schedule := sharedcfg.EnvOrDefault("REFRESH_SCHEDULE", "@every 1h")
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE: %w", err)
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		WeatherPath:        sharedcfg.EnvOrDefault("WEATHER_PATH", "data/weather.csv"),
		WeatherDelimiter:   weatherDelim,
		CountriesPath:      sharedcfg.EnvOrDefault("COUNTRIES_PATH", "data/countries.csv"),
		CountriesDelimiter: countriesDelim,
		ParseWorkers:       workers,
		TableCacheSize:     parseTableCacheSize(),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		RefreshSchedule:    schedule,
		KafkaBrokers:       brokers,
		KafkaTopic:         sharedcfg.EnvOrDefault("KAFKA_TOPIC", "table-facts"),
		KafkaEnabled:       kafkaEnabled,
	}

	if cfg.WeatherPath == "" {
		return nil, errors.New("WEATHER_PATH is required")
	}
	if cfg.CountriesPath == "" {
		return nil, errors.New("COUNTRIES_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when publishing is enabled")
	}

	return cfg, nil
}

// parseDelimiter reads a single-character field delimiter. "tab" and `\t`
// both mean a tab.
func parseDelimiter(key, fallback string) (rune, error) {
	s := sharedcfg.EnvOrDefault(key, fallback)
	if s == "tab" || s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid %s: want a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid %s: %q cannot delimit fields", key, s)
	}
	return r, nil
}

func parseWorkers() (int, error) {
	s := os.Getenv("PARSE_WORKERS")
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxParseWorkers {
		return 0, fmt.Errorf("invalid PARSE_WORKERS: must be between 1 and %d", maxParseWorkers)
	}
	return n, nil
}

func parseTableCacheSize() int {
	if s := os.Getenv("TABLE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return 8
}
