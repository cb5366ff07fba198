package aggregate

import (
	"log/slog"

	"github.com/couchcryptid/table-facts/internal/domain"
)

// LogSink observes rows dropped during aggregation. It never influences the
// result. Calls arrive sequentially in row order.
type LogSink interface {
	RowDropped(row domain.RawRow, reason string)
}

// LogSinkFunc adapts a plain function to LogSink.
type LogSinkFunc func(row domain.RawRow, reason string)

func (f LogSinkFunc) RowDropped(row domain.RawRow, reason string) { f(row, reason) }

// Discard ignores every dropped row.
var Discard LogSink = LogSinkFunc(func(domain.RawRow, string) {})

// SlogSink writes one WARN line per dropped row.
type SlogSink struct {
	Logger  *slog.Logger
	Dataset string
}

func (s SlogSink) RowDropped(row domain.RawRow, reason string) {
	s.Logger.Warn("skipping invalid row",
		"dataset", s.Dataset,
		"line", row.Line,
		"row", row,
		"reason", reason,
	)
}
