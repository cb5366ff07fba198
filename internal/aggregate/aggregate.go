// Package aggregate reduces a table of raw rows to its single extremal
// record. Rows that fail to parse are reported to a LogSink and skipped;
// the scan is left to right and ties keep the earliest row.
package aggregate

import (
	"cmp"
	"errors"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/table-facts/internal/domain"
)

// Selector picks which end of the key ordering wins.
type Selector int

const (
	// Min keeps the record with the smallest key.
	Min Selector = iota
	// Max keeps the record with the largest key.
	Max
)

func (s Selector) String() string {
	if s == Max {
		return "max"
	}
	return "min"
}

// better reports whether candidate strictly beats best under s.
func better[K cmp.Ordered](s Selector, candidate, best K) bool {
	if s == Max {
		return cmp.Compare(candidate, best) > 0
	}
	return cmp.Compare(candidate, best) < 0
}

// ErrNoValidRows is matched by every NoValidRowsError.
var ErrNoValidRows = errors.New("no valid rows")

// NoValidRowsError is returned when no row of the dataset produced a record.
// Its message is fixed so callers can compare it verbatim.
type NoValidRowsError struct {
	Dataset string
}

func (e *NoValidRowsError) Error() string {
	return "No valid " + e.Dataset + " rows found"
}

func (e *NoValidRowsError) Is(target error) bool { return target == ErrNoValidRows }

// Spec describes one aggregation: how to parse a row, which key to compare,
// and which end of the ordering wins.
type Spec[R any, K cmp.Ordered] struct {
	Dataset  string
	Parse    func(domain.RawRow) (R, error)
	Key      func(R) K
	Selector Selector
}

// Result is the winning record plus bookkeeping about the pass.
type Result[R any] struct {
	Record  R
	Index   int // position of Record in the input slice
	Valid   int
	Dropped int
}

// Stats converts the pass counters into domain.RowStats.
func (r Result[R]) Stats() domain.RowStats {
	return domain.RowStats{Total: r.Valid + r.Dropped, Valid: r.Valid, Dropped: r.Dropped}
}

type parsed[R any] struct {
	record R
	err    error
}

// Aggregate parses every row with spec.Parse and returns the record whose
// key wins under spec.Selector. Only a strictly better key replaces the
// running best, so the earliest of equal records wins. Parse failures go to
// the configured LogSink in row order and never reach the caller; an input
// without any valid row yields *NoValidRowsError.
func Aggregate[R any, K cmp.Ordered](rows []domain.RawRow, spec Spec[R, K], opts ...Option) (Result[R], error) {
	o := newOptions(opts)

	var (
		res   Result[R]
		best  K
		found bool
	)
	for i, p := range parse(rows, spec.Parse, o.workers) {
		if p.err != nil {
			res.Dropped++
			o.sink.RowDropped(rows[i], p.err.Error())
			continue
		}
		res.Valid++
		key := spec.Key(p.record)
		if !found || better(spec.Selector, key, best) {
			res.Record, res.Index, best, found = p.record, i, key, true
		}
	}

	if !found {
		return res, &NoValidRowsError{Dataset: spec.Dataset}
	}
	return res, nil
}

// parse yields parse results in row order. With one worker rows are parsed
// lazily as the reduction pulls them; with more, all rows are parsed up front
// into an index-addressed slice and then replayed in order.
func parse[R any](rows []domain.RawRow, fn func(domain.RawRow) (R, error), workers int) iter.Seq2[int, parsed[R]] {
	if workers <= 1 || len(rows) < 2 {
		return func(yield func(int, parsed[R]) bool) {
			for i, row := range rows {
				rec, err := fn(row)
				if !yield(i, parsed[R]{record: rec, err: err}) {
					return
				}
			}
		}
	}

	results := make([]parsed[R], len(rows))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range rows {
		g.Go(func() error {
			rec, err := fn(rows[i])
			results[i] = parsed[R]{record: rec, err: err}
			return nil
		})
	}
	g.Wait()

	return func(yield func(int, parsed[R]) bool) {
		for i, p := range results {
			if !yield(i, p) {
				return
			}
		}
	}
}
