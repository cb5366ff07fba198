// Package table loads delimited-text and spreadsheet tables into raw rows.
package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/table-facts/internal/domain"
)

// Loader reads whole tables into memory. The first line holds the headers,
// blank lines are skipped, and every cell is whitespace-trimmed.
// It implements pipeline.TableLoader.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads src. Files ending in .xlsx are read from their first sheet;
// anything else is parsed as delimited text. Failures are *domain.ResourceError.
func (l *Loader) Load(ctx context.Context, src domain.Source) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(src.Path); err != nil {
		return nil, resourceError(src.Path, err)
	}

	var (
		rows []domain.RawRow
		err  error
	)
	if strings.EqualFold(filepath.Ext(src.Path), ".xlsx") {
		rows, err = readXLSX(src.Path)
	} else {
		rows, err = readCSVFile(src.Path, src.Delimiter)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("table loaded", "path", src.Path, "rows", len(rows))
	return rows, nil
}

func readCSVFile(path string, delimiter rune) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, resourceError(path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f, delimiter)
	if err != nil {
		return nil, &domain.ResourceError{Source: path, Err: domain.ErrResourceRead, Cause: err}
	}
	return rows, nil
}

// ReadCSV parses delimited text. Rows shorter than the header simply lack
// the trailing columns; rows longer than it keep only the named ones.
func ReadCSV(r io.Reader, delimiter rune) ([]domain.RawRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	b := newBuilder(header)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		b.add(line, record)
	}
	return b.rows, nil
}

func readXLSX(path string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.ResourceError{Source: path, Err: domain.ErrResourceRead, Cause: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.ResourceError{Source: path, Err: domain.ErrResourceRead, Cause: errors.New("workbook has no sheets")}
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &domain.ResourceError{Source: path, Err: domain.ErrResourceRead, Cause: err}
	}

	// Leading blank rows are not headers.
	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, nil
	}

	b := newBuilder(records[start])
	for i := start + 1; i < len(records); i++ {
		b.add(i+1, records[i])
	}
	return b.rows, nil
}

// builder turns header + records into RawRows with trimmed cells.
type builder struct {
	header []string
	rows   []domain.RawRow
}

func newBuilder(header []string) *builder {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return &builder{header: trimAll(header)}
}

func (b *builder) add(line int, record []string) {
	if isBlank(record) {
		return
	}
	b.rows = append(b.rows, domain.NewRawRow(line, b.header, trimAll(record)))
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func resourceError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.ResourceError{Source: path, Err: domain.ErrResourceNotFound, Cause: err}
	}
	return &domain.ResourceError{Source: path, Err: domain.ErrResourceRead, Cause: err}
}
