// Package tabular reads and appends entity records to header-delimited CSV logs.
//
// Each entity has an explicit Schema; there is no reflection. Appending is the
// only write path: rows are never updated or removed in place.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pable/go-arena-metrics/internal/model"
)

// Delimiter separates fields within a row.
const Delimiter = ','

// Schema maps one entity type to and from a row.
type Schema[T any] interface {
	Columns() []string
	Encode(rec T) []string
	Decode(row Row) (T, error)
}

// Row is a single data row keyed by header column.
type Row struct {
	line   int
	values map[string]string
}

// Line is the 1-based line number of the row in its source.
func (r Row) Line() int {
	return r.line
}

// Get returns the cell for column, failing if the column is absent.
func (r Row) Get(column string) (string, error) {
	v, ok := r.values[column]
	if !ok {
		return "", fmt.Errorf("%w: line %d: missing column %q", model.ErrMalformedRecord, r.line, column)
	}
	return v, nil
}

// NewRow builds a row from explicit values, mainly for tests.
func NewRow(values map[string]string) Row {
	return Row{values: values}
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = 0 // every row must match the header width
	return cr
}

// ReadAll decodes every row of r with s. Any invalid row aborts the read and no
// partial result is returned.
func ReadAll[T any](r io.Reader, s Schema[T]) ([]T, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", model.ErrMalformedRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", model.ErrMalformedRecord, err)
	}
	header = trimBOM(header)
	for _, col := range s.Columns() {
		if !slices.Contains(header, col) {
			return nil, fmt.Errorf("%w: header is missing column %q", model.ErrMalformedRecord, col)
		}
	}

	var out []T
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedRecord, err)
		}
		line, _ := cr.FieldPos(0)
		row := Row{line: line, values: make(map[string]string, len(header))}
		for i, col := range header {
			row.values[col] = fields[i]
		}
		rec, err := s.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadFile opens path and decodes it with s.
func ReadFile[T any](path string, s Schema[T]) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := ReadAll(f, s)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}

// WriteHeader writes the schema's header row.
func WriteHeader[T any](w io.Writer, s Schema[T]) error {
	return writeRow(w, s.Columns())
}

// Append serializes rec as a single row.
func Append[T any](w io.Writer, s Schema[T], rec T) error {
	return writeRow(w, s.Encode(rec))
}

func writeRow(w io.Writer, fields []string) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	if err := cw.Write(fields); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// AppendFile appends rec to path, creating the file with a header if it does
// not exist or is empty. An existing header must match the schema exactly.
// Concurrent writers are not coordinated.
func AppendFile[T any](path string, s Schema[T], rec T) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		if err := WriteHeader(f, s); err != nil {
			return fmt.Errorf("write header %s: %w", path, err)
		}
	} else if err := checkHeader(f, s.Columns()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := Append(f, s, rec); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

// checkHeader reads the first row of f. O_APPEND keeps writes at the end
// regardless of the read offset.
func checkHeader(f *os.File, want []string) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	header, err := newReader(f).Read()
	if err != nil {
		return fmt.Errorf("%w: header: %v", model.ErrMalformedRecord, err)
	}
	if !slices.Equal(trimBOM(header), want) {
		return fmt.Errorf("%w: header %v does not match %v", model.ErrMalformedRecord, header, want)
	}
	if err := endsWithNewline(f); err != nil {
		return err
	}
	return nil
}

// endsWithNewline appends a line break when a previous writer left the last
// row unterminated.
func endsWithNewline(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte("\n"))
	return err
}

func trimBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}
