// Package extract reads raw BRFSS portal exports (CSV or XLSX) as untyped
// rows. Column order is not assumed; the first row is the header.
package extract

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// Source yields the header row once and then data rows one at a time.
type Source interface {
	Header() []string
	// Next returns the next data row, or io.EOF when exhausted. A non-EOF
	// error is skippable only when SkippableRow reports it so; anything
	// else means the underlying reader failed and the caller must stop.
	Next() ([]string, error)
	Close() error
}

// SkippableRow reports whether a Next error covers a single malformed row
// that the parser has already advanced past. Reader failures (truncated or
// unreadable input) are not skippable: retrying Next would fail forever.
func SkippableRow(err error) bool {
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}

// Open opens a raw extract file, choosing the reader by extension. A non-empty
// charset (an IANA name, e.g. "windows-1252") decodes CSV input before
// parsing; XLSX content is always UTF-8.
func Open(path, charset string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return openXLSX(path)
	default:
		return openCSV(path, charset)
	}
}

type csvSource struct {
	f      *os.File
	reader *csv.Reader
	header []string
}

func openCSV(path, charset string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "extract: open csv")
	}

	var r io.Reader = f
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			f.Close()
			return nil, eris.Wrapf(err, "extract: unknown charset %q", charset)
		}
		r = enc.NewDecoder().Reader(f)
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err != nil {
		f.Close()
		return nil, eris.Wrap(err, "extract: read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	return &csvSource{f: f, reader: reader, header: header}, nil
}

func (s *csvSource) Header() []string { return s.header }

func (s *csvSource) Next() ([]string, error) {
	record, err := s.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, eris.Wrap(err, "extract: read csv row")
	}
	return record, nil
}

func (s *csvSource) Close() error { return s.f.Close() }
