package extract

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// xlsxSource serves rows from the first sheet of a portal XLSX export.
type xlsxSource struct {
	rows   []*xlsx.Row
	next   int
	header []string
}

func openXLSX(path string) (Source, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "extract: open xlsx")
	}
	if len(f.Sheets) == 0 || len(f.Sheets[0].Rows) == 0 {
		return nil, eris.New("extract: xlsx has no rows")
	}

	sheet := f.Sheets[0]
	header := rowToStrings(sheet.Rows[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &xlsxSource{rows: sheet.Rows[1:], header: header}, nil
}

func (s *xlsxSource) Header() []string { return s.header }

func (s *xlsxSource) Next() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return rowToStrings(row), nil
}

func (s *xlsxSource) Close() error { return nil }

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
