package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeader          = errors.New("file has no header row")
)

// DecodeCSV reads a comma separated document whose first row is the header.
// Cells are kept as strings.
func DecodeCSV(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, ErrNoHeader
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := headerColumns(header)
	table := domain.Table{Columns: columns}

	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read csv: %w", err)
		}
		rec, err := makeRecord(columns, fields)
		if err != nil {
			return domain.Table{}, fmt.Errorf("line %d: %w", line, err)
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

// headerColumns cleans header cells: a leading BOM is removed, blank names
// become "Unnamed: i" and repeated names get a ".n" suffix.
func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		used[name] = true
		columns[i] = name
	}
	return columns
}

// makeRecord pairs fields with columns. Short rows are padded with blanks.
// Rows whose cells are all blank are kept; the sanitizer drops them.
func makeRecord(columns []string, fields []string) (domain.Record, error) {
	if len(fields) > len(columns) {
		return nil, fmt.Errorf("expected %d fields, saw %d", len(columns), len(fields))
	}

	rec := make(domain.Record, len(columns))
	for i, col := range columns {
		v := ""
		if i < len(fields) {
			v = fields[i]
		}
		rec[col] = v
	}
	return rec, nil
}
