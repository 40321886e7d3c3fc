package ingest

import (
	"fmt"
	"io"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the first worksheet of a workbook. The first row is the
// header; raw cell values are used so number formats do not leak into cells.
func DecodeXLSX(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return domain.Table{}, ErrNoHeader
	}

	columns := headerColumns(rows[0])
	table := domain.Table{Columns: columns}
	for i, cells := range rows[1:] {
		rec, err := makeRecord(columns, cells)
		if err != nil {
			return domain.Table{}, fmt.Errorf("sheet %q row %d: %w", sheets[0], i+2, err)
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}
