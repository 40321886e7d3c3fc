package ingest

import "github.com/de-tools/fin-atlas/pkg/models/domain"

const DefaultPreviewRows = 5

// Preview reports the size, columns and first n records of a table.
func Preview(table domain.Table, n int) domain.Preview {
	if n < 0 {
		n = 0
	}
	if n > table.Len() {
		n = table.Len()
	}

	sample := make([]domain.Record, 0, n)
	for _, rec := range table.Rows[:n] {
		cp := make(domain.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		sample = append(sample, cp)
	}

	return domain.Preview{
		Rows:    table.Len(),
		Columns: table.Columns,
		Sample:  sample,
	}
}
