package assessment

import (
	"math"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/spf13/cast"
)

// toNumber coerces a cell to a number. Blank, unparsable and non-finite cells
// are reported as missing rather than zero.
func toNumber(v any) domain.Number {
	if v == nil {
		return domain.Number{}
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return domain.Number{}
		}
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.Number{}
	}
	return domain.Number{Value: f, Valid: true}
}

// Sanitize coerces the resolved columns to numbers and drops rows whose revenue
// or expense is missing. Missing cash-flow cells are kept as missing values.
// The input table is not modified.
func Sanitize(table domain.Table, roles domain.ColumnRoles) (domain.Ledger, error) {
	if table.Len() == 0 {
		return domain.Ledger{}, ErrEmptyDataset
	}

	ledger := domain.Ledger{
		Roles: roles,
		Rows:  make([]domain.LedgerRow, 0, table.Len()),
	}

	for _, record := range table.Rows {
		revenue := toNumber(record[roles.Revenue])
		expense := toNumber(record[roles.Expense])
		if !revenue.Valid || !expense.Valid {
			continue
		}

		row := domain.LedgerRow{Revenue: revenue.Value, Expense: expense.Value}
		if roles.HasCashflow() {
			row.Cashflow = toNumber(record[roles.Cashflow])
		}
		ledger.Rows = append(ledger.Rows, row)
	}

	if len(ledger.Rows) == 0 {
		return domain.Ledger{}, ErrNoValidRecords
	}

	return ledger, nil
}
