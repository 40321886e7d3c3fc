package assessment

import (
	"testing"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected domain.Number
	}{
		{name: "float", in: 12.5, expected: domain.Number{Value: 12.5, Valid: true}},
		{name: "int", in: 7, expected: domain.Number{Value: 7, Valid: true}},
		{name: "numeric string", in: " 1e3 ", expected: domain.Number{Value: 1000, Valid: true}},
		{name: "negative string", in: "-42.75", expected: domain.Number{Value: -42.75, Valid: true}},
		{name: "zero string", in: "0", expected: domain.Number{Value: 0, Valid: true}},
		{name: "blank", in: "   ", expected: domain.Number{}},
		{name: "text", in: "n/a", expected: domain.Number{}},
		{name: "nil", in: nil, expected: domain.Number{}},
		{name: "nan", in: "NaN", expected: domain.Number{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toNumber(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	roles := domain.ColumnRoles{Revenue: "revenue", Expense: "expense", Cashflow: "cashflow"}

	t.Run("drops rows with missing revenue or expense", func(t *testing.T) {
		table := domain.Table{
			Columns: []string{"revenue", "expense", "cashflow"},
			Rows: []domain.Record{
				{"revenue": "100", "expense": "80", "cashflow": "20"},
				{"revenue": "abc", "expense": "80", "cashflow": "5"},
				{"revenue": "120", "expense": "", "cashflow": "5"},
				{"revenue": 150.0, "expense": 90, "cashflow": "oops"},
			},
		}

		ledger, err := Sanitize(table, roles)
		require.NoError(t, err)
		require.Len(t, ledger.Rows, 2)
		assert.Equal(t, domain.LedgerRow{Revenue: 100, Expense: 80, Cashflow: domain.Number{Value: 20, Valid: true}}, ledger.Rows[0])
		assert.Equal(t, domain.LedgerRow{Revenue: 150, Expense: 90}, ledger.Rows[1])
		assert.Equal(t, "abc", table.Rows[1]["revenue"], "input table must not be modified")
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := Sanitize(domain.Table{Columns: []string{"revenue", "expense"}}, roles)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("no valid rows", func(t *testing.T) {
		table := domain.Table{
			Columns: []string{"revenue", "expense"},
			Rows: []domain.Record{
				{"revenue": "x", "expense": "1"},
				{"revenue": "2", "expense": "y"},
			},
		}
		_, err := Sanitize(table, roles)
		assert.ErrorIs(t, err, ErrNoValidRecords)
	})
}
