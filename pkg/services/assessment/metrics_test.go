package assessment

import (
	"testing"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func ledgerOf(pairs ...[2]float64) domain.Ledger {
	ledger := domain.Ledger{Roles: domain.ColumnRoles{Revenue: "revenue", Expense: "expense"}}
	for _, p := range pairs {
		ledger.Rows = append(ledger.Rows, domain.LedgerRow{Revenue: p[0], Expense: p[1]})
	}
	return ledger
}

func TestComputeBasicMetrics(t *testing.T) {
	tests := []struct {
		name     string
		ledger   domain.Ledger
		expected domain.BasicMetrics
	}{
		{
			name:   "profitable",
			ledger: ledgerOf([2]float64{100, 80}, [2]float64{150, 80}),
			expected: domain.BasicMetrics{
				TotalRevenue: 250, TotalExpense: 160, NetProfit: 90, ProfitMarginPercent: 36,
			},
		},
		{
			name:   "loss",
			ledger: ledgerOf([2]float64{100, 150}),
			expected: domain.BasicMetrics{
				TotalRevenue: 100, TotalExpense: 150, NetProfit: -50, ProfitMarginPercent: -50,
			},
		},
		{
			name:   "zero revenue guards the margin",
			ledger: ledgerOf([2]float64{0, 40}),
			expected: domain.BasicMetrics{
				TotalRevenue: 0, TotalExpense: 40, NetProfit: -40, ProfitMarginPercent: 0,
			},
		},
		{
			name:   "negative revenue still divides",
			ledger: ledgerOf([2]float64{-100, 50}),
			expected: domain.BasicMetrics{
				TotalRevenue: -100, TotalExpense: 50, NetProfit: -150, ProfitMarginPercent: 150,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeBasicMetrics(tt.ledger)
			assert.Equal(t, tt.expected, m)
			assert.Equal(t, m.TotalRevenue-m.TotalExpense, m.NetProfit)
		})
	}
}

func TestComputeCashflowMetrics(t *testing.T) {
	t.Run("derived from revenue minus expense", func(t *testing.T) {
		m := ComputeCashflowMetrics(ledgerOf([2]float64{100, 80}, [2]float64{150, 80}))
		assert.Equal(t, domain.CashflowMetrics{AverageCashflow: 45, Status: domain.CashflowPositive}, m)
	})

	t.Run("negative", func(t *testing.T) {
		m := ComputeCashflowMetrics(ledgerOf([2]float64{100, 150}))
		assert.Equal(t, domain.CashflowMetrics{AverageCashflow: -50, Status: domain.CashflowNegative}, m)
	})

	t.Run("neutral", func(t *testing.T) {
		m := ComputeCashflowMetrics(ledgerOf([2]float64{100, 120}, [2]float64{100, 80}))
		assert.Equal(t, domain.CashflowNeutral, m.Status)
		assert.Zero(t, m.AverageCashflow)
	})

	t.Run("dedicated column skips missing cells", func(t *testing.T) {
		ledger := domain.Ledger{
			Roles: domain.ColumnRoles{Revenue: "r", Expense: "e", Cashflow: "c"},
			Rows: []domain.LedgerRow{
				{Revenue: 1, Expense: 1, Cashflow: domain.Number{Value: -30, Valid: true}},
				{Revenue: 1, Expense: 1},
				{Revenue: 1, Expense: 1, Cashflow: domain.Number{Value: -10, Valid: true}},
			},
		}
		m := ComputeCashflowMetrics(ledger)
		assert.Equal(t, domain.CashflowMetrics{AverageCashflow: -20, Status: domain.CashflowNegative}, m)
	})

	t.Run("dedicated column with no values is neutral", func(t *testing.T) {
		ledger := domain.Ledger{
			Roles: domain.ColumnRoles{Revenue: "r", Expense: "e", Cashflow: "c"},
			Rows:  []domain.LedgerRow{{Revenue: 10, Expense: 1}},
		}
		m := ComputeCashflowMetrics(ledger)
		assert.Equal(t, domain.CashflowNeutral, m.Status)
	})
}
