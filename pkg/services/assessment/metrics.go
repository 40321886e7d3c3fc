package assessment

import "github.com/de-tools/fin-atlas/pkg/models/domain"

// ComputeBasicMetrics sums revenue and expense over the ledger. The margin is
// zero only when total revenue is exactly zero.
func ComputeBasicMetrics(ledger domain.Ledger) domain.BasicMetrics {
	var totalRevenue, totalExpense float64
	for _, row := range ledger.Rows {
		totalRevenue += row.Revenue
		totalExpense += row.Expense
	}

	netProfit := totalRevenue - totalExpense
	margin := 0.0
	if totalRevenue != 0 {
		margin = netProfit / totalRevenue * 100
	}

	return domain.BasicMetrics{
		TotalRevenue:        totalRevenue,
		TotalExpense:        totalExpense,
		NetProfit:           netProfit,
		ProfitMarginPercent: margin,
	}
}

// ComputeCashflowMetrics averages the cash-flow column when one was resolved,
// skipping missing cells. Without it, per-row revenue minus expense is used.
func ComputeCashflowMetrics(ledger domain.Ledger) domain.CashflowMetrics {
	var sum float64
	var n int
	for _, row := range ledger.Rows {
		if ledger.Roles.HasCashflow() {
			if !row.Cashflow.Valid {
				continue
			}
			sum += row.Cashflow.Value
		} else {
			sum += row.Revenue - row.Expense
		}
		n++
	}

	avg := 0.0
	if n > 0 {
		avg = sum / float64(n)
	}

	return domain.CashflowMetrics{
		AverageCashflow: avg,
		Status:          cashflowStatus(avg),
	}
}

func cashflowStatus(avg float64) domain.CashflowStatus {
	switch {
	case avg > 0:
		return domain.CashflowPositive
	case avg < 0:
		return domain.CashflowNegative
	default:
		return domain.CashflowNeutral
	}
}
