package assessment

import "github.com/de-tools/fin-atlas/pkg/services/rules"

// Settings contains the configurable parts of an assessment run.
type Settings struct {
	// RevenueKeywords match revenue columns by substring (default: revenue, sales, income)
	RevenueKeywords []string
	// ExpenseKeywords match expense columns by substring (default: expense, cost)
	ExpenseKeywords []string
	// CashflowKeywords match the optional cash-flow column (default: cashflow, cash_flow, net_cash)
	CashflowKeywords []string
	// LowMarginPercent flags margins strictly below it as a risk (default: 10)
	LowMarginPercent float64
	// StrongMarginPercent reports margins strictly above it as an insight (default: 25)
	StrongMarginPercent float64
	// Rules are extra risk checks evaluated after the built-in ones. May be nil.
	Rules *rules.Set
}

// DefaultSettings returns the stock keyword lists and margin thresholds.
func DefaultSettings() Settings {
	return Settings{
		RevenueKeywords:     []string{"revenue", "sales", "income"},
		ExpenseKeywords:     []string{"expense", "cost"},
		CashflowKeywords:    []string{"cashflow", "cash_flow", "net_cash"},
		LowMarginPercent:    10,
		StrongMarginPercent: 25,
	}
}
