package export

import (
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const none = "none"

// FormatAmount renders v with two decimals, rounding half away from zero.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func notesOrNone(notes []string) []string {
	if len(notes) == 0 {
		return []string{none}
	}
	return notes
}

// NewAssessmentReport lays out an assessment for terminal output.
func NewAssessmentReport(source string, a domain.Assessment) *domain.Report {
	cashflowColumn := a.Roles.Cashflow
	if cashflowColumn == "" {
		cashflowColumn = none
	}
	cashflowDesc := "Mean of the cash-flow column"
	if !a.Roles.HasCashflow() {
		cashflowDesc = "Mean of revenue minus expense per row"
	}

	return &domain.Report{
		Title: fmt.Sprintf("Financial Health Assessment: %s", source),
		Summary: map[string]interface{}{
			"Rows":          a.Rows,
			"Health Score":  fmt.Sprintf("%d / 100", a.HealthScore),
			"Health Status": a.HealthStatus,
		},
		Sections: []domain.ReportSection{
			{
				Title: "Columns",
				Details: []domain.ReportDetail{
					{Name: "Revenue", Value: a.Roles.Revenue},
					{Name: "Expense", Value: a.Roles.Expense},
					{Name: "Cash Flow", Value: cashflowColumn, Description: "Optional"},
				},
			},
			{
				Title: "Basic Metrics",
				Details: []domain.ReportDetail{
					{Name: "Total Revenue", Value: FormatAmount(a.BasicMetrics.TotalRevenue)},
					{Name: "Total Expense", Value: FormatAmount(a.BasicMetrics.TotalExpense)},
					{Name: "Net Profit", Value: FormatAmount(a.BasicMetrics.NetProfit)},
					{
						Name:        "Profit Margin",
						Value:       FormatAmount(a.BasicMetrics.ProfitMarginPercent),
						Unit:        "%",
						Description: "Zero when total revenue is zero",
					},
				},
			},
			{
				Title: "Cash Flow",
				Details: []domain.ReportDetail{
					{Name: "Average Cash Flow", Value: FormatAmount(a.CashflowMetrics.AverageCashflow), Description: cashflowDesc},
					{Name: "Status", Value: a.CashflowMetrics.Status},
				},
			},
			{
				Title: "Trends",
				Details: []domain.ReportDetail{
					{Name: "Revenue", Value: a.Trends.Revenue, Description: "Last row against first row"},
					{Name: "Expense", Value: a.Trends.Expense, Description: "Last row against first row"},
				},
			},
			{Title: "Health Score Explanation", Notes: notesOrNone(a.HealthScoreExplanation)},
			{Title: "Key Insights", Notes: notesOrNone(a.KeyInsights)},
			{Title: "Risk Flags", Notes: notesOrNone(a.RiskFlags)},
			{Title: "Recommendations", Notes: notesOrNone(a.Recommendations)},
		},
	}
}
