package api

import (
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

type BasicMetrics struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalExpense        float64 `json:"total_expense"`
	NetProfit           float64 `json:"net_profit"`
	ProfitMarginPercent float64 `json:"profit_margin_percent"`
}

type CashflowMetrics struct {
	AverageCashflow float64 `json:"average_cashflow"`
	CashflowStatus  string  `json:"cashflow_status"`
}

type Trends struct {
	RevenueTrend string `json:"revenue_trend"`
	ExpenseTrend string `json:"expense_trend"`
}

type Columns struct {
	Revenue  string `json:"revenue"`
	Expense  string `json:"expense"`
	Cashflow string `json:"cashflow,omitempty"`
}

type Assessment struct {
	Rows                   int             `json:"rows"`
	Columns                Columns         `json:"columns"`
	BasicMetrics           BasicMetrics    `json:"basic_metrics"`
	CashflowMetrics        CashflowMetrics `json:"cashflow_metrics"`
	HealthScore            int             `json:"health_score"`
	HealthStatus           string          `json:"health_status"`
	KeyInsights            []string        `json:"key_insights"`
	RiskFlags              []string        `json:"risk_flags"`
	Recommendations        []string        `json:"recommendations"`
	Trends                 Trends          `json:"trends"`
	HealthScoreExplanation []string        `json:"health_score_explanation"`
}

type Preview struct {
	Status  string           `json:"status"`
	Rows    int              `json:"rows"`
	Columns []string         `json:"columns"`
	Preview []map[string]any `json:"preview"`
}

type Error struct {
	Error            string   `json:"error"`
	Message          string   `json:"message"`
	MissingRoles     []string `json:"missing_roles,omitempty"`
	AvailableColumns []string `json:"available_columns,omitempty"`
}

type Profile struct {
	Name  string   `json:"name"`
	Rules []string `json:"rules"`
}

// Round2 rounds a value to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// FromAssessment converts a domain assessment, rounding metrics for presentation.
func FromAssessment(a domain.Assessment) Assessment {
	return Assessment{
		Rows: a.Rows,
		Columns: Columns{
			Revenue:  a.Roles.Revenue,
			Expense:  a.Roles.Expense,
			Cashflow: a.Roles.Cashflow,
		},
		BasicMetrics: BasicMetrics{
			TotalRevenue:        Round2(a.BasicMetrics.TotalRevenue),
			TotalExpense:        Round2(a.BasicMetrics.TotalExpense),
			NetProfit:           Round2(a.BasicMetrics.NetProfit),
			ProfitMarginPercent: Round2(a.BasicMetrics.ProfitMarginPercent),
		},
		CashflowMetrics: CashflowMetrics{
			AverageCashflow: Round2(a.CashflowMetrics.AverageCashflow),
			CashflowStatus:  string(a.CashflowMetrics.Status),
		},
		HealthScore:     a.HealthScore,
		HealthStatus:    string(a.HealthStatus),
		KeyInsights:     nonNil(a.KeyInsights),
		RiskFlags:       nonNil(a.RiskFlags),
		Recommendations: nonNil(a.Recommendations),
		Trends: Trends{
			RevenueTrend: string(a.Trends.Revenue),
			ExpenseTrend: string(a.Trends.Expense),
		},
		HealthScoreExplanation: nonNil(a.HealthScoreExplanation),
	}
}

func FromPreview(p domain.Preview) Preview {
	sample := make([]map[string]any, 0, len(p.Sample))
	for _, r := range p.Sample {
		sample = append(sample, map[string]any(r))
	}
	columns := p.Columns
	if columns == nil {
		columns = []string{}
	}
	return Preview{
		Status:  "success",
		Rows:    p.Rows,
		Columns: columns,
		Preview: sample,
	}
}
