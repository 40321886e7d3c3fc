package assessment

import (
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/rules"
)

const (
	RiskOperatingLoss    = "Business is operating at a loss."
	RiskLowMargin        = "Low profit margin indicates cost inefficiency."
	RiskNegativeCashflow = "Irregular or negative cash flow detected."

	InsightProfitable     = "Business is profitable."
	InsightStrongMargin   = "Strong profit margin compared to industry norms."
	InsightStableCashflow = "Stable positive cash flow."

	RecommendOperatingLoss    = "Review pricing strategy and reduce operating costs to restore profitability."
	RecommendLowMargin        = "Optimize profit margins by renegotiating supplier costs or adjusting pricing."
	RecommendNegativeCashflow = "Improve cash flow management by accelerating receivables and managing payables."
	RecommendStable           = "Business is financially stable. Maintain the current strategy."

	minTrendRows = 2
)

var builtinRecommendations = map[string]string{
	RiskOperatingLoss:    RecommendOperatingLoss,
	RiskLowMargin:        RecommendLowMargin,
	RiskNegativeCashflow: RecommendNegativeCashflow,
}

// Findings are the insights and risk flags of one evaluation. Every check
// contributes to at most one of the two lists.
type Findings struct {
	Insights []string
	Risks    []string
}

// GenerateFindings runs the profitability, margin and cash-flow checks.
// Neutral cash flow is reported with the positive insight.
func GenerateFindings(basic domain.BasicMetrics, cashflow domain.CashflowMetrics, settings Settings) Findings {
	f := Findings{Insights: []string{}, Risks: []string{}}

	if basic.NetProfit <= 0 {
		f.Risks = append(f.Risks, RiskOperatingLoss)
	} else {
		f.Insights = append(f.Insights, InsightProfitable)
	}

	if basic.ProfitMarginPercent < settings.LowMarginPercent {
		f.Risks = append(f.Risks, RiskLowMargin)
	} else if basic.ProfitMarginPercent > settings.StrongMarginPercent {
		f.Insights = append(f.Insights, InsightStrongMargin)
	}

	if cashflow.Status == domain.CashflowNegative {
		f.Risks = append(f.Risks, RiskNegativeCashflow)
	} else {
		f.Insights = append(f.Insights, InsightStableCashflow)
	}

	return f
}

// GenerateTrends compares the first and last ledger rows.
func GenerateTrends(ledger domain.Ledger) domain.Trends {
	if len(ledger.Rows) < minTrendRows {
		return domain.Trends{
			Revenue: domain.TrendInsufficientData,
			Expense: domain.TrendInsufficientData,
		}
	}

	first, last := ledger.Rows[0], ledger.Rows[len(ledger.Rows)-1]
	return domain.Trends{
		Revenue: direction(first.Revenue, last.Revenue),
		Expense: direction(first.Expense, last.Expense),
	}
}

func direction(first, last float64) domain.Trend {
	switch {
	case last > first:
		return domain.TrendIncreasing
	case last < first:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// GenerateRecommendations maps each built-in risk flag to its recommendation, in
// order, then appends the recommendation of every matched operator rule. A rule
// always contributes its own text, even when its risk reads like a built-in one.
func GenerateRecommendations(risks []string, matches []rules.Match) []string {
	recs := make([]string, 0, len(risks)+len(matches))
	for _, risk := range risks {
		if rec, ok := builtinRecommendations[risk]; ok {
			recs = append(recs, rec)
		}
	}
	for _, m := range matches {
		recs = append(recs, m.Recommendation)
	}

	if len(recs) == 0 {
		return []string{RecommendStable}
	}
	return recs
}

func ruleRisks(matches []rules.Match) []string {
	risks := make([]string, 0, len(matches))
	for _, m := range matches {
		risks = append(risks, m.Risk)
	}
	return risks
}
