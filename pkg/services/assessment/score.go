package assessment

import (
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

const (
	baseScore = 50

	profitBonus       = 20
	highMarginBonus   = 15
	mediumMarginBonus = 10
	cashflowBonus     = 15
	cashflowPenalty   = -15

	highMarginPercent   = 20
	mediumMarginPercent = 10
)

// scoreContribution is one line of the score ledger.
type scoreContribution struct {
	points int
	reason string
}

func profitContribution(basic domain.BasicMetrics) scoreContribution {
	if basic.NetProfit > 0 {
		return scoreContribution{profitBonus, "Net profit is positive"}
	}
	return scoreContribution{0, "Net profit is zero or negative"}
}

func marginContribution(basic domain.BasicMetrics) scoreContribution {
	switch {
	case basic.ProfitMarginPercent > highMarginPercent:
		return scoreContribution{highMarginBonus, "Profit margin is above 20%"}
	case basic.ProfitMarginPercent > mediumMarginPercent:
		return scoreContribution{mediumMarginBonus, "Profit margin is above 10%"}
	default:
		return scoreContribution{0, "Profit margin is 10% or lower"}
	}
}

func cashflowContribution(cashflow domain.CashflowMetrics) scoreContribution {
	switch cashflow.Status {
	case domain.CashflowPositive:
		return scoreContribution{cashflowBonus, "Cash flow is positive"}
	case domain.CashflowNegative:
		return scoreContribution{cashflowPenalty, "Cash flow is negative"}
	default:
		return scoreContribution{0, "Cash flow is neutral"}
	}
}

func contributions(basic domain.BasicMetrics, cashflow domain.CashflowMetrics) []scoreContribution {
	return []scoreContribution{
		profitContribution(basic),
		marginContribution(basic),
		cashflowContribution(cashflow),
	}
}

// ComputeHealthScore folds the metrics into a score clamped to [0, 100].
func ComputeHealthScore(basic domain.BasicMetrics, cashflow domain.CashflowMetrics) int {
	score := baseScore
	for _, c := range contributions(basic, cashflow) {
		score += c.points
	}
	return clamp(score, 0, 100)
}

// ExplainHealthScore returns one line per scoring rule with the points it added.
func ExplainHealthScore(basic domain.BasicMetrics, cashflow domain.CashflowMetrics) []string {
	cs := contributions(basic, cashflow)
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, formatContribution(c))
	}
	return lines
}

func formatContribution(c scoreContribution) string {
	return fmt.Sprintf("%+d: %s", c.points, c.reason)
}

// ClassifyHealth maps a score to its band; bands are checked top-down.
func ClassifyHealth(score int) domain.HealthStatus {
	switch {
	case score >= 80:
		return domain.HealthExcellent
	case score >= 60:
		return domain.HealthGood
	case score >= 40:
		return domain.HealthModerate
	default:
		return domain.HealthHighRisk
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
