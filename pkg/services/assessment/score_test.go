package assessment

import (
	"testing"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeHealthScore(t *testing.T) {
	tests := []struct {
		name        string
		basic       domain.BasicMetrics
		cashflow    domain.CashflowStatus
		expected    int
		explanation []string
	}{
		{
			name:     "all bonuses",
			basic:    domain.BasicMetrics{NetProfit: 90, ProfitMarginPercent: 36},
			cashflow: domain.CashflowPositive,
			expected: 100,
			explanation: []string{
				"+20: Net profit is positive",
				"+15: Profit margin is above 20%",
				"+15: Cash flow is positive",
			},
		},
		{
			name:     "loss with negative cash flow",
			basic:    domain.BasicMetrics{NetProfit: -50, ProfitMarginPercent: -50},
			cashflow: domain.CashflowNegative,
			expected: 35,
			explanation: []string{
				"+0: Net profit is zero or negative",
				"+0: Profit margin is 10% or lower",
				"-15: Cash flow is negative",
			},
		},
		{
			name:     "medium margin and neutral cash flow",
			basic:    domain.BasicMetrics{NetProfit: 15, ProfitMarginPercent: 15},
			cashflow: domain.CashflowNeutral,
			expected: 80,
			explanation: []string{
				"+20: Net profit is positive",
				"+10: Profit margin is above 10%",
				"+0: Cash flow is neutral",
			},
		},
		{
			name:     "margin thresholds are exclusive",
			basic:    domain.BasicMetrics{NetProfit: 0, ProfitMarginPercent: 20},
			cashflow: domain.CashflowNeutral,
			expected: 60,
			explanation: []string{
				"+0: Net profit is zero or negative",
				"+10: Profit margin is above 10%",
				"+0: Cash flow is neutral",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf := domain.CashflowMetrics{Status: tt.cashflow}
			score := ComputeHealthScore(tt.basic, cf)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, score, ComputeHealthScore(tt.basic, cf), "score must be deterministic")
			assert.Equal(t, tt.explanation, ExplainHealthScore(tt.basic, cf))
		})
	}
}

func TestComputeHealthScore_Bounds(t *testing.T) {
	margins := []float64{-1000, -10, 0, 10, 10.01, 20, 20.01, 1000}
	profits := []float64{-1, 0, 1}
	statuses := []domain.CashflowStatus{domain.CashflowPositive, domain.CashflowNegative, domain.CashflowNeutral}

	for _, m := range margins {
		for _, p := range profits {
			for _, s := range statuses {
				score := ComputeHealthScore(
					domain.BasicMetrics{NetProfit: p, ProfitMarginPercent: m},
					domain.CashflowMetrics{Status: s},
				)
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}

func TestClassifyHealth(t *testing.T) {
	tests := []struct {
		score    int
		expected domain.HealthStatus
	}{
		{100, domain.HealthExcellent},
		{80, domain.HealthExcellent},
		{79, domain.HealthGood},
		{60, domain.HealthGood},
		{59, domain.HealthModerate},
		{40, domain.HealthModerate},
		{39, domain.HealthHighRisk},
		{0, domain.HealthHighRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyHealth(tt.score), "score %d", tt.score)
	}
}

func TestClassifyHealth_Monotonic(t *testing.T) {
	rank := map[domain.HealthStatus]int{
		domain.HealthHighRisk:  0,
		domain.HealthModerate:  1,
		domain.HealthGood:      2,
		domain.HealthExcellent: 3,
	}

	prev := rank[ClassifyHealth(0)]
	for score := 1; score <= 100; score++ {
		cur := rank[ClassifyHealth(score)]
		assert.GreaterOrEqual(t, cur, prev, "status dropped at score %d", score)
		prev = cur
	}
}
