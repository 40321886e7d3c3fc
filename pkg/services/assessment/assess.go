package assessment

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/rules"
	"github.com/rs/zerolog"
)

// Assess runs the full pipeline over a parsed table: column resolution,
// sanitization, metrics, score and narrative. The table is never modified.
//
// Input problems are reported as ErrEmptyDataset, ErrNoValidRecords or a
// *MissingColumnError. Any other error is a defect.
func Assess(ctx context.Context, table domain.Table, hints domain.ColumnHints, settings Settings) (domain.Assessment, error) {
	logger := zerolog.Ctx(ctx)

	if table.Len() == 0 {
		return domain.Assessment{}, ErrEmptyDataset
	}

	roles, err := ResolveColumns(table.Columns, hints, settings)
	if err != nil {
		return domain.Assessment{}, err
	}
	logger.Debug().
		Str("revenue", roles.Revenue).
		Str("expense", roles.Expense).
		Str("cashflow", roles.Cashflow).
		Msg("resolved financial columns")

	ledger, err := Sanitize(table, roles)
	if err != nil {
		return domain.Assessment{}, err
	}
	if dropped := table.Len() - len(ledger.Rows); dropped > 0 {
		logger.Debug().Int("dropped", dropped).Msg("dropped rows with non-numeric revenue or expense")
	}

	basic := ComputeBasicMetrics(ledger)
	cashflow := ComputeCashflowMetrics(ledger)
	if !finite(basic.TotalRevenue, basic.TotalExpense, basic.NetProfit, basic.ProfitMarginPercent, cashflow.AverageCashflow) {
		return domain.Assessment{}, fmt.Errorf("%w: total revenue %v, total expense %v, average cash flow %v",
			ErrNonFiniteMetrics, basic.TotalRevenue, basic.TotalExpense, cashflow.AverageCashflow)
	}
	score := ComputeHealthScore(basic, cashflow)

	findings := GenerateFindings(basic, cashflow, settings)
	matches, err := settings.Rules.Evaluate(rules.Facts{
		Basic:       basic,
		Cashflow:    cashflow,
		HealthScore: score,
		Rows:        len(ledger.Rows),
	})
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("failed to evaluate extra rules: %w", err)
	}

	result := domain.Assessment{
		Rows:                   len(ledger.Rows),
		Roles:                  roles,
		BasicMetrics:           basic,
		CashflowMetrics:        cashflow,
		HealthScore:            score,
		HealthStatus:           ClassifyHealth(score),
		KeyInsights:            findings.Insights,
		RiskFlags:              slices.Concat(findings.Risks, ruleRisks(matches)),
		Recommendations:        GenerateRecommendations(findings.Risks, matches),
		Trends:                 GenerateTrends(ledger),
		HealthScoreExplanation: ExplainHealthScore(basic, cashflow),
	}

	logger.Debug().
		Int("score", result.HealthScore).
		Str("status", string(result.HealthStatus)).
		Int("risks", len(result.RiskFlags)).
		Msg("assessment completed")

	return result, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
