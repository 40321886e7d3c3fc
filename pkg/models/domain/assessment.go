package domain

type CashflowStatus string

const (
	CashflowPositive CashflowStatus = "positive"
	CashflowNegative CashflowStatus = "negative"
	CashflowNeutral  CashflowStatus = "neutral"
)

type HealthStatus string

const (
	HealthExcellent HealthStatus = "Excellent"
	HealthGood      HealthStatus = "Good"
	HealthModerate  HealthStatus = "Moderate"
	HealthHighRisk  HealthStatus = "High Risk"
)

type Trend string

const (
	TrendIncreasing       Trend = "increasing"
	TrendDecreasing       Trend = "decreasing"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient data"
)

// BasicMetrics holds unrounded aggregates; rounding is a presentation concern.
type BasicMetrics struct {
	TotalRevenue        float64
	TotalExpense        float64
	NetProfit           float64
	ProfitMarginPercent float64
}

type CashflowMetrics struct {
	AverageCashflow float64
	Status          CashflowStatus
}

type Trends struct {
	Revenue Trend
	Expense Trend
}

// Assessment is the terminal output of the pipeline.
type Assessment struct {
	Rows                   int
	Roles                  ColumnRoles
	BasicMetrics           BasicMetrics
	CashflowMetrics        CashflowMetrics
	HealthScore            int
	HealthStatus           HealthStatus
	KeyInsights            []string
	RiskFlags              []string
	Recommendations        []string
	Trends                 Trends
	HealthScoreExplanation []string
}

// Preview summarises a table without scoring it.
type Preview struct {
	Rows    int
	Columns []string
	Sample  []Record
}
