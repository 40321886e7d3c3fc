package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/services/assessment"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerCSV = "Month,Revenue,Expense\njan,100,80\nfeb,150,80\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, cfg config.AppConfig, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cli := NewCLI(Options{Config: cfg, Output: out})
	cli.SetArgs(args)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	err := cli.ExecuteContext(logger.WithContext(context.Background()))
	return out.String(), err
}

func TestCLI_AssessTable(t *testing.T) {
	path := writeFile(t, "ledger.csv", ledgerCSV)

	out, err := run(t, config.AppConfig{}, "assess", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Financial Health Assessment: "+path)
	assert.Contains(t, out, "Health Score: 100 / 100")
	assert.Contains(t, out, "Health Status: Excellent")
	assert.Contains(t, out, "| Total Revenue        | 250.00")
	assert.Contains(t, out, "| Profit Margin        | 36.00                    | %")
	assert.Contains(t, out, "- Business is profitable.")
	assert.Contains(t, out, "- "+assessment.RecommendStable)
	assert.Contains(t, out, "=== Risk Flags ===\n- none")
}

func TestCLI_AssessText(t *testing.T) {
	path := writeFile(t, "ledger.csv", ledgerCSV)

	out, err := run(t, config.AppConfig{}, "assess", path, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Net Profit: 90.00")
	assert.Contains(t, out, "Status: positive")
	assert.NotContains(t, out, "+----")
}

func TestCLI_AssessJSON(t *testing.T) {
	path := writeFile(t, "ledger.csv", "Period,Turnover,Outgoings,Net Cash\nq1,100,120,-5\nq2,90,100,-15\n")

	out, err := run(t, config.AppConfig{}, "assess", path,
		"--format", "json", "--revenue", "Turnover", "--expense", "Outgoings", "--cashflow", "Net Cash")
	require.NoError(t, err)

	var got api.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, api.Columns{Revenue: "Turnover", Expense: "Outgoings", Cashflow: "Net Cash"}, got.Columns)
	assert.Equal(t, -30.0, got.BasicMetrics.NetProfit)
	assert.Equal(t, -10.0, got.CashflowMetrics.AverageCashflow)
	assert.Equal(t, 35, got.HealthScore)
	assert.Equal(t, "High Risk", got.HealthStatus)
	assert.Equal(t, "decreasing", got.Trends.RevenueTrend)
	assert.Equal(t, "decreasing", got.Trends.ExpenseTrend)
}

func TestCLI_AssessWithProfile(t *testing.T) {
	ledger := writeFile(t, "ledger.csv", ledgerCSV)
	profiles := writeFile(t, "profiles.ini", `
[rule.thin_history]
expression     = row_count < 3
risk           = Too few records for a reliable assessment.
recommendation = Upload at least three periods of data.
`)

	out, err := run(t, config.AppConfig{ProfilesPath: profiles}, "assess", ledger, "--format", "json")
	require.NoError(t, err)

	var got api.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Too few records for a reliable assessment."}, got.RiskFlags)
	assert.Equal(t, []string{"Upload at least three periods of data."}, got.Recommendations)
	assert.Equal(t, 100, got.HealthScore)
}

func TestCLI_AssessSQL(t *testing.T) {
	out, err := run(t, config.AppConfig{}, "assess",
		"--driver", "duckdb",
		"--query", "SELECT * FROM (VALUES (100, 80), (150, 80)) AS ledger(revenue, expense)",
		"--format", "json")
	require.NoError(t, err)

	var got api.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 250.0, got.BasicMetrics.TotalRevenue)
	assert.Equal(t, 100, got.HealthScore)
}

func TestCLI_AssessErrors(t *testing.T) {
	ledger := writeFile(t, "ledger.csv", "Month,Notes\njan,x\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
		is      error
	}{
		{name: "no source", args: []string{"assess"}, wantErr: "source file"},
		{name: "query without driver", args: []string{"assess", ledger, "--query", "select 1"}, wantErr: "require --driver"},
		{name: "driver without query", args: []string{"assess", "--driver", "duckdb"}, wantErr: "--query is required"},
		{name: "bad format", args: []string{"assess", ledger, "--format", "xml"}, wantErr: "unsupported format"},
		{name: "unknown profile", args: []string{"assess", ledger, "--profile", "nope"}, is: config.ErrProfileNotFound},
		{name: "missing columns", args: []string{"assess", ledger}, is: assessment.ErrMissingColumn},
		{name: "missing file", args: []string{"assess", filepath.Join(t.TempDir(), "none.csv")}, wantErr: "failed to load"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, config.AppConfig{}, tc.args...)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
			if tc.wantErr != "" {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestCLI_Preview(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Month,Revenue,Expense\n")
	for _, m := range []string{"jan", "feb", "mar", "apr", "may", "jun", "jul"} {
		sb.WriteString(m + ",100,80\n")
	}
	path := writeFile(t, "ledger.csv", sb.String())

	out, err := run(t, config.AppConfig{}, "preview", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rows: 7")
	assert.Contains(t, out, "Columns: Month, Revenue, Expense")
	assert.Contains(t, out, "| Month | Revenue | Expense |")
	assert.Contains(t, out, "| may   | 100     | 80      |")
	assert.NotContains(t, out, "| jun")

	out, err = run(t, config.AppConfig{}, "preview", path, "--format", "json", "--rows", "2")
	require.NoError(t, err)

	var got api.Preview
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 7, got.Rows)
	assert.Len(t, got.Preview, 2)
}

func TestCLI_Profiles(t *testing.T) {
	profiles := writeFile(t, "profiles.ini", `
[strict]
low_margin_percent    = 15
strong_margin_percent = 30

[rule.deep_loss]
profiles       = strict
expression     = profit_margin_percent < -20.0
risk           = Losses exceed a fifth of revenue.
recommendation = Review pricing and fixed costs immediately.
`)

	out, err := run(t, config.AppConfig{}, "profiles", "--profiles-file", profiles)
	require.NoError(t, err)
	assert.Equal(t,
		"default\n  margins: low < 10%, strong > 25%\n  rules: none\n"+
			"strict\n  margins: low < 15%, strong > 30%\n  rules: deep_loss\n",
		out)
}

