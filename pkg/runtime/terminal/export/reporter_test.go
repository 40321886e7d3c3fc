package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "33.33", FormatAmount(100.0/3))
	assert.Equal(t, "0.13", FormatAmount(0.125))
	assert.Equal(t, "-0.13", FormatAmount(-0.125))
	assert.Equal(t, "250.00", FormatAmount(250))
}

func TestNewAssessmentReport(t *testing.T) {
	report := NewAssessmentReport("ledger.csv", domain.Assessment{
		Rows:  2,
		Roles: domain.ColumnRoles{Revenue: "Revenue", Expense: "Expense"},
		BasicMetrics: domain.BasicMetrics{
			TotalRevenue: 250, TotalExpense: 160, NetProfit: 90, ProfitMarginPercent: 36,
		},
		HealthScore:  100,
		HealthStatus: domain.HealthExcellent,
		KeyInsights:  []string{"Business is profitable."},
	})

	assert.Equal(t, "Financial Health Assessment: ledger.csv", report.Title)
	assert.Equal(t, "100 / 100", report.Summary["Health Score"])

	sections := map[string]domain.ReportSection{}
	for _, s := range report.Sections {
		sections[s.Title] = s
	}
	assert.Equal(t, "none", sections["Columns"].Details[2].Value)
	assert.Equal(t, "Mean of revenue minus expense per row", sections["Cash Flow"].Details[0].Description)
	assert.Equal(t, []string{"Business is profitable."}, sections["Key Insights"].Notes)
	assert.Equal(t, []string{"none"}, sections["Risk Flags"].Notes)
}

func TestReporter_Handle(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out)

	err := r.Handle(&domain.Report{
		Title:   "Report",
		Summary: map[string]interface{}{"b": 2, "a": 1},
		Sections: []domain.ReportSection{
			{Title: "Figures", Details: []domain.ReportDetail{{Name: "Net Profit", Value: "90.00"}}},
			{Title: "Notes", Notes: []string{"first", "second"}},
		},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Less(t, strings.Index(text, "a: 1"), strings.Index(text, "b: 2"))
	assert.Contains(t, text, "=== Figures ===\n+----")
	assert.Contains(t, text, "| Net Profit           | 90.00                    |      |")
	assert.Contains(t, text, "=== Notes ===\n- first\n- second\n")
}

func TestReporter_HandlePreview(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewReporter(out)

	err := r.HandlePreview("ledger.csv", domain.Preview{
		Rows:    3,
		Columns: []string{"Month", "Revenue"},
		Sample: []domain.Record{
			{"Month": "jan", "Revenue": "100"},
			{"Month": strings.Repeat("x", 30), "Revenue": nil},
		},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Rows: 3")
	assert.Contains(t, text, "| Month                | Revenue |")
	assert.Contains(t, text, "| "+strings.Repeat("x", 17)+"... |         |")
}
