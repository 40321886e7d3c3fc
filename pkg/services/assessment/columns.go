package assessment

import (
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// matchColumn returns the first column, in table order, whose normalized name
// contains any of the keywords.
func matchColumn(columns []string, keywords []string) string {
	for _, col := range columns {
		norm := normalizeColumn(col)
		for _, kw := range keywords {
			kw = normalizeColumn(kw)
			if kw != "" && strings.Contains(norm, kw) {
				return col
			}
		}
	}
	return ""
}

// pinnedColumn looks up a hinted column, exact name first, then normalized.
func pinnedColumn(columns []string, hint string) string {
	for _, col := range columns {
		if col == hint {
			return col
		}
	}
	want := normalizeColumn(hint)
	for _, col := range columns {
		if normalizeColumn(col) == want {
			return col
		}
	}
	return ""
}

func resolveRole(columns []string, hint string, keywords []string) string {
	if hint != "" {
		return pinnedColumn(columns, hint)
	}
	return matchColumn(columns, keywords)
}

// ResolveColumns maps the revenue, expense and cash-flow roles onto table columns.
// Revenue and expense are mandatory; an unresolved cash-flow role is left empty.
// A hint that names a column absent from the table leaves its role unresolved.
func ResolveColumns(columns []string, hints domain.ColumnHints, settings Settings) (domain.ColumnRoles, error) {
	roles := domain.ColumnRoles{
		Revenue:  resolveRole(columns, hints.Revenue, settings.RevenueKeywords),
		Expense:  resolveRole(columns, hints.Expense, settings.ExpenseKeywords),
		Cashflow: resolveRole(columns, hints.Cashflow, settings.CashflowKeywords),
	}

	var missing []domain.Role
	if roles.Revenue == "" {
		missing = append(missing, domain.RoleRevenue)
	}
	if roles.Expense == "" {
		missing = append(missing, domain.RoleExpense)
	}
	if len(missing) > 0 {
		available := make([]string, len(columns))
		copy(available, columns)
		return domain.ColumnRoles{}, &MissingColumnError{Roles: missing, Available: available}
	}

	return roles, nil
}
