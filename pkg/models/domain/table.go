package domain

// Record is a single row keyed by column name. Values are strings or numbers.
type Record map[string]any

// Table is an ordered set of records with the column order they were read in.
type Table struct {
	Columns []string
	Rows    []Record
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Role is a logical financial category that must be mapped to a column.
type Role string

const (
	RoleRevenue  Role = "revenue"
	RoleExpense  Role = "expense"
	RoleCashflow Role = "cashflow"
)

// ColumnRoles maps logical roles to column names present in the table.
// Cashflow is empty when no cash-flow column was resolved.
type ColumnRoles struct {
	Revenue  string
	Expense  string
	Cashflow string
}

func (c ColumnRoles) HasCashflow() bool {
	return c.Cashflow != ""
}

// ColumnHints pins explicit column names and bypasses keyword resolution per role.
type ColumnHints struct {
	Revenue  string
	Expense  string
	Cashflow string
}

// Number is a numeric cell that may be missing.
type Number struct {
	Value float64
	Valid bool
}

// LedgerRow is a sanitized row: revenue and expense are always present.
type LedgerRow struct {
	Revenue  float64
	Expense  float64
	Cashflow Number
}

// Ledger is the numeric view of a table after sanitization, in original row order.
type Ledger struct {
	Roles ColumnRoles
	Rows  []LedgerRow
}
