package rules

import (
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/google/cel-go/cel"
)

// costLimit bounds evaluation of operator supplied expressions.
const costLimit = 100000

// Rule is an operator defined risk check. Expression must evaluate to a bool
// over the variables declared in NewEnv.
type Rule struct {
	ID             string
	Expression     string
	Risk           string
	Recommendation string
}

// Facts are the metrics a rule is evaluated against.
type Facts struct {
	Basic       domain.BasicMetrics
	Cashflow    domain.CashflowMetrics
	HealthScore int
	Rows        int
}

func (f Facts) activation() map[string]any {
	return map[string]any{
		"total_revenue":         f.Basic.TotalRevenue,
		"total_expense":         f.Basic.TotalExpense,
		"net_profit":            f.Basic.NetProfit,
		"profit_margin_percent": f.Basic.ProfitMarginPercent,
		"average_cashflow":      f.Cashflow.AverageCashflow,
		"cashflow_status":       string(f.Cashflow.Status),
		"health_score":          int64(f.HealthScore),
		"row_count":             int64(f.Rows),
	}
}

// Match is a rule whose expression evaluated to true.
type Match struct {
	RuleID         string
	Risk           string
	Recommendation string
}

type compiledRule struct {
	rule    Rule
	program cel.Program
}

// Set is an immutable list of compiled rules, safe for concurrent use.
type Set struct {
	rules []compiledRule
}

// NewEnv declares the variables visible to rule expressions.
func NewEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("total_revenue", cel.DoubleType),
		cel.Variable("total_expense", cel.DoubleType),
		cel.Variable("net_profit", cel.DoubleType),
		cel.Variable("profit_margin_percent", cel.DoubleType),
		cel.Variable("average_cashflow", cel.DoubleType),
		cel.Variable("cashflow_status", cel.StringType),
		cel.Variable("health_score", cel.IntType),
		cel.Variable("row_count", cel.IntType),
	)
}

// NewSet validates and compiles the rules in order.
func NewSet(defs []Rule) (*Set, error) {
	env, err := NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	set := &Set{rules: make([]compiledRule, 0, len(defs))}
	seen := make(map[string]struct{}, len(defs))
	for _, r := range defs {
		if r.ID == "" {
			return nil, fmt.Errorf("rule id cannot be empty")
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("rule %s is defined more than once", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Risk == "" || r.Recommendation == "" {
			return nil, fmt.Errorf("rule %s: risk and recommendation are required", r.ID)
		}

		prog, err := compile(env, r.Expression)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		set.rules = append(set.rules, compiledRule{rule: r, program: prog})
	}

	return set, nil
}

func compile(env *cel.Env, expression string) (cel.Program, error) {
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression must return bool, got %s", ast.OutputType())
	}

	prog, err := env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return prog, nil
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules returns the rule definitions in evaluation order.
func (s *Set) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r.rule)
	}
	return out
}

// Evaluate runs every rule against facts and returns the matches in rule order.
// A nil Set matches nothing.
func (s *Set) Evaluate(facts Facts) ([]Match, error) {
	if s == nil {
		return nil, nil
	}

	vars := facts.activation()
	var matches []Match
	for _, r := range s.rules {
		out, _, err := r.program.Eval(vars)
		if err != nil {
			return nil, fmt.Errorf("rule %s evaluation failed: %w", r.rule.ID, err)
		}
		if matched, ok := out.Value().(bool); ok && matched {
			matches = append(matches, Match{
				RuleID:         r.rule.ID,
				Risk:           r.rule.Risk,
				Recommendation: r.rule.Recommendation,
			})
		}
	}
	return matches, nil
}
