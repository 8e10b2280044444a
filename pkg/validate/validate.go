// Package validate runs rule-based checks against an inspected object and
// aggregates them into a pass/fail result. Rules are a closed tagged list
// of (code, severity, check) triples built once per run; they execute
// independently against a shared read-only context, and output preserves
// registration order for reproducible reporting.
package validate

import "fmt"

// Severity indicates whether a finding blocks ingestion or is advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks ingestion
	SeverityWarning                 // advisory; blocks only under strict policy
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Rule is one validation check. Check returns one message per finding; an
// empty slice means the rule passed. Checks have no side effects on each
// other; scoped host-state changes (edit mode) are restored before return.
type Rule struct {
	Code     string
	Severity Severity
	Check    func(*Context) []string
}

// Item is one reported finding.
type Item struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result aggregates all findings from one run. Passed depends only on
// error-severity findings, never on warnings.
type Result struct {
	Passed   bool   `json:"passed"`
	Errors   []Item `json:"errors"`
	Warnings []Item `json:"warnings"`
}

// Run executes every rule against the context in registration order.
func Run(ctx *Context, rules []Rule) Result {
	result := Result{
		Errors:   []Item{},
		Warnings: []Item{},
	}
	for _, r := range rules {
		for _, msg := range r.Check(ctx) {
			item := Item{Code: r.Code, Message: msg}
			if r.Severity == SeverityError {
				result.Errors = append(result.Errors, item)
			} else {
				result.Warnings = append(result.Warnings, item)
			}
		}
	}
	result.Passed = len(result.Errors) == 0
	return result
}
