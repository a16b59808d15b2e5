// Package lint applies convention and validity checks to rule documents.
// Checkers collect diagnostics; commands decide presentation and exit
// codes.
package lint

import (
	"context"
	"fmt"
	"sort"

	"github.com/rulekit/rulekit/internal/rule"
)

// Severity ranks a diagnostic. Error is reserved for documents that are
// invalid (unparseable front-matter, malformed structure); convention
// violations are warnings so they never block a pipeline on their own.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidSeverity reports whether s names a known severity. Used to vet
// config overrides before they reach the registry.
func ValidSeverity(s string) bool {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Diagnostic is a single finding against a document.
type Diagnostic struct {
	// Path of the offending file.
	Path string `json:"path"`

	// Line is 1-based; 0 means the finding applies to the whole file.
	Line int `json:"line,omitempty"`

	// Check names the checker that produced the finding.
	Check string `json:"check"`

	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String renders the conventional path:line prefix form.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: [%s] %s (%s)", d.Path, d.Line, d.Severity, d.Message, d.Check)
	}
	return fmt.Sprintf("%s: [%s] %s (%s)", d.Path, d.Severity, d.Message, d.Check)
}

// Checker examines one parsed rule document. Implementations must be safe
// for concurrent use; the runner fans rules out across goroutines.
type Checker interface {
	// Name is the unique registry key, also used in config and output.
	Name() string

	// Description is a one-line summary for rulekit checks listings.
	Description() string

	// Check returns findings for a single rule. An empty slice means the
	// rule is clean as far as this checker is concerned.
	Check(ctx context.Context, r *rule.Rule) []Diagnostic
}

// Sort orders diagnostics by path, then line, then check name, so output
// is stable regardless of checker scheduling.
func Sort(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Check < diags[j].Check
	})
}

// Count tallies diagnostics at the given severity.
func Count(diags []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// ExitCode implements the shared contract: 0 clean, 1 warnings only,
// 2 any error.
func ExitCode(diags []Diagnostic) int {
	if Count(diags, SeverityError) > 0 {
		return 2
	}
	if Count(diags, SeverityWarning) > 0 {
		return 1
	}
	return 0
}
