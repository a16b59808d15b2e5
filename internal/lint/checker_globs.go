package lint

import (
	"context"
	"fmt"
	"path"

	"github.com/rulekit/rulekit/internal/rule"
)

// GlobsChecker validates glob patterns syntactically. It never matches
// project files against them; activation is the host tool's business.
type GlobsChecker struct{}

// Name implements Checker.
func (c *GlobsChecker) Name() string { return "globs" }

// Description implements Checker.
func (c *GlobsChecker) Description() string {
	return "glob patterns compile and agree with the other activation keys"
}

// Check implements Checker.
func (c *GlobsChecker) Check(ctx context.Context, r *rule.Rule) []Diagnostic {
	var diags []Diagnostic
	add := func(sev Severity, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{
			Path:     r.Path,
			Check:    c.Name(),
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, pattern := range r.Matter.Globs.Patterns {
		if pattern == "" {
			add(SeverityWarning, "empty glob pattern (stray comma or blank list item)")
			continue
		}
		// path.Match on each / segment: ** is a literal doublestar to
		// path.Match but legal in the host tool, so only per-segment
		// syntax errors (unclosed character classes, trailing
		// backslashes) are flagged.
		if _, err := path.Match(pattern, "probe"); err != nil {
			add(SeverityError, "malformed glob pattern %q: %v", pattern, err)
		}
	}

	if r.QuotedGlobs {
		add(SeverityWarning, "glob patterns are quoted; the host tool requires bare scalars")
	}

	if len(r.Matter.Globs.Patterns) > 0 && r.Matter.AlwaysApply != nil && *r.Matter.AlwaysApply {
		add(SeverityWarning, "globs are ignored when alwaysApply is true; drop one or the other")
	}

	return diags
}
