package lint

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rulekit/rulekit/internal/rule"
)

// NamingChecker enforces filename conventions: kebab-case stems, kind
// suffixes that match the front-matter, and clean extensions.
type NamingChecker struct{}

// Name implements Checker.
func (c *NamingChecker) Name() string { return "naming" }

// Description implements Checker.
func (c *NamingChecker) Description() string {
	return "filenames are kebab-case and their kind suffix matches the front-matter"
}

var kebabRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Check implements Checker.
func (c *NamingChecker) Check(ctx context.Context, r *rule.Rule) []Diagnostic {
	var diags []Diagnostic
	add := func(sev Severity, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{
			Path:     r.Path,
			Check:    c.Name(),
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if r.DoubleExt {
		add(SeverityWarning, "stray .mdc.md double extension; rename to %s.mdc", r.Name)
	}

	if !kebabRe.MatchString(r.Name) {
		add(SeverityWarning, "rule name %q is not kebab-case", r.Name)
	}

	if suffixKind, ok := r.SuffixKind(); ok {
		if derived := r.Kind(); suffixKind != derived {
			add(SeverityWarning, "filename suffix says %s but front-matter derives %s", suffixKind, derived)
		}
	}

	return diags
}
