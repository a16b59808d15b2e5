package lint

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rulekit/rulekit/internal/rule"
)

// BodyChecker enforces the house body structure: a title heading, a
// Critical Rules section with actual bullets, and paired valid/invalid
// example blocks.
type BodyChecker struct{}

// Name implements Checker.
func (c *BodyChecker) Name() string { return "body" }

// Description implements Checker.
func (c *BodyChecker) Description() string {
	return "body has a title, a Critical Rules section, and example blocks"
}

var (
	h1Re            = regexp.MustCompile(`(?m)^# \S`)
	criticalRulesRe = regexp.MustCompile(`(?mi)^#{1,6} .*critical rules`)
	bulletRe        = regexp.MustCompile(`(?m)^\s*[-*] \S`)
	exampleOpenRe   = regexp.MustCompile(`<example(\s[^>]*)?>`)
	invalidOpenRe   = regexp.MustCompile(`<example\s+type="invalid"\s*>`)
)

// Check implements Checker.
func (c *BodyChecker) Check(ctx context.Context, r *rule.Rule) []Diagnostic {
	// An unclosed fence already swallowed the body; reporting structure
	// findings on an empty string would just be noise on top of the
	// front-matter error.
	if r.UnclosedFence {
		return nil
	}

	var diags []Diagnostic
	add := func(sev Severity, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{
			Path:     r.Path,
			Check:    c.Name(),
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	body := strings.TrimSpace(r.Body)
	if body == "" {
		add(SeverityError, "rule body is empty; there is nothing to inject into context")
		return diags
	}

	if !h1Re.MatchString(body) {
		add(SeverityWarning, "body has no H1 title")
	}

	if loc := criticalRulesRe.FindStringIndex(body); loc == nil {
		add(SeverityWarning, "body has no Critical Rules section")
	} else {
		section := sectionAfter(body, loc[1])
		if !bulletRe.MatchString(section) {
			add(SeverityWarning, "Critical Rules section has no bullets")
		}
	}

	opens := len(exampleOpenRe.FindAllString(body, -1))
	closes := strings.Count(body, "</example>")
	switch {
	case opens == 0:
		add(SeverityWarning, "body has no <example> block")
	case opens != closes:
		add(SeverityError, "unbalanced <example> tags: %d opened, %d closed", opens, closes)
	case !invalidOpenRe.MatchString(body):
		add(SeverityWarning, `body has no <example type="invalid"> block`)
	}

	return diags
}

// sectionAfter returns body text from offset up to the next heading, i.e.
// the content of the section whose heading ends at offset.
func sectionAfter(body string, offset int) string {
	rest := body[offset:]
	if idx := strings.Index(rest, "\n#"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
