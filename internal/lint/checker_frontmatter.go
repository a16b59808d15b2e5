package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/rulekit/rulekit/internal/rule"
)

// FrontMatterChecker validates the front-matter block itself: presence,
// YAML validity, recognized keys, and the fields each activation kind
// depends on.
type FrontMatterChecker struct{}

// Name implements Checker.
func (c *FrontMatterChecker) Name() string { return "frontmatter" }

// Description implements Checker.
func (c *FrontMatterChecker) Description() string {
	return "front-matter is present, valid YAML, and complete for the rule's kind"
}

// Check implements Checker.
func (c *FrontMatterChecker) Check(ctx context.Context, r *rule.Rule) []Diagnostic {
	var diags []Diagnostic
	add := func(sev Severity, line int, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{
			Path:     r.Path,
			Line:     line,
			Check:    c.Name(),
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if !r.HasFrontMatter {
		add(SeverityWarning, 0, "missing front-matter block; the host tool will treat this as a manual rule")
		return diags
	}

	if r.UnclosedFence {
		add(SeverityError, 1, "front-matter fence is never closed")
		return diags
	}

	if r.MatterErr != nil {
		add(SeverityError, 0, "front-matter is not valid YAML: %v", r.MatterErr)
		return diags
	}

	for _, ke := range r.KeyErrors {
		add(SeverityError, 0, "front-matter key %q has the wrong type: %v", ke.Key, ke.Err)
	}

	for _, key := range r.UnknownKeys {
		add(SeverityWarning, 0, "unrecognized front-matter key %q (recognized: description, globs, alwaysApply)", key)
	}

	// Agent rules are defined by their description, so only auto rules
	// can reach this state with the field blank.
	if r.Kind() == rule.KindAuto && strings.TrimSpace(r.Matter.Description) == "" {
		add(SeverityWarning, 0, "auto rule has no description; listings and audits show it blank")
	}

	return diags
}
