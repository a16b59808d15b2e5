package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/rule"
)

func checkOne(t *testing.T, c Checker, src string) []Diagnostic {
	t.Helper()
	r := rule.Parse("rules/test-rule.mdc", []byte(src))
	return c.Check(context.Background(), r)
}

func TestFrontMatterChecker_CleanRule(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, `---
description: Python conventions
globs: *.py
alwaysApply: false
---
body
`)
	assert.Empty(t, diags)
}

func TestFrontMatterChecker_Missing(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, "# no fence here\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "missing front-matter")
}

func TestFrontMatterChecker_UnclosedFence(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, "---\ndescription: d\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, 1, diags[0].Line)
}

func TestFrontMatterChecker_InvalidYAML(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, "---\ndescription: [unclosed\n---\nbody\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "not valid YAML")
}

func TestFrontMatterChecker_WrongType(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, "---\nalwaysApply: sometimes\n---\nbody\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `"alwaysApply"`)
}

func TestFrontMatterChecker_UnknownKeys(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, "---\ndescription: d\npriority: high\n---\nbody\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `"priority"`)
}

func TestFrontMatterChecker_AutoWithoutDescription(t *testing.T) {
	diags := checkOne(t, &FrontMatterChecker{}, "---\nglobs: *.py\n---\nbody\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "no description")
}
