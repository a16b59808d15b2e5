package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/rule"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	var names []string
	for _, c := range r.Enabled() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"body", "frontmatter", "globs", "naming"}, names)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&GlobsChecker{}))
	assert.Error(t, r.Register(&GlobsChecker{}))
}

func TestRegistry_SetEnabled(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.SetEnabled("body", false))

	for _, c := range r.Enabled() {
		assert.NotEqual(t, "body", c.Name())
	}

	all := r.All()
	require.Len(t, all, 4)
	for _, cs := range all {
		if cs.Name() == "body" {
			assert.False(t, cs.Enabled)
		} else {
			assert.True(t, cs.Enabled)
		}
	}
}

func TestRegistry_UnknownChecker(t *testing.T) {
	r := DefaultRegistry()
	assert.Error(t, r.SetEnabled("nope", false))
	assert.Error(t, r.SetSeverity("nope", SeverityInfo))
}

func TestRegistry_SeverityOverride(t *testing.T) {
	reg := DefaultRegistry()
	require.NoError(t, reg.SetSeverity("naming", SeverityInfo))

	rn := NewRunner(reg)
	r := rule.Parse("rules/BadName.mdc", []byte("---\ndescription: d\n---\n"+"# T\n\n## Critical Rules\n\n- a\n\n<example>\nx\n</example>\n\n<example type=\"invalid\">\ny\n</example>\n"))
	report, err := rn.Run(context.Background(), []*rule.Rule{r})
	require.NoError(t, err)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "naming", report.Diagnostics[0].Check)
	assert.Equal(t, SeverityInfo, report.Diagnostics[0].Severity)
	assert.Equal(t, 0, report.ExitCode())
}
