package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Canonical(t *testing.T) {
	tr := false
	r := &Rule{
		Matter: FrontMatter{
			Description: "Python style conventions",
			Globs:       GlobList{Patterns: []string{"src/**/*.py", "tests/**/*.py"}},
			AlwaysApply: &tr,
		},
		Body: "# Python Style\n\n- Use type hints\n",
	}

	got := string(r.Render())
	want := `---
description: Python style conventions
globs: src/**/*.py, tests/**/*.py
alwaysApply: false
---

# Python Style

- Use type hints
`
	assert.Equal(t, want, got)
}

func TestRender_EmptyKeysStayBare(t *testing.T) {
	r := &Rule{Body: "body\n"}

	got := string(r.Render())
	want := "---\ndescription:\nglobs:\nalwaysApply: false\n---\n\nbody\n"
	assert.Equal(t, want, got)
}

func TestRender_GlobsStayUnquoted(t *testing.T) {
	r := &Rule{Matter: FrontMatter{Globs: GlobList{Patterns: []string{"*.py"}}}}

	assert.Contains(t, string(r.Render()), "globs: *.py\n")
}

func TestRender_DescriptionQuotedWhenNeeded(t *testing.T) {
	r := &Rule{Matter: FrontMatter{Description: "use pytest: never unittest"}}

	assert.Contains(t, string(r.Render()), `description: "use pytest: never unittest"`)
}

func TestRender_ParseRoundTrip(t *testing.T) {
	srcs := []string{
		"---\ndescription: d\nglobs: *.py, src/**\nalwaysApply: false\n---\n\n# Title\n\n- bullet\n",
		"---\ndescription:\nglobs:\nalwaysApply: true\n---\n\nbody with\n---\nbreaks\n",
	}
	for _, src := range srcs {
		r := Parse("r.mdc", []byte(src))
		require.NoError(t, r.MatterErr)

		first := r.Render()
		again := Parse("r.mdc", first).Render()
		assert.Equal(t, string(first), string(again))
	}
}

func TestRender_NormalizesMessySource(t *testing.T) {
	// Quoted globs, shuffled keys, missing blank line after the fence.
	src := "---\nalwaysApply: false\nglobs: \"*.py\"\ndescription: d\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))
	require.NoError(t, r.MatterErr)

	want := "---\ndescription: d\nglobs: *.py\nalwaysApply: false\n---\n\nbody\n"
	assert.Equal(t, want, string(r.Render()))
}
