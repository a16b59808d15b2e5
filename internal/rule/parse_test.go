package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AutoRule(t *testing.T) {
	src := `---
description: Python style conventions
globs: src/**/*.py, tests/**/*.py
alwaysApply: false
---

# Python Style

## Critical Rules

- Use type hints on all public functions
`
	r := Parse("python-style-auto.mdc", []byte(src))

	assert.True(t, r.HasFrontMatter)
	assert.NoError(t, r.MatterErr)
	assert.Equal(t, "Python style conventions", r.Matter.Description)
	assert.Equal(t, []string{"src/**/*.py", "tests/**/*.py"}, r.Matter.Globs.Patterns)
	assert.True(t, r.Matter.Globs.FromScalar)
	require.NotNil(t, r.Matter.AlwaysApply)
	assert.False(t, *r.Matter.AlwaysApply)
	assert.Equal(t, KindAuto, r.Kind())
	assert.Equal(t, "python-style-auto", r.Name)
	assert.Contains(t, r.Body, "## Critical Rules")
}

func TestParse_BareGlobScalar(t *testing.T) {
	// Unquoted *.py is not valid strict YAML (reads as an alias); the
	// parser must pre-quote it rather than fail.
	src := "---\ndescription: test\nglobs: *.py\nalwaysApply: false\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	assert.Equal(t, []string{"*.py"}, r.Matter.Globs.Patterns)
	assert.False(t, r.QuotedGlobs)
}

func TestParse_QuotedGlobsDetected(t *testing.T) {
	src := "---\nglobs: \"*.py\"\nalwaysApply: false\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	assert.Equal(t, []string{"*.py"}, r.Matter.Globs.Patterns)
	assert.True(t, r.QuotedGlobs)
}

func TestParse_GlobSequence(t *testing.T) {
	src := "---\nglobs:\n  - *.py\n  - src/**\nalwaysApply: false\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	assert.Equal(t, []string{"*.py", "src/**"}, r.Matter.Globs.Patterns)
	assert.False(t, r.Matter.Globs.FromScalar)
}

func TestParse_NoFrontMatter(t *testing.T) {
	r := Parse("notes.mdc", []byte("# Just a heading\n\nSome text.\n"))

	assert.False(t, r.HasFrontMatter)
	assert.Equal(t, KindManual, r.Kind())
	assert.Contains(t, r.Body, "Just a heading")
}

func TestParse_UnclosedFence(t *testing.T) {
	r := Parse("r.mdc", []byte("---\ndescription: oops\n# never closed\n"))

	assert.True(t, r.HasFrontMatter)
	assert.True(t, r.UnclosedFence)
	assert.Empty(t, r.Body)
}

func TestParse_FenceMustStartFile(t *testing.T) {
	// A thematic break later in a file without front-matter is body text.
	r := Parse("r.mdc", []byte("intro\n---\ndescription: not matter\n---\n"))

	assert.False(t, r.HasFrontMatter)
	assert.Contains(t, r.Body, "description: not matter")
}

func TestParse_BodyThematicBreaks(t *testing.T) {
	src := "---\ndescription: d\nglobs:\nalwaysApply: true\n---\npart one\n---\npart two\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	assert.Contains(t, r.Body, "part one")
	assert.Contains(t, r.Body, "---")
	assert.Contains(t, r.Body, "part two")
}

func TestParse_UnknownKeys(t *testing.T) {
	src := "---\ndescription: d\npriority: high\nowner: infra\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	assert.Equal(t, []string{"priority", "owner"}, r.UnknownKeys)
}

func TestParse_WrongTypes(t *testing.T) {
	src := "---\nglobs: true\nalwaysApply: maybe\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	require.Len(t, r.KeyErrors, 1)
	assert.Equal(t, "alwaysApply", r.KeyErrors[0].Key)
	// globs: true decodes as a scalar pattern "true"; type errors are
	// only possible for sequences with non-scalar entries.
	assert.Equal(t, []string{"true"}, r.Matter.Globs.Patterns)
}

func TestParse_InvalidYAML(t *testing.T) {
	src := "---\ndescription: [unclosed\n---\nbody\n"
	r := Parse("r.mdc", []byte(src))

	assert.Error(t, r.MatterErr)
}

func TestParse_EmptyFile(t *testing.T) {
	r := Parse("empty.mdc", []byte(""))

	assert.False(t, r.HasFrontMatter)
	assert.Empty(t, r.Body)
	assert.Equal(t, KindManual, r.Kind())
}

func TestParse_CRLF(t *testing.T) {
	src := "---\r\ndescription: windows file\r\nglobs:\r\nalwaysApply: true\r\n---\r\nbody\r\n"
	r := Parse("r.mdc", []byte(src))

	require.NoError(t, r.MatterErr)
	assert.Equal(t, "windows file", r.Matter.Description)
	assert.Equal(t, KindAlways, r.Kind())
}

func TestParse_DoubleExtension(t *testing.T) {
	r := Parse("rules/git-commit-auto.mdc.md", []byte("---\n---\nbody"))

	assert.True(t, r.DoubleExt)
	assert.Equal(t, "git-commit-auto", r.Name)
}

func TestKind_Precedence(t *testing.T) {
	tr := true
	cases := []struct {
		name   string
		matter FrontMatter
		want   Kind
	}{
		{"always wins over globs", FrontMatter{AlwaysApply: &tr, Globs: GlobList{Patterns: []string{"*.py"}}}, KindAlways},
		{"globs over description", FrontMatter{Description: "d", Globs: GlobList{Patterns: []string{"*.py"}}}, KindAuto},
		{"description only", FrontMatter{Description: "d"}, KindAgent},
		{"nothing set", FrontMatter{}, KindManual},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &Rule{Matter: tc.matter}
			assert.Equal(t, tc.want, r.Kind())
		})
	}
}

func TestSuffixKind(t *testing.T) {
	r := &Rule{Name: "python-style-auto"}
	kind, ok := r.SuffixKind()
	require.True(t, ok)
	assert.Equal(t, KindAuto, kind)

	r = &Rule{Name: "python-style"}
	_, ok = r.SuffixKind()
	assert.False(t, ok)
}
