package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulekit/rulekit/internal/rule"
)

func TestFmtEligible(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{"clean document", "---\ndescription: d\nglobs: *.py\nalwaysApply: false\n---\nbody\n", true},
		{"no front-matter fence", "# just a heading\n\nprose body\n", false},
		{"unclosed fence", "---\ndescription: d\n", false},
		{"invalid yaml", "---\ndescription: [unclosed\n---\nbody\n", false},
		{"wrong-typed key", "---\nalwaysApply: maybe\n---\nbody\n", false},
		{"unknown key", "---\ndescription: d\npriority: high\n---\nbody\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rule.Parse("rules/test-rule.mdc", []byte(tc.src))
			assert.Equal(t, tc.want, fmtEligible(r))
		})
	}
}
