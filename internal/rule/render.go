package rule

import (
	"strings"
)

// Render serializes the rule in canonical form: the three recognized keys
// in fixed order, glob patterns as bare comma-separated scalars, exactly
// one blank line after the closing fence, and a trailing newline. The body
// is otherwise byte-preserved. Parsing a rendered rule and rendering it
// again yields identical bytes.
func (r *Rule) Render() []byte {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString("description:")
	if s := renderScalar(r.Matter.Description); s != "" {
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	sb.WriteString("\nglobs:")
	if len(r.Matter.Globs.Patterns) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(r.Matter.Globs.Patterns, ", "))
	}
	sb.WriteString("\nalwaysApply: ")
	if r.Matter.AlwaysApply != nil && *r.Matter.AlwaysApply {
		sb.WriteString("true")
	} else {
		sb.WriteString("false")
	}
	sb.WriteString("\n---\n")

	body := strings.Trim(r.Body, "\n")
	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	return []byte(sb.String())
}

// renderScalar emits a YAML scalar, quoting only when a bare form would
// change meaning. Glob values are never routed through here; they must
// stay bare for the host tool.
func renderScalar(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, ":#\"'\n") || strings.ContainsAny(string(s[0]), "*&[{>|%@`!- ") {
		q := strings.ReplaceAll(s, `\`, `\\`)
		q = strings.ReplaceAll(q, `"`, `\"`)
		q = strings.ReplaceAll(q, "\n", `\n`)
		return `"` + q + `"`
	}
	return s
}
