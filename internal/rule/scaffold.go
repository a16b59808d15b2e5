package rule

import (
	"fmt"
	"strings"
)

// Scaffold builds a starter rule document for the given kind. The body
// skeleton follows the house convention: an H1 title, a Critical Rules
// section, and paired valid/invalid example blocks.
func Scaffold(name string, kind Kind, description string, globs []string) ([]byte, error) {
	r := &Rule{Name: name}

	switch kind {
	case KindAlways:
		t := true
		r.Matter.AlwaysApply = &t
		r.Matter.Description = description
	case KindAuto:
		if len(globs) == 0 {
			return nil, fmt.Errorf("auto rules require at least one glob pattern")
		}
		r.Matter.Globs.Patterns = globs
		r.Matter.Description = description
	case KindAgent:
		if strings.TrimSpace(description) == "" {
			return nil, fmt.Errorf("agent rules require a description")
		}
		r.Matter.Description = description
	case KindManual:
		// All keys stay empty: the rule only activates when referenced.
	default:
		return nil, fmt.Errorf("unknown rule kind %q", kind)
	}

	r.Body = fmt.Sprintf(`# %s

## Critical Rules

- State each rule as a single imperative bullet
- Keep bullets short enough to act on

<example>
Show the assistant following these rules.
</example>

<example type="invalid">
Show the mistake these rules exist to prevent.
</example>`, titleFromName(r.Name))

	return r.Render(), nil
}

// titleFromName turns a kebab-case rule name into a heading:
// python-style-auto becomes "Python Style Auto".
func titleFromName(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
