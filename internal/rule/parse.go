package rule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobList holds glob patterns from front-matter. Both source forms seen in
// the wild are accepted: a YAML sequence of strings, and a single
// comma-separated scalar (the host tool's native form).
type GlobList struct {
	Patterns []string

	// FromScalar reports that the source used the comma-separated scalar
	// form, which Render emits as canonical.
	FromScalar bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *GlobList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		g.FromScalar = true
		for _, part := range strings.Split(node.Value, ",") {
			g.Patterns = append(g.Patterns, strings.TrimSpace(part))
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("globs entries must be strings (line %d)", item.Line)
			}
			g.Patterns = append(g.Patterns, strings.TrimSpace(item.Value))
		}
		return nil
	default:
		return fmt.Errorf("globs must be a string or a sequence (line %d)", node.Line)
	}
}

// Load reads and parses a rule file. IO failures are returned as errors;
// content problems are recorded on the returned Rule.
func Load(path string) (*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	return Parse(path, data), nil
}

// Parse parses rule document bytes. It never fails: malformed front-matter
// is recorded on the Rule (MatterErr, KeyErrors, UnclosedFence) so the
// linter can attach file context. Only a fence at the very start of the
// file opens front-matter; --- lines inside the body are thematic breaks.
func Parse(path string, data []byte) *Rule {
	r := &Rule{Path: path}
	r.Name, r.DoubleExt = stem(path)

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	matter, body, state := splitFence(text)

	switch state {
	case fenceNone:
		r.Body = text
		return r
	case fenceUnclosed:
		r.HasFrontMatter = true
		r.UnclosedFence = true
		return r
	}

	r.HasFrontMatter = true
	r.Body = body

	quoted, hadQuotes := prequoteGlobs(matter)
	r.QuotedGlobs = hadQuotes

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(quoted), &doc); err != nil {
		r.MatterErr = err
		return r
	}
	if len(doc.Content) == 0 {
		return r // empty front-matter block
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		r.MatterErr = fmt.Errorf("front-matter must be a mapping, got %s", nodeKind(root))
		return r
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "description":
			if err := val.Decode(&r.Matter.Description); err != nil {
				r.KeyErrors = append(r.KeyErrors, KeyError{Key: "description", Err: err})
			}
		case "globs":
			if err := val.Decode(&r.Matter.Globs); err != nil {
				r.KeyErrors = append(r.KeyErrors, KeyError{Key: "globs", Err: err})
			}
		case "alwaysApply":
			var b bool
			if err := val.Decode(&b); err != nil {
				r.KeyErrors = append(r.KeyErrors, KeyError{Key: "alwaysApply", Err: err})
			} else {
				r.Matter.AlwaysApply = &b
			}
		default:
			r.UnknownKeys = append(r.UnknownKeys, key.Value)
		}
	}

	return r
}

type fenceState int

const (
	fenceNone fenceState = iota
	fenceClosed
	fenceUnclosed
)

// splitFence separates the front-matter block from the body. The opening
// fence must be the first line of the file.
func splitFence(text string) (matter, body string, state fenceState) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return "", "", fenceNone
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			matter = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return matter, body, fenceClosed
		}
	}
	return "", "", fenceUnclosed
}

// prequoteGlobs quotes bare glob scalars so strict YAML can decode them.
// Unquoted *.py would otherwise parse as an alias node. The second return
// reports whether the source itself quoted glob values, which the host
// tool rejects.
func prequoteGlobs(matter string) (string, bool) {
	lines := strings.Split(matter, "\n")
	hadQuotes := false
	inGlobs := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "globs:"); ok && !strings.HasPrefix(line, " ") {
			inGlobs = true
			value := strings.TrimSpace(rest)
			if isQuoted(value) {
				hadQuotes = true
			} else if needsGlobQuoting(value) {
				lines[i] = "globs: " + quoteScalar(value)
			}
			continue
		}
		if inGlobs && strings.HasPrefix(trimmed, "- ") {
			value := strings.TrimSpace(trimmed[2:])
			if isQuoted(value) {
				hadQuotes = true
			} else if needsGlobQuoting(value) {
				indent := line[:strings.Index(line, "-")]
				lines[i] = indent + "- " + quoteScalar(value)
			}
			continue
		}
		if trimmed != "" && !strings.HasPrefix(line, " ") {
			inGlobs = false
		}
	}
	return strings.Join(lines, "\n"), hadQuotes
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'')
}

// needsGlobQuoting reports whether a bare scalar would trip the YAML
// parser. Leading * reads as an alias, leading & as an anchor.
func needsGlobQuoting(s string) bool {
	return s != "" && (s[0] == '*' || s[0] == '&')
}

func quoteScalar(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	default:
		return "an unexpected node"
	}
}

// stem returns the filename without rule extensions, and whether the file
// carries a stray .mdc.md double extension.
func stem(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".mdc.md") {
		return strings.TrimSuffix(base, ".mdc.md"), true
	}
	return strings.TrimSuffix(base, filepath.Ext(base)), false
}
