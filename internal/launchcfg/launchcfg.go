// Package launchcfg models IDE debug launch configurations (launch.json)
// and validates them against the documented schema. The format is owned by
// the IDE; this package is a reader, not a designer.
package launchcfg

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the top-level launch.json document.
type File struct {
	Version        string   `json:"version"`
	Configurations []Config `json:"configurations"`

	// Path records where the file was loaded from, for diagnostics.
	Path string `json:"-"`
}

// Config is a single named debug preset. Unknown fields are ignored: the
// schema grows with the IDE and rulekit only vets the stable core.
type Config struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Request string `json:"request"`

	// Program and Module are alternative targets for python configs;
	// exactly one of them should be set for request=launch.
	Program string `json:"program"`
	Module  string `json:"module"`

	Args    []string          `json:"args"`
	Console string            `json:"console"`
	Cwd     string            `json:"cwd"`
	Env     map[string]string `json:"env"`
	EnvFile string            `json:"envFile"`

	JustMyCode *bool `json:"justMyCode"`
}

// Load reads and decodes a launch.json file. The IDE accepts JSONC
// (comments and trailing commas), so the bytes pass through a tolerant
// pre-pass before the strict decoder sees them.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading launch config: %w", err)
	}

	var f File
	if err := json.Unmarshal(StripJSONC(data), &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.Path = path
	return &f, nil
}

// StripJSONC removes // and /* */ comments and trailing commas while
// leaving string contents untouched, producing strict JSON.
func StripJSONC(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++ // skip the closing /
		case c == ',':
			// Drop the comma if the next significant byte closes a
			// container.
			if next := nextSignificant(data, i+1); next == '}' || next == ']' {
				continue
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}

	return out
}

// nextSignificant returns the next byte that is not whitespace or the
// start of a comment, or 0 at end of input.
func nextSignificant(data []byte, from int) byte {
	for i := from; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '/':
			if i+1 < len(data) && data[i+1] == '/' {
				for i < len(data) && data[i] != '\n' {
					i++
				}
				continue
			}
			if i+1 < len(data) && data[i+1] == '*' {
				i += 2
				for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
					i++
				}
				i++
				continue
			}
			return '/'
		default:
			return data[i]
		}
	}
	return 0
}
