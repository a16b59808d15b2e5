package launchcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rulekit/rulekit/internal/lint"
)

// Known console modes for python debug configs.
var validConsoles = map[string]bool{
	"internalConsole":    true,
	"integratedTerminal": true,
	"externalTerminal":   true,
}

// Validate checks a launch file against the schema core. baseDir is the
// directory ${workspaceFolder} expands to when checking envFile paths;
// pass "" to skip filesystem checks.
func Validate(f *File, baseDir string) []lint.Diagnostic {
	var diags []lint.Diagnostic
	add := func(sev lint.Severity, format string, args ...interface{}) {
		diags = append(diags, lint.Diagnostic{
			Path:     f.Path,
			Check:    "launch",
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if f.Version == "" {
		add(lint.SeverityError, `missing "version" field`)
	}
	if len(f.Configurations) == 0 {
		add(lint.SeverityError, `"configurations" is empty`)
		return diags
	}

	seen := make(map[string]bool)
	for i, cfg := range f.Configurations {
		label := cfg.Name
		if label == "" {
			label = fmt.Sprintf("configurations[%d]", i)
		}

		if cfg.Name == "" {
			add(lint.SeverityError, `%s: missing "name"`, label)
		} else if seen[cfg.Name] {
			add(lint.SeverityWarning, "duplicate configuration name %q", cfg.Name)
		}
		seen[cfg.Name] = true

		if cfg.Type == "" {
			add(lint.SeverityError, `%s: missing debugger "type"`, label)
		}

		switch cfg.Request {
		case "launch", "attach":
		case "":
			add(lint.SeverityError, `%s: missing "request"`, label)
		default:
			add(lint.SeverityError, `%s: "request" must be "launch" or "attach", got %q`, label, cfg.Request)
		}

		if isPython(cfg.Type) && cfg.Request == "launch" {
			switch {
			case cfg.Program != "" && cfg.Module != "":
				add(lint.SeverityError, `%s: "program" and "module" are mutually exclusive`, label)
			case cfg.Program == "" && cfg.Module == "":
				add(lint.SeverityError, `%s: launch configs need either "program" or "module"`, label)
			}
		}

		if cfg.Console != "" && !validConsoles[cfg.Console] {
			add(lint.SeverityWarning, "%s: unknown console mode %q", label, cfg.Console)
		}

		if cfg.EnvFile != "" && baseDir != "" {
			path := expandWorkspace(cfg.EnvFile, baseDir)
			if strings.Contains(path, "${") {
				add(lint.SeverityWarning, "%s: envFile uses an unsupported variable: %s", label, cfg.EnvFile)
			} else if _, err := os.Stat(path); err != nil {
				add(lint.SeverityWarning, "%s: envFile %s does not exist", label, cfg.EnvFile)
			}
		}

		for _, key := range sortedKeys(cfg.Env) {
			// The IDE only substitutes ${...} variables it defines;
			// a stray unterminated ${ is always a typo.
			value := cfg.Env[key]
			if strings.Contains(value, "${") && !strings.Contains(value, "}") {
				add(lint.SeverityWarning, "%s: env %s has an unterminated ${ substitution", label, key)
			}
		}
	}

	return diags
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isPython(debuggerType string) bool {
	return debuggerType == "python" || debuggerType == "debugpy"
}

func expandWorkspace(path, baseDir string) string {
	replaced := strings.ReplaceAll(path, "${workspaceFolder}", baseDir)
	return filepath.Clean(replaced)
}
