// Package config loads rulekit's tool configuration (.rulekit.yaml).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/rulekit/rulekit/internal/lint"
)

// DefaultPath is where the config file lives relative to the project root.
const DefaultPath = ".rulekit.yaml"

// Config is the tool configuration. Zero values fall back to defaults at
// load time; the file itself may specify any subset.
type Config struct {
	// RulesDirs lists directories scanned for rule documents.
	RulesDirs []string `yaml:"rules_dirs"`

	// LaunchPath points at the IDE launch configuration file.
	LaunchPath string `yaml:"launch_path"`

	// MinVersion rejects rulekit binaries older than this semver, so a
	// team can pin the floor their checks assume.
	MinVersion string `yaml:"min_version"`

	History HistoryConfig          `yaml:"history"`
	Checks  map[string]CheckConfig `yaml:"checks"`
}

// HistoryConfig controls the lint-run history store.
type HistoryConfig struct {
	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled"`

	// KeepRuns bounds how many runs pruning retains. Default 50.
	KeepRuns int `yaml:"keep_runs"`

	// Path overrides the database location. Default .rulekit/history.db.
	Path string `yaml:"path"`
}

// CheckConfig tunes one checker.
type CheckConfig struct {
	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled"`

	// Severity overrides every diagnostic the checker emits.
	Severity string `yaml:"severity"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		RulesDirs:  []string{".cursor/rules"},
		LaunchPath: ".vscode/launch.json",
		History: HistoryConfig{
			KeepRuns: 50,
			Path:     ".rulekit/history.db",
		},
	}
}

// Load reads the config file at path. A missing file yields defaults.
// Unknown keys are an error: the file is small and a typo silently
// disabling a check is worse than a hard failure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.RulesDirs) == 0 {
		return fmt.Errorf("rules_dirs must not be empty")
	}
	if c.History.KeepRuns < 0 {
		return fmt.Errorf("history.keep_runs must not be negative")
	}
	if c.MinVersion != "" && !semver.IsValid(canonical(c.MinVersion)) {
		return fmt.Errorf("min_version %q is not a valid semver", c.MinVersion)
	}
	for name, check := range c.Checks {
		if check.Severity != "" && !lint.ValidSeverity(check.Severity) {
			return fmt.Errorf("checks.%s.severity %q must be error, warning, or info", name, check.Severity)
		}
	}
	return nil
}

// HistoryEnabled resolves the tri-state flag.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// Apply pushes the per-check settings into a lint registry.
func (c *Config) Apply(registry *lint.Registry) error {
	for name, check := range c.Checks {
		if check.Enabled != nil {
			if err := registry.SetEnabled(name, *check.Enabled); err != nil {
				return fmt.Errorf("config checks.%s: %w", name, err)
			}
		}
		if check.Severity != "" {
			if err := registry.SetSeverity(name, lint.Severity(check.Severity)); err != nil {
				return fmt.Errorf("config checks.%s: %w", name, err)
			}
		}
	}
	return nil
}

// CheckMinVersion returns an error when the running binary is older than
// the configured floor.
func (c *Config) CheckMinVersion(current string) error {
	if c.MinVersion == "" {
		return nil
	}
	if semver.Compare(canonical(current), canonical(c.MinVersion)) < 0 {
		return fmt.Errorf("config requires rulekit >= %s, this is %s", c.MinVersion, current)
	}
	return nil
}

// canonical accepts versions with or without the leading v that the semver
// package insists on.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// Save writes the configuration as YAML, used by init to scaffold a
// commented starting point.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
