package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".rulekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".rulekit.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{".cursor/rules"}, cfg.RulesDirs)
	assert.Equal(t, ".vscode/launch.json", cfg.LaunchPath)
	assert.Equal(t, 50, cfg.History.KeepRuns)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := writeConfig(t, "rules_dirs:\n  - docs/rules\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/rules"}, cfg.RulesDirs)
	assert.Equal(t, ".vscode/launch.json", cfg.LaunchPath)
	assert.Equal(t, ".rulekit/history.db", cfg.History.Path)
}

func TestLoad_UnknownKeyIsError(t *testing.T) {
	path := writeConfig(t, "rules_dir: typo\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyFileGivesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{".cursor/rules"}, cfg.RulesDirs)
}

func TestLoad_BadSeverity(t *testing.T) {
	path := writeConfig(t, "checks:\n  naming:\n    severity: fatal\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal")
}

func TestLoad_BadMinVersion(t *testing.T) {
	path := writeConfig(t, "min_version: not-a-version\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCheckMinVersion(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.CheckMinVersion("0.1.0"))

	cfg.MinVersion = "0.2.0"
	assert.Error(t, cfg.CheckMinVersion("0.1.0"))
	assert.NoError(t, cfg.CheckMinVersion("0.2.0"))
	assert.NoError(t, cfg.CheckMinVersion("1.0.0"))

	// With or without the leading v.
	cfg.MinVersion = "v0.2.0"
	assert.NoError(t, cfg.CheckMinVersion("0.3.1"))
}

func TestApply(t *testing.T) {
	off := false
	cfg := Default()
	cfg.Checks = map[string]CheckConfig{
		"body":   {Enabled: &off},
		"naming": {Severity: "info"},
	}

	registry := lint.DefaultRegistry()
	require.NoError(t, cfg.Apply(registry))

	for _, c := range registry.Enabled() {
		assert.NotEqual(t, "body", c.Name())
	}
}

func TestApply_UnknownChecker(t *testing.T) {
	cfg := Default()
	cfg.Checks = map[string]CheckConfig{"nonexistent": {Severity: "info"}}

	err := cfg.Apply(lint.DefaultRegistry())
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rulekit.yaml")

	cfg := Default()
	cfg.MinVersion = "0.1.0"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.RulesDirs, loaded.RulesDirs)
	assert.Equal(t, cfg.MinVersion, loaded.MinVersion)
}
