package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// useTempXDG points XDG_CONFIG_HOME at a temp dir and returns the pomo
// config directory inside it.
func useTempXDG(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	return filepath.Join(tempDir, "pomo")
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.StateFile)
	assert.NotEmpty(t, cfg.Theme.Primary)
	assert.NotEmpty(t, cfg.Theme.Accent)
	assert.True(t, cfg.Notifications.Enabled)
	assert.False(t, cfg.Notifications.Sound)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestPath_UsesXDG(t *testing.T) {
	dir := useTempXDG(t)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), Path())
}

func TestLoad_NoConfigFile(t *testing.T) {
	useTempXDG(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := useTempXDG(t)
	writeConfig(t, dir, `
state_file: /custom/pomo.json
theme:
  primary: "#FF0000"
keys:
  pause: "p,P"
log:
  level: debug
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/custom/pomo.json", cfg.StateFile)
	assert.Equal(t, "#FF0000", cfg.Theme.Primary)
	assert.Equal(t, "p,P", cfg.Keys.Pause)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched values keep their defaults.
	assert.Equal(t, "#10B981", cfg.Theme.Accent)
	assert.True(t, cfg.Notifications.Enabled)
}

func TestLoad_MissingBoolKeysDoesNotClobberDefaults(t *testing.T) {
	dir := useTempXDG(t)
	writeConfig(t, dir, `
notifications:
  sound: true
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Notifications.Sound)
	assert.True(t, cfg.Notifications.Enabled, "omitted key must keep its default")
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	dir := useTempXDG(t)
	writeConfig(t, dir, `
notifications:
  enabled: false
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := useTempXDG(t)
	writeConfig(t, dir, "theme: [unclosed")

	_, err := Load()
	assert.Error(t, err)
}

func TestMergeNonEmpty(t *testing.T) {
	base := Default()
	base.mergeNonEmpty(&Config{StateFile: "/override", Theme: ThemeConfig{Primary: "#CUSTOM"}})

	assert.Equal(t, "/override", base.StateFile)
	assert.Equal(t, "#CUSTOM", base.Theme.Primary)
	assert.Equal(t, "#10B981", base.Theme.Accent)
}

func parseDoc(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return &doc
}

func TestYamlHasPath(t *testing.T) {
	doc := parseDoc(t, "a:\n  b: 1\nc: x\n")

	assert.True(t, yamlHasPath(doc, "a", "b"))
	assert.True(t, yamlHasPath(doc, "c"))
	assert.False(t, yamlHasPath(doc, "a", "z"))
	assert.False(t, yamlHasPath(doc, "c", "d"))
	assert.False(t, yamlHasPath(nil, "a"))
	assert.False(t, yamlHasPath(doc))
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Notifications.Enabled = false
	cfg.Keys.Quit = "x"
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, loaded.Notifications.Enabled)
	assert.Equal(t, "x", loaded.Keys.Quit)
}

func TestMarshal_KeepsDisabledNotifications(t *testing.T) {
	cfg := Default()
	cfg.Notifications.Enabled = false

	data, err := cfg.Marshal()
	require.NoError(t, err)

	doc := parseDoc(t, string(data))
	assert.True(t, yamlHasPath(doc, "notifications", "enabled"))
	assert.True(t, yamlHasPath(doc, "notifications", "sound"))
	assert.Contains(t, string(data), "enabled: false")
}

func TestSave_UsesConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Notifications.Enabled = false
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.False(t, loaded.Notifications.Enabled)
}

func TestGetStateFile(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/pomo.json", "/abs/pomo.json"},
		{"~/sessions/pomo.json", filepath.Join(home, "sessions", "pomo.json")},
		{"relative.json", "relative.json"},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.StateFile = tt.in
		assert.Equal(t, tt.want, cfg.GetStateFile(), "input %q", tt.in)
	}
}

func TestGetLogFile(t *testing.T) {
	dir := useTempXDG(t)

	cfg := Default()
	assert.Equal(t, filepath.Join(dir, "pomo.log"), cfg.GetLogFile())

	cfg.Log.File = "/var/tmp/pomo.log"
	assert.Equal(t, "/var/tmp/pomo.log", cfg.GetLogFile())
}
