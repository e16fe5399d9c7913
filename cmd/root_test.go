package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
}

func resetCfg(t *testing.T) {
	t.Helper()
	oldCfg := cfg
	cfg = nil
	t.Cleanup(func() { cfg = oldCfg })
}

func TestRootCmd_PersistentPreRunE_WithValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
data:
  path: /srv/brfss/cleaned.csv
log:
  level: info
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0o644))
	chdir(t, tmpDir)
	resetCfg(t)

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "/srv/brfss/cleaned.csv", cfg.Data.Path)
}

func TestRootCmd_PersistentPreRunE_NoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	resetCfg(t)

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "cleaned_data.csv", cfg.Data.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("log:\n  level: chatty\n"), 0o644))
	chdir(t, tmpDir)
	resetCfg(t)

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	assert.Error(t, err)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["clean"])
	assert.True(t, names["serve"])
	assert.True(t, names["stats"])
}
