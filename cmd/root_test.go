package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/portal/internal/config"
	"github.com/zjrosen/portal/internal/scenario"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile = ""
		debugFlag = false
		replayNoDiff = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.yaml")
}

func TestReplay_BasicScript(t *testing.T) {
	out, err := execute(t, "replay", "--config", missingConfig(t), "../internal/scenario/testdata/basic.yaml")

	require.NoError(t, err)
	require.Contains(t, out, "# basic usage")
	require.Contains(t, out, "Hello!")
	require.Contains(t, out, "+ default[0]")
	require.Contains(t, out, "checks passed")
}

func TestReplay_NoDiff(t *testing.T) {
	out, err := execute(t, "replay", "--no-diff", "--config", missingConfig(t), "../internal/scenario/testdata/basic.yaml")

	require.NoError(t, err)
	require.NotContains(t, out, "+ default[0]")
}

func TestReplay_FailedExpectation(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fail.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`name: failing
steps:
  - op: mount-target
    id: t
  - op: expect
    target: t
    contains: never
`), 0o600))

	out, err := execute(t, "replay", "--config", missingConfig(t), script)

	require.ErrorIs(t, err, scenario.ErrExpectationFailed)
	require.Contains(t, out, "✗")
}

func TestReplay_RequiresScript(t *testing.T) {
	_, err := execute(t, "replay", "--config", missingConfig(t))
	require.Error(t, err)
}

func TestInitConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toast:\n  duration: 7s\n"), 0o600))
	t.Cleanup(func() { cfgFile = "" })

	cfgFile = path
	require.NoError(t, initConfig(nil, nil))

	require.Equal(t, path, configPath)
	require.Equal(t, "7s", cfg.Toast.Duration.String())
}

func TestInitConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("markdown:\n  style: neon\n"), 0o600))
	t.Cleanup(func() { cfgFile = "" })

	cfgFile = path
	require.Error(t, initConfig(nil, nil))
}

func TestInitConfig_WritesDefaultOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	require.NoError(t, initConfig(nil, nil))

	want := filepath.Join(home, ".config", "portal", config.ConfigFileName)
	require.Equal(t, want, configPath)
	require.FileExists(t, want)
	require.Equal(t, config.Defaults().Toast, cfg.Toast)
}
