package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	for _, key := range []string{
		"CATTIMER_WORK_MINUTES", "CATTIMER_BREAK_MINUTES", "CATTIMER_STRATEGY",
		"CATTIMER_TICK_MS", "CATTIMER_DB_PATH", "CATTIMER_LOG_EVENTS",
		"CATTIMER_LOG_PATH", "CATTIMER_ALERT_BELL", "CATTIMER_ALERT_COMMAND",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("work", 25, "")
	fs.Int("break", 5, "")
	fs.String("strategy", "deadline", "")
	return fs
}

func TestDefaultConfig(t *testing.T) {
	home := isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, 25, cfg.WorkMinutes)
	assert.Equal(t, 5, cfg.BreakMinutes)
	assert.Equal(t, "deadline", cfg.Strategy)
	assert.Equal(t, 1000, cfg.TickMs)
	assert.Equal(t, filepath.Join(home, ".cattimer", "cattimer.db"), cfg.DBPath)
	assert.False(t, cfg.LogEvents)
	assert.True(t, cfg.Alert.Bell)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".cattimer", "config.yaml"), `
work_minutes: 50
strategy: decrement
db_path: ~/timer/log.db
alert:
  bell: false
  command: aplay -q done.wav
`)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.WorkMinutes)
	assert.Equal(t, 5, cfg.BreakMinutes)
	assert.Equal(t, "decrement", cfg.Strategy)
	assert.Equal(t, filepath.Join(home, "timer", "log.db"), cfg.DBPath)
	assert.False(t, cfg.Alert.Bell)
	assert.Equal(t, "aplay -q done.wav", cfg.Alert.Command)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "alt.yaml")
	writeFile(t, path, "break_minutes: 15\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.BreakMinutes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".cattimer", "config.yaml"), "work_minutes: 50\n")
	t.Setenv("CATTIMER_WORK_MINUTES", "45")
	t.Setenv("CATTIMER_LOG_EVENTS", "true")
	t.Setenv("CATTIMER_ALERT_COMMAND", "paplay bell.oga")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.WorkMinutes)
	assert.True(t, cfg.LogEvents)
	assert.Equal(t, "paplay bell.oga", cfg.Alert.Command)
}

func TestLoad_ChangedFlagsWin(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".cattimer", "config.yaml"), "work_minutes: 50\nbreak_minutes: 10\n")
	t.Setenv("CATTIMER_WORK_MINUTES", "45")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--work", "30"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.WorkMinutes)
	// Unset flags do not mask the file.
	assert.Equal(t, 10, cfg.BreakMinutes)
	assert.Equal(t, "deadline", cfg.Strategy)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"strategy", "strategy: sundial\n"},
		{"negative work", "work_minutes: -1\n"},
		{"negative break", "break_minutes: -1\n"},
		{"tick", "tick_ms: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.body)

			_, err := Load(path, nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "work_minutes: [\n")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path, false))
	assert.ErrorIs(t, WriteDefault(path, false), ErrConfigExists)
	require.NoError(t, WriteDefault(path, true))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
