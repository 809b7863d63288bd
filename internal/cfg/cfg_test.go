package cfg

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	noEnvFile(t)
	for _, key := range []string{"VENDING_NAME", "VENDING_CURRENCY", "VENDING_QUIT_CODE", "CONSOLE_WIDTH", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "Amber's Vending Delight", cfg.Machine.Name)
	assert.Equal(t, "AED", cfg.Machine.Currency)
	assert.Equal(t, "Q", cfg.Machine.QuitCode)
	assert.Equal(t, 40, cfg.Console.Width)
	assert.Equal(t, slog.LevelWarn, cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Shutdown.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	noEnvFile(t)
	t.Setenv("VENDING_NAME", "Corner Machine")
	t.Setenv("VENDING_CURRENCY", "USD")
	t.Setenv("VENDING_QUIT_CODE", "exit")
	t.Setenv("CONSOLE_WIDTH", "60")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "500ms")

	cfg, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "Corner Machine", cfg.Machine.Name)
	assert.Equal(t, "USD", cfg.Machine.Currency)
	assert.Equal(t, "exit", cfg.Machine.QuitCode)
	assert.Equal(t, 60, cfg.Console.Width)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Shutdown.Timeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "CONSOLE_WIDTH", value: "wide"},
		{key: "CONSOLE_WIDTH", value: "-3"},
		{key: "LOG_LEVEL", value: "chatty"},
		{key: "SHUTDOWN_TIMEOUT", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			noEnvFile(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load(logger.Nop())
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_BlankCurrency(t *testing.T) {
	noEnvFile(t)
	t.Setenv("VENDING_CURRENCY", "   ")

	_, err := Load(logger.Nop())
	assert.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vending.env")
	require.NoError(t, os.WriteFile(path, []byte("VENDING_TEST_ONLY_NAME=from-file\nCONSOLE_WIDTH=12\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("CONSOLE_WIDTH", "50")
	t.Cleanup(func() { _ = os.Unsetenv("VENDING_TEST_ONLY_NAME") })

	cfg, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "from-file", os.Getenv("VENDING_TEST_ONLY_NAME"))
	assert.Equal(t, 50, cfg.Console.Width, "process environment wins over .env")
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "x")

	v, err := parseIntEnv("SOME_INT", 7)
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	assert.Equal(t, 7, v)
}
