package config_test

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/config"
	"github.com/termfx/vhdlcore/internal/diag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VHDLSIMP_ERROR_LIMIT", "VHDLSIMP_UNIT_TEST", "VHDLSIMP_COLOR"} {
		os.Unsetenv(k)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	clearEnv(t)
	defer clearEnv(t)

	cfg := config.LoadEnv()

	assert.Equal(t, 100, cfg.ErrorLimit)
	assert.False(t, cfg.UnitTest)
	assert.Equal(t, diag.ColorAuto, cfg.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	defer clearEnv(t)

	os.Setenv("VHDLSIMP_ERROR_LIMIT", "7")
	os.Setenv("VHDLSIMP_UNIT_TEST", "true")
	os.Setenv("VHDLSIMP_COLOR", "always")

	cfg := config.LoadEnv()

	assert.Equal(t, 7, cfg.ErrorLimit)
	assert.True(t, cfg.UnitTest)
	assert.Equal(t, diag.ColorAlways, cfg.Color)
}

func TestLoadEnvIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)
	defer clearEnv(t)

	os.Setenv("VHDLSIMP_ERROR_LIMIT", "not-a-number")
	os.Setenv("VHDLSIMP_UNIT_TEST", "not-a-bool")

	cfg := config.LoadEnv()

	assert.Equal(t, 100, cfg.ErrorLimit)
	assert.False(t, cfg.UnitTest)
}

func TestRegisterFlagsRoundTrip(t *testing.T) {
	clearEnv(t)
	defer clearEnv(t)

	base := config.LoadEnv()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	base.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"--error-limit=3",
		"--color=never",
		"--debug-gc",
		"--root=/tmp/design",
		"--include=**/*.vhdlir",
	}))

	cfg, err := config.FromFlagSet(fs)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.ErrorLimit)
	assert.Equal(t, diag.ColorNever, cfg.Color)
	assert.True(t, cfg.DebugGC)
	assert.Equal(t, "/tmp/design", cfg.Root)
	assert.Equal(t, []string{"**/*.vhdlir"}, cfg.Include)
}

func TestFromFlagSetRejectsUnknownColor(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.LoadEnv().RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--color=rainbow"}))

	_, err := config.FromFlagSet(fs)
	assert.Error(t, err)
}
