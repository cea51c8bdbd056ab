package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.False(t, cfg.Parser.Strict)
	assert.Equal(t, 0, cfg.Parser.NumPorts)
	assert.True(t, cfg.Parser.ValidatePortCount)
	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Equal(t, 800, cfg.Report.PlotWidth)
	assert.Equal(t, 400, cfg.Report.PlotHeight)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TOUCHSTONE_STRICT", "true")
	t.Setenv("TOUCHSTONE_PORTS", "4")
	t.Setenv("TOUCHSTONE_VALIDATE_PORTS", "false")
	t.Setenv("REPORT_DIR", "/tmp/reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	assert.True(t, cfg.Parser.Strict)
	assert.Equal(t, 4, cfg.Parser.NumPorts)
	assert.False(t, cfg.Parser.ValidatePortCount)
	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)

	logger := zerolog.Nop()
	pc := cfg.ToParserConfig(&logger)
	assert.True(t, pc.Strict)
	assert.Equal(t, 4, pc.NumPorts)
	assert.False(t, pc.ValidatePortCount)
	assert.Same(t, &logger, pc.Logger)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad level", "LOG_LEVEL", "loud"},
		{"negative ports", "TOUCHSTONE_PORTS", "-2"},
		{"zero plot width", "REPORT_PLOT_WIDTH", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
