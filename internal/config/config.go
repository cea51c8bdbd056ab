package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/user/touchstone_go/internal/parser"
)

// Config holds all configuration for the viewer
type Config struct {
	Env     string
	Logging LoggingConfig
	Parser  ParserConfig
	Report  ReportConfig
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// ParserConfig holds Touchstone validation settings
type ParserConfig struct {
	Strict            bool
	NumPorts          int
	ValidatePortCount bool
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	OutputDir  string
	PlotWidth  int
	PlotHeight int
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("TOUCHSTONE_STRICT", false)
	v.SetDefault("TOUCHSTONE_PORTS", 0)
	v.SetDefault("TOUCHSTONE_VALIDATE_PORTS", true)
	v.SetDefault("REPORT_DIR", ".")
	v.SetDefault("REPORT_PLOT_WIDTH", 800)
	v.SetDefault("REPORT_PLOT_HEIGHT", 400)

	v.AutomaticEnv()
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "LOG_PRETTY",
		"TOUCHSTONE_STRICT", "TOUCHSTONE_PORTS", "TOUCHSTONE_VALIDATE_PORTS",
		"REPORT_DIR", "REPORT_PLOT_WIDTH", "REPORT_PLOT_HEIGHT",
	} {
		_ = v.BindEnv(key)
	}

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// .env.<environment> is optional; environment variables still win
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	cfg := &Config{
		Env: env,
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Parser: ParserConfig{
			Strict:            v.GetBool("TOUCHSTONE_STRICT"),
			NumPorts:          v.GetInt("TOUCHSTONE_PORTS"),
			ValidatePortCount: v.GetBool("TOUCHSTONE_VALIDATE_PORTS"),
		},
		Report: ReportConfig{
			OutputDir:  v.GetString("REPORT_DIR"),
			PlotWidth:  v.GetInt("REPORT_PLOT_WIDTH"),
			PlotHeight: v.GetInt("REPORT_PLOT_HEIGHT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Logging.Level, err)
	}
	if c.Parser.NumPorts < 0 {
		return fmt.Errorf("TOUCHSTONE_PORTS must not be negative, got %d", c.Parser.NumPorts)
	}
	if c.Report.PlotWidth <= 0 || c.Report.PlotHeight <= 0 {
		return fmt.Errorf("report plot size must be positive, got %dx%d", c.Report.PlotWidth, c.Report.PlotHeight)
	}
	return nil
}

// LogLevel returns the configured zerolog level.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// ToParserConfig builds the parser settings, attaching logger for debug output.
func (c *Config) ToParserConfig(logger *zerolog.Logger) parser.Config {
	return parser.Config{
		Strict:            c.Parser.Strict,
		NumPorts:          c.Parser.NumPorts,
		ValidatePortCount: c.Parser.ValidatePortCount,
		Logger:            logger,
	}
}
