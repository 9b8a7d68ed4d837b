package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig controls logging and Prometheus exposition.
type ObservabilityConfig struct {
	LogLevel       string `env:"LOG_LEVEL"       envDefault:"info"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPath    string `env:"METRICS_PATH"    envDefault:"/metrics"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.MetricsPath = strings.TrimSpace(c.MetricsPath)
	if c.MetricsPath == "" || !strings.HasPrefix(c.MetricsPath, "/") {
		c.MetricsPath = "/metrics"
	}
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c ObservabilityConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
