// Package config provides centralized configuration management for the
// reissue scanner. Values are layered: built-in defaults, an optional user
// config file, environment variables, and flags.
package config

import (
	"strings"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Discogs   DiscogsConfig   `mapstructure:"discogs"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Scan      ScanConfig      `mapstructure:"scan"`
	Report    ReportConfig    `mapstructure:"report"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DiscogsConfig contains catalog service client configuration.
type DiscogsConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Token     string        `mapstructure:"token"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig contains sliding-window pacing configuration.
// The service grants a larger per-window budget to authenticated clients.
type RateLimitConfig struct {
	AuthenticatedPerWindow int           `mapstructure:"authenticated_per_window"`
	AnonymousPerWindow     int           `mapstructure:"anonymous_per_window"`
	Window                 time.Duration `mapstructure:"window"`
	LowWater               int           `mapstructure:"low_water"`
	WaitBuffer             time.Duration `mapstructure:"wait_buffer"`
	FallbackDelay          time.Duration `mapstructure:"fallback_delay"`
}

// Budget returns the request budget for the given credential.
func (c RateLimitConfig) Budget(token string) int {
	if strings.TrimSpace(token) != "" {
		return c.AuthenticatedPerWindow
	}
	return c.AnonymousPerWindow
}

// RetryConfig bounds the exponential backoff on rate-limit rejections.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
}

// ScanConfig contains triage parameters.
type ScanConfig struct {
	YearThreshold  int    `mapstructure:"year_threshold"`
	ProgressEvery  int    `mapstructure:"progress_every"`
	Placeholder    string `mapstructure:"placeholder"`
	ReleaseURLBase string `mapstructure:"release_url_base"`
}

// ReportConfig controls the CSV artifact.
type ReportConfig struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}
