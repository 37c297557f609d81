package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	HTTPAddr       string
	LogLevel       slog.Level
	EngineBaseURL  string
	EngineToken    string
	EngineTimeout  time.Duration
	ComputeTimeout time.Duration
	AuthToken      string
}

// fileConfig is the optional TOML overlay. Zero values mean "not set".
type fileConfig struct {
	HTTPAddr       string `toml:"http_addr"`
	LogLevel       string `toml:"log_level"`
	EngineBaseURL  string `toml:"engine_base_url"`
	EngineToken    string `toml:"engine_token"`
	EngineTimeout  string `toml:"engine_timeout"`
	ComputeTimeout string `toml:"compute_timeout"`
	AuthToken      string `toml:"auth_token"`
}

// Load reads configuration with precedence defaults < TOML file < env vars.
// The TOML file path comes from JYOTISHD_CONFIG and is optional.
func Load() (Config, error) {
	raw := fileConfig{
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		EngineTimeout:  "15s",
		ComputeTimeout: "30s",
	}

	if path := os.Getenv("JYOTISHD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	overlayEnv(&raw.HTTPAddr, "HTTP_ADDR")
	overlayEnv(&raw.LogLevel, "LOG_LEVEL")
	overlayEnv(&raw.EngineBaseURL, "ENGINE_BASE_URL")
	overlayEnv(&raw.EngineToken, "ENGINE_TOKEN")
	overlayEnv(&raw.EngineTimeout, "ENGINE_TIMEOUT")
	overlayEnv(&raw.ComputeTimeout, "COMPUTE_TIMEOUT")
	overlayEnv(&raw.AuthToken, "AUTH_TOKEN")

	c := Config{
		HTTPAddr:      raw.HTTPAddr,
		EngineBaseURL: raw.EngineBaseURL,
		EngineToken:   raw.EngineToken,
		AuthToken:     raw.AuthToken,
	}

	level, err := parseLogLevel(raw.LogLevel)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if c.EngineTimeout, err = parseDuration("ENGINE_TIMEOUT", raw.EngineTimeout); err != nil {
		return Config{}, err
	}
	if c.ComputeTimeout, err = parseDuration("COMPUTE_TIMEOUT", raw.ComputeTimeout); err != nil {
		return Config{}, err
	}

	if c.EngineBaseURL == "" {
		return Config{}, fmt.Errorf("ENGINE_BASE_URL is required")
	}

	return c, nil
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
