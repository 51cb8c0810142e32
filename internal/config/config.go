package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port           string  `yaml:"port"`
	SnapshotDir    string  `yaml:"snapshot_dir"`
	WatchSnapshots bool    `yaml:"watch_snapshots"`
	JWTSecret      string  `yaml:"jwt_secret"`
	ToleranceScale float64 `yaml:"tolerance_scale"`
	DefaultTolRaw  float64 `yaml:"default_tolerance_raw"`
	MaxPivotDepth  int     `yaml:"max_pivot_depth"`
	RateLimit      int     `yaml:"rate_limit"`
}

// Load 加载配置: environment variables first, then an optional YAML file
// (CONFIG_FILE) overlaying any fields it sets.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           ":8080",
		SnapshotDir:    "./data/snapshots",
		ToleranceScale: 100000,
		DefaultTolRaw:  5,
		MaxPivotDepth:  6,
		RateLimit:      120,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dir := os.Getenv("SNAPSHOT_DIR"); dir != "" {
		cfg.SnapshotDir = dir
	}
	if os.Getenv("WATCH_SNAPSHOTS") == "true" {
		cfg.WatchSnapshots = true
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if v := os.Getenv("TOLERANCE_SCALE"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return nil, fmt.Errorf("invalid TOLERANCE_SCALE %q", v)
		}
		cfg.ToleranceScale = scale
	}
	if v := os.Getenv("DEFAULT_TOLERANCE_RAW"); v != "" {
		raw, err := strconv.ParseFloat(v, 64)
		if err != nil || raw < 0 {
			return nil, fmt.Errorf("invalid DEFAULT_TOLERANCE_RAW %q", v)
		}
		cfg.DefaultTolRaw = raw
	}
	if v := os.Getenv("MAX_PIVOT_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 1 {
			return nil, fmt.Errorf("invalid MAX_PIVOT_DEPTH %q", v)
		}
		cfg.MaxPivotDepth = depth
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q", v)
		}
		cfg.RateLimit = limit
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// overlayFile merges non-zero fields from a YAML file onto the config.
func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if file.Port != "" {
		c.Port = file.Port
	}
	if file.SnapshotDir != "" {
		c.SnapshotDir = file.SnapshotDir
	}
	if file.WatchSnapshots {
		c.WatchSnapshots = true
	}
	if file.JWTSecret != "" {
		c.JWTSecret = file.JWTSecret
	}
	if file.ToleranceScale > 0 {
		c.ToleranceScale = file.ToleranceScale
	}
	if file.DefaultTolRaw > 0 {
		c.DefaultTolRaw = file.DefaultTolRaw
	}
	if file.MaxPivotDepth > 0 {
		c.MaxPivotDepth = file.MaxPivotDepth
	}
	if file.RateLimit > 0 {
		c.RateLimit = file.RateLimit
	}
	return nil
}

// DefaultTolerance returns the startup tolerance as a fraction: the raw
// slider units divided by the scale factor. The classifier only ever
// sees the scaled fraction.
func (c *Config) DefaultTolerance() float64 {
	return c.DefaultTolRaw / c.ToleranceScale
}
