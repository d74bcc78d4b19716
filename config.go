package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr = ":8080"
	envPrefix         = "GRID_PLANNER_"
)

// Config holds the settings shared by every command
type Config struct {
	ListenAddr       string `yaml:"listen_addr"`
	MapPath          string `yaml:"map"`
	FrontierCapacity int    `yaml:"frontier_capacity"`
	QueueCapacity    int    `yaml:"queue_capacity"`
	Reopen           bool   `yaml:"reopen"`
	Verify           bool   `yaml:"verify"`
	Color            bool   `yaml:"color"`
	LogLevel         string `yaml:"log_level"`
	LogFormat        string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: DefaultListenAddr,
		Verify:     true,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// LoadConfig reads a YAML config file on top of the defaults, then applies
// GRID_PLANNER_* environment variables. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	if v := os.Getenv(envPrefix + "ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv(envPrefix + "MAP"); v != "" {
		c.MapPath = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	for key, dst := range map[string]*int{
		"FRONTIER_CAPACITY": &c.FrontierCapacity,
		"QUEUE_CAPACITY":    &c.QueueCapacity,
	} {
		if v := os.Getenv(envPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}
	for key, dst := range map[string]*bool{
		"REOPEN": &c.Reopen,
		"VERIFY": &c.Verify,
		"COLOR":  &c.Color,
	} {
		if v := os.Getenv(envPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = b
		}
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.FrontierCapacity < 0 {
		return fmt.Errorf("frontier_capacity must not be negative, got %d", c.FrontierCapacity)
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue_capacity must not be negative, got %d", c.QueueCapacity)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// PlannerOptions translates the config into search options
func (c *Config) PlannerOptions() []Option {
	opts := []Option{
		WithFrontierCapacity(c.FrontierCapacity),
		WithQueueCapacity(c.QueueCapacity),
	}
	if c.Reopen {
		opts = append(opts, WithReopening())
	}
	if !c.Verify {
		opts = append(opts, WithoutVerification())
	}
	return opts
}
