// ============================================================================
// etds - Predictive Expression Translator
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML files
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	mdwlog "github.com/msto63/etds/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "ETDS_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// LexerConfig holds tokenizer limits
type LexerConfig struct {
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// RenderConfig holds output settings for trees and symbol tables
type RenderConfig struct {
	NoColor bool   `toml:"no_color" yaml:"no_color"`
	Style   string `toml:"style" yaml:"style"`
}

// HistoryConfig holds the compile journal settings
type HistoryConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled"`
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`

	// PruneSchedule is a cron expression for pruning while serving; "off" disables it
	PruneSchedule string `toml:"prune_schedule" yaml:"prune_schedule"`
}

// ServerConfig holds HTTP/WebSocket service settings
type ServerConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxRequestSize int64    `toml:"max_request_size" yaml:"max_request_size"`

	// CacheSize bounds memoized compile results; a negative value disables the cache
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string scalar
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, or a YAML file when the path
// ends in .yaml or .yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.New("config file not found").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to read config").WithCode(mdwerror.CodeConfigError)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "failed to parse config").WithCode(mdwerror.CodeConfigError)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "failed to parse config").WithCode(mdwerror.CodeConfigError)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by ETDS_CONFIG, else the first of the
// default locations that exists, else returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	paths := []string{
		"./configs/etds.toml",
		"./etds.toml",
		"./etds.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "etds", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "etds"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Render
	if c.Render.Style == "" {
		c.Render.Style = "unicode"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "./data/etds-history.db"
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}
	if c.History.PruneSchedule == "" {
		c.History.PruneSchedule = "0 3 * * *"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8470
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Server.MaxRequestSize == 0 {
		c.Server.MaxRequestSize = 64 * 1024
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 1024
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 10 * time.Minute
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return mdwerror.New(fmt.Sprintf("invalid value for %s: %v", field, value)).
			WithCode(mdwerror.CodeConfigError).
			WithDetail("field", field)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.Lexer.MaxInputLength < 0 {
		return invalid("lexer.max_input_length", c.Lexer.MaxInputLength)
	}
	if c.Render.Style != "unicode" && c.Render.Style != "ascii" {
		return invalid("render.style", c.Render.Style)
	}
	if c.History.PruneSchedule != "off" {
		if _, err := cron.ParseStandard(c.History.PruneSchedule); err != nil {
			return invalid("history.prune_schedule", c.History.PruneSchedule)
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port)
	}
	if c.Server.MaxRequestSize < 0 {
		return invalid("server.max_request_size", c.Server.MaxRequestSize)
	}
	return nil
}

// Address returns host:port of the HTTP service
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Logger builds the application logger from the general section
func (c *Config) Logger(output io.Writer) *mdwlog.Logger {
	level, _ := mdwlog.ParseLevel(c.General.LogLevel)
	format, _ := mdwlog.ParseFormat(c.General.LogFormat)
	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   c.General.Name,
	})
}

// Write encodes the configuration as "toml" or "yaml"
func (c *Config) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case "toml", "":
		return toml.NewEncoder(w).Encode(c)
	default:
		return mdwerror.New("unsupported config format: " + format).WithCode(mdwerror.CodeInvalidInput)
	}
}
