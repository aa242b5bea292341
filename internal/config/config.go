// Package config provides configuration management for the subscription collector.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PlaceholderServiceKey is written into a fresh template and rejected by Validate.
const PlaceholderServiceKey = "여기에_발급받은_API_키를_입력하세요"

// ServiceKeyEnv overrides api.service_key when set.
const ServiceKeyEnv = "APPLYHOME_SERVICE_KEY"

// DefaultPath is where the collector looks for its settings file.
const DefaultPath = "config.yaml"

// minServiceKeyLength is the shortest key the data portal issues.
const minServiceKeyLength = 50

// Configuration errors.
var (
	ErrConfigNotFound           = errors.New("config file not found")
	ErrServiceKeyMissing        = errors.New("api.service_key is not set")
	ErrServiceKeyTooShort       = errors.New("api.service_key is too short")
	ErrMissingBaseURL           = errors.New("api.base_url is required")
	ErrInvalidTimeout           = errors.New("timeout_sec must be at least 1")
	ErrInvalidCategoryDelay     = errors.New("api.category_delay_ms must be non-negative")
	ErrInvalidMaxPages          = errors.New("settings.max_pages must be non-negative")
	ErrInvalidItemsPerFile      = errors.New("settings.max_items_per_file must be at least 1")
	ErrMissingOutputFolder      = errors.New("paths.output_folder is required")
	ErrMissingFilePrefix        = errors.New("paths.file_prefix is required")
	ErrInvalidNoticeDelay       = errors.New("notice.delay_ms must be non-negative")
	ErrInvalidNoticeLimits      = errors.New("notice.max_chars and notice.excerpt_chars must be positive")
	ErrInvalidMaxAttempts       = errors.New("notice.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("notice.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("notice.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete collector configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Settings SettingsConfig `yaml:"settings"`
	Paths    PathsConfig    `yaml:"paths"`
	Notice   NoticeConfig   `yaml:"notice"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// APIConfig describes the subscription API.
type APIConfig struct {
	ServiceKey      string `yaml:"service_key"`
	BaseURL         string `yaml:"base_url"`
	TimeoutSec      int    `yaml:"timeout_sec"`
	CategoryDelayMs int    `yaml:"category_delay_ms"`
}

// SettingsConfig bounds the collection.
type SettingsConfig struct {
	// MaxPages caps pages per category; 0 means no cap.
	MaxPages int `yaml:"max_pages"`
	// MaxItemsPerFile is kept so settings files from older releases still validate.
	MaxItemsPerFile int `yaml:"max_items_per_file"`
}

// PathsConfig controls where exports land.
type PathsConfig struct {
	OutputFolder string `yaml:"output_folder"`
	FilePrefix   string `yaml:"file_prefix"`
}

// NoticeConfig controls notice page enrichment.
type NoticeConfig struct {
	DelayMs      int         `yaml:"delay_ms"`
	MaxChars     int         `yaml:"max_chars"`
	ExcerptChars int         `yaml:"excerpt_chars"`
	Retry        RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when a field is absent from the file.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:         "http://api.odcloud.kr/api/ApplyhomeInfoDetailSvc/v1",
			TimeoutSec:      30,
			CategoryDelayMs: 500,
		},
		Settings: SettingsConfig{
			MaxPages:        50,
			MaxItemsPerFile: 10,
		},
		Paths: PathsConfig{
			OutputFolder: "결과물",
			FilePrefix:   "청약정보",
		},
		Notice: NoticeConfig{
			DelayMs:      1000,
			MaxChars:     50000,
			ExcerptChars: 5000,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    2000,
				MaxDelayMs:        2000,
				BackoffMultiplier: 1.0,
				TimeoutSec:        30,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Template returns the settings written for a first run.
func Template() Config {
	cfg := Default()
	cfg.API.ServiceKey = PlaceholderServiceKey

	return cfg
}

// LoadConfig loads configuration from a YAML file over Default, then applies the
// service key override from the environment.
// A missing file yields ErrConfigNotFound.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys absent from the file keep their defaults; explicit zeros are kept.
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := mergo.Merge(&cfg, envOverrides(), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// loadEnvFiles loads .env.local then .env; variables already set win.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}

	return nil
}

// envOverrides returns the settings taken from the environment. Unset variables
// leave zero values, which the merge skips.
func envOverrides() Config {
	var c Config
	c.API.ServiceKey = strings.TrimSpace(os.Getenv(ServiceKeyEnv))

	return c
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// WriteTemplate writes Template to path.
func WriteTemplate(path string) error {
	cfg := Template()

	return cfg.SaveConfig(path)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidateServiceKey(c.API.ServiceKey); err != nil {
		return err
	}

	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.API.TimeoutSec < 1 {
		return fmt.Errorf("api: %w", ErrInvalidTimeout)
	}

	if c.API.CategoryDelayMs < 0 {
		return ErrInvalidCategoryDelay
	}

	if c.Settings.MaxPages < 0 {
		return ErrInvalidMaxPages
	}

	if c.Settings.MaxItemsPerFile < 1 {
		return ErrInvalidItemsPerFile
	}

	if c.Paths.OutputFolder == "" {
		return ErrMissingOutputFolder
	}

	if c.Paths.FilePrefix == "" {
		return ErrMissingFilePrefix
	}

	if c.Notice.DelayMs < 0 {
		return ErrInvalidNoticeDelay
	}

	if c.Notice.MaxChars < 1 || c.Notice.ExcerptChars < 1 {
		return ErrInvalidNoticeLimits
	}

	if err := c.Notice.Retry.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// ValidateServiceKey rejects empty, placeholder and truncated keys.
func ValidateServiceKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || key == PlaceholderServiceKey {
		return ErrServiceKeyMissing
	}

	if len(key) < minServiceKeyLength {
		return fmt.Errorf("%w: %d characters, expected at least %d", ErrServiceKeyTooShort, len(key), minServiceKeyLength)
	}

	return nil
}

// Validate checks the retry policy bounds.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec < 1 {
		return fmt.Errorf("notice.retry: %w", ErrInvalidTimeout)
	}

	return nil
}

// GetRetryDelay returns the wait before attempt number attempt (1-based).
// The first attempt never waits.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if rp.MaxDelayMs > 0 && int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// RequestTimeout returns the API request timeout.
func (a APIConfig) RequestTimeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// CategoryDelay returns the pause between categories.
func (a APIConfig) CategoryDelay() time.Duration {
	return time.Duration(a.CategoryDelayMs) * time.Millisecond
}

// Delay returns the pause between notice pages.
func (n NoticeConfig) Delay() time.Duration {
	return time.Duration(n.DelayMs) * time.Millisecond
}

// MaskedServiceKey returns the first 20 characters of the key followed by "..." when longer.
func (c *Config) MaskedServiceKey() string {
	key := c.API.ServiceKey
	if len(key) <= 20 {
		return key
	}

	return key[:20] + "..."
}

// OutputPath returns {output_folder}/{file_prefix}_{stamp}.{ext}.
func (c *Config) OutputPath(stamp, ext string) string {
	return filepath.Join(c.Paths.OutputFolder, fmt.Sprintf("%s_%s.%s", c.Paths.FilePrefix, stamp, ext))
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{MaxPages: %d, Output: %s, NoticeAttempts: %d}",
		c.Settings.MaxPages,
		c.Paths.OutputFolder,
		c.Notice.Retry.MaxAttempts,
	)
}
