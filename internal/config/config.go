package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/showcase/internal/domain"
)

// Config holds the showcase API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	Staging StagingConfig `yaml:"staging"`
	Ranking RankingConfig `yaml:"ranking"`
	Catalog CatalogConfig `yaml:"catalog"`
	Lock    LockConfig    `yaml:"lock"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StagingConfig holds staged-progress settings shared by both demos.
type StagingConfig struct {
	StepDelayMs    *int     `yaml:"step_delay_ms"` // nil = 800, 0 = no pause
	RetrievalSteps []string `yaml:"retrieval_steps"`
	MatchingSteps  []string `yaml:"matching_steps"`
	RunTimeoutSec  int      `yaml:"run_timeout_sec"`
}

// RankingConfig holds result-set settings.
type RankingConfig struct {
	TopK int `yaml:"top_k"`
}

// CatalogConfig points at an optional YAML catalog replacing the built-in fixtures.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LockConfig holds the per-caller run lock backend.
type LockConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"` // lifetime on top of the planned run length
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StepDelay returns the pause between staged steps.
func (c StagingConfig) StepDelay() time.Duration {
	if c.StepDelayMs == nil {
		return domain.DefaultStepDelay
	}
	return time.Duration(*c.StepDelayMs) * time.Millisecond
}

// RunTimeout bounds a single staged run.
func (c StagingConfig) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSec) * time.Second
}

// TTL returns the lock slack.
func (c LockConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Staging.RunTimeoutSec <= 0 {
		c.Staging.RunTimeoutSec = 20
	}
	if c.Ranking.TopK <= 0 {
		c.Ranking.TopK = domain.DefaultRankingConfig().TopK
	}
	if c.Lock.Driver == "" {
		c.Lock.Driver = LockMemory
	}
	if c.Lock.TTLSec <= 0 {
		c.Lock.TTLSec = 5
	}
	if c.Lock.ReadinessTimeout <= 0 {
		c.Lock.ReadinessTimeout = 10
	}
}

// Lock drivers.
const (
	LockMemory = "memory"
	LockRedis  = "redis"
	LockValkey = "valkey"
)

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Lock.Driver {
	case LockMemory:
	case LockRedis, LockValkey:
		if len(c.Lock.Addrs) == 0 {
			return fmt.Errorf("lock.addrs is required for driver %q", c.Lock.Driver)
		}
	default:
		return fmt.Errorf("lock.driver must be %q, %q or %q, got %q", LockMemory, LockRedis, LockValkey, c.Lock.Driver)
	}
	if c.Staging.StepDelayMs != nil && *c.Staging.StepDelayMs < 0 {
		return fmt.Errorf("staging.step_delay_ms must not be negative, got %d", *c.Staging.StepDelayMs)
	}
	for name, steps := range map[string][]string{
		"retrieval_steps": c.Staging.RetrievalSteps,
		"matching_steps":  c.Staging.MatchingSteps,
	} {
		for i, label := range steps {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("staging.%s[%d] must not be empty", name, i)
			}
		}
	}
	// A streamed run must finish before the server cuts the response.
	if c.Staging.RunTimeoutSec > c.HTTP.WriteTimeoutSec {
		return fmt.Errorf("staging.run_timeout_sec (%d) must not exceed http.write_timeout_sec (%d)",
			c.Staging.RunTimeoutSec, c.HTTP.WriteTimeoutSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
