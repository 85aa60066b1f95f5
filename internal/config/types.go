package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Scan      ScanConfig      `yaml:"scan" mapstructure:"scan"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Allowlist AllowlistConfig `yaml:"allowlist" mapstructure:"allowlist"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// ProvidersConfig holds the semantic detector provider chain: the primary is
// always tried first, the fallback exactly once on any primary failure.
type ProvidersConfig struct {
	Primary  ProviderConfig `yaml:"primary" mapstructure:"primary"`
	Fallback ProviderConfig `yaml:"fallback" mapstructure:"fallback"`
}

// ProviderConfig describes one hosted completion API.
type ProviderConfig struct {
	Kind    string        `yaml:"kind" mapstructure:"kind"` // openai or gemini
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ScanConfig bounds document intake.
type ScanConfig struct {
	MaxTextChars    int   `yaml:"max_text_chars" mapstructure:"max_text_chars"`
	MaxUploadBytes  int64 `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	PersistCLIScans bool  `yaml:"persist_cli_scans" mapstructure:"persist_cli_scans"`
}

// StorageConfig locates the report database.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AllowlistConfig locates the known-benign value list.
type AllowlistConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Watch bool   `yaml:"watch" mapstructure:"watch"`
}

// RateLimitConfig bounds per-client request rates on the scan endpoints.
type RateLimitConfig struct {
	Enabled        bool `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerMin int  `yaml:"requests_per_min" mapstructure:"requests_per_min"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
