package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GetDefaults returns the configuration used when no file or environment
// override is present.
func GetDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Providers: ProvidersConfig{
			Primary: ProviderConfig{
				Kind:    "openai",
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
				Timeout: 30 * time.Second,
			},
			Fallback: ProviderConfig{
				Kind:    "gemini",
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
				Model:   "gemini-1.5-flash",
				Timeout: 30 * time.Second,
			},
		},
		Scan: ScanConfig{
			MaxTextChars:   12000,
			MaxUploadBytes: 32 << 20,
		},
		Storage: StorageConfig{
			Path: "identity-secure.db",
		},
		Allowlist: AllowlistConfig{
			Path:  "allowlist.txt",
			Watch: false,
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from file and environment variables. A missing
// config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	config := GetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/identity-secure/")
	viper.AddConfigPath("$HOME/.identity-secure/")

	viper.SetEnvPrefix("IDSEC")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	for _, p := range []ProviderConfig{config.Providers.Primary, config.Providers.Fallback} {
		if p.Kind != "openai" && p.Kind != "gemini" {
			return fmt.Errorf("invalid provider kind: %s (must be openai or gemini)", p.Kind)
		}
	}

	if config.Scan.MaxTextChars <= 0 {
		return fmt.Errorf("scan.max_text_chars must be positive")
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	return nil
}
