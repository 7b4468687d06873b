package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// LoadConfig loads configuration from file and environment. An empty
// configPath falls back to the standard locations; a missing file is fine,
// defaults apply.
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.config/ytfetch")
		v.AddConfigPath("/etc/ytfetch")
	}

	v.SetEnvPrefix("YTFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file found in the search paths; defaults apply.
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	expandConfigPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// expandConfigPaths expands ~ and environment variables in path settings
func expandConfigPaths(config *domain.Config) {
	config.Download.OutputDir = ExpandPath(config.Download.OutputDir)
	config.Download.StagingDir = ExpandPath(config.Download.StagingDir)
	config.Auth.CookiesFile = ExpandPath(config.Auth.CookiesFile)
	config.Auth.CookieCacheFile = ExpandPath(config.Auth.CookieCacheFile)
	config.Summary.CacheDir = ExpandPath(config.Summary.CacheDir)
	config.History.DatabasePath = ExpandPath(config.History.DatabasePath)
	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = ExpandPath(config.Logging.OutputPath)
	}
}

// ExpandPath expands environment variables and ~ in a path
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Download.OutputDir == "" {
		return fmt.Errorf("output directory not configured")
	}
	if config.Download.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	if config.Download.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if !domain.ValidFormat(config.Download.DefaultFormat) {
		return &domain.InvalidOptionError{Field: "default_format", Value: string(config.Download.DefaultFormat)}
	}
	if !domain.ValidQuality(config.Download.DefaultQuality) {
		return &domain.InvalidOptionError{Field: "default_quality", Value: string(config.Download.DefaultQuality)}
	}
	for _, browser := range config.Auth.Browsers {
		if browser != "chrome" && browser != "firefox" {
			return fmt.Errorf("unsupported browser %q in auth.browsers", browser)
		}
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	return nil
}
