package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Summary      SummaryConfig      `mapstructure:"summary"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir      string        `mapstructure:"output_dir"`
	StagingDir     string        `mapstructure:"staging_dir"`
	DefaultFormat  Format        `mapstructure:"default_format"`
	DefaultQuality Quality       `mapstructure:"default_quality"`
	MaxRetries     int           `mapstructure:"max_retries"`
	BaseDelay      time.Duration `mapstructure:"base_delay"`
	Workers        int           `mapstructure:"workers"`
	YTDLPBinary    string        `mapstructure:"ytdlp_binary"`
}

// AuthConfig contains cookie/credential configuration
type AuthConfig struct {
	// CookiesFile is an explicit cookies.txt; when set and present it wins
	// over browser extraction and never expires.
	CookiesFile string `mapstructure:"cookies_file"`
	// CookieCacheFile is where browser-extracted cookies are persisted
	CookieCacheFile string `mapstructure:"cookie_cache_file"`
	// CookieCacheDuration is the TTL of browser-extracted cookies
	CookieCacheDuration time.Duration `mapstructure:"cookie_cache_duration"`
	// Browsers is the extraction preference order
	Browsers []string `mapstructure:"browsers"`
}

// SummaryConfig contains transcript/summarization configuration
type SummaryConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	DefaultDepth string        `mapstructure:"default_depth"`
	ChunkWords   int           `mapstructure:"chunk_words"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	CacheDir     string        `mapstructure:"cache_dir"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	BaseDelay    time.Duration `mapstructure:"base_delay"`
}

// HistoryConfig contains download-history persistence configuration
type HistoryConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains desktop notification configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8650,
		},
		Download: DownloadConfig{
			OutputDir:      "~/Downloads/ytfetch",
			StagingDir:     "~/Downloads/ytfetch/.staging",
			DefaultFormat:  FormatMP4,
			DefaultQuality: QualityBest,
			MaxRetries:     3,
			BaseDelay:      time.Second,
			Workers:        1,
			YTDLPBinary:    "yt-dlp",
		},
		Auth: AuthConfig{
			CookieCacheFile:     "~/.config/ytfetch/cookies-cache.txt",
			CookieCacheDuration: time.Hour,
			Browsers:            []string{"chrome", "firefox"},
		},
		Summary: SummaryConfig{
			BaseURL:      "https://api.openai.com/v1",
			Model:        "gpt-4o-mini",
			DefaultDepth: "detailed",
			ChunkWords:   1800,
			MaxTokens:    1500,
			Temperature:  0.5,
			CacheDir:     "~/.cache/ytfetch",
			Timeout:      60 * time.Second,
			MaxRetries:   4,
			BaseDelay:    2 * time.Second,
		},
		History: HistoryConfig{
			DatabasePath: "~/.config/ytfetch/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}
