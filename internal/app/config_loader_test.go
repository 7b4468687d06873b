package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, "{}\n")

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 8650, config.Server.Port)
	assert.Equal(t, domain.FormatMP4, config.Download.DefaultFormat)
	assert.Equal(t, domain.QualityBest, config.Download.DefaultQuality)
	assert.Equal(t, 3, config.Download.MaxRetries)
	assert.Equal(t, time.Second, config.Download.BaseDelay)
	assert.Equal(t, time.Hour, config.Auth.CookieCacheDuration)
	assert.Equal(t, []string{"chrome", "firefox"}, config.Auth.Browsers)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfigFile(t, `
download:
  output_dir: /data/videos
  default_format: webm
  default_quality: 720p
  max_retries: 5
  base_delay: 500ms
  workers: 4
auth:
  cookies_file: /data/cookies.txt
  cookie_cache_duration: 30m
server:
  port: 9000
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "/data/videos", config.Download.OutputDir)
	assert.Equal(t, domain.FormatWebM, config.Download.DefaultFormat)
	assert.Equal(t, domain.Quality720p, config.Download.DefaultQuality)
	assert.Equal(t, 5, config.Download.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, config.Download.BaseDelay)
	assert.Equal(t, 4, config.Download.Workers)
	assert.Equal(t, "/data/cookies.txt", config.Auth.CookiesFile)
	assert.Equal(t, 30*time.Minute, config.Auth.CookieCacheDuration)
	assert.Equal(t, 9000, config.Server.Port)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	path := writeConfigFile(t, "download:\n  default_format: avi\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default_format")
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 99999\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_UnsupportedBrowser(t *testing.T) {
	path := writeConfigFile(t, "auth:\n  browsers: [safari]\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "safari")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "videos"), ExpandPath("~/videos"))

	t.Setenv("YTFETCH_TEST_DIR", "/data")
	assert.Equal(t, "/data/videos", ExpandPath("$YTFETCH_TEST_DIR/videos"))

	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))
}
