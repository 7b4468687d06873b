package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// BrowserCookieSource extracts YouTube session cookies from a local browser
// profile by running yt-dlp with --cookies-from-browser and a no-op URL.
// yt-dlp already knows every browser's cookie store layout and keychain
// dance, so we delegate instead of reading profile databases ourselves.
// The extracted cookies land in cacheFile, which doubles as the persistent
// cookie cache across restarts.
type BrowserCookieSource struct {
	browser   string // chrome or firefox
	binary    string
	cacheFile string
	logger    *zap.Logger
}

// NewBrowserCookieSource creates a cookie source for one browser profile
func NewBrowserCookieSource(browser, ytdlpBinary, cacheFile string, logger *zap.Logger) *BrowserCookieSource {
	if ytdlpBinary == "" {
		ytdlpBinary = "yt-dlp"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserCookieSource{
		browser:   browser,
		binary:    ytdlpBinary,
		cacheFile: cacheFile,
		logger:    logger,
	}
}

func (s *BrowserCookieSource) Source() domain.CredentialSource {
	switch s.browser {
	case "firefox":
		return domain.SourceFirefox
	default:
		return domain.SourceChrome
	}
}

// Extract dumps the browser's youtube.com cookies into the cache file
func (s *BrowserCookieSource) Extract(ctx context.Context) (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.cacheFile), 0700); err != nil {
		return "", fmt.Errorf("failed to create cookie cache directory: %w", err)
	}

	args := []string{
		"--cookies-from-browser", s.browser,
		"--cookies", s.cacheFile,
		"--skip-download",
		"--no-warnings",
		"https://www.youtube.com",
	}
	s.logger.Debug("Extracting browser cookies",
		zap.String("browser", s.browser),
		zap.String("cache_file", s.cacheFile))

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cookie extraction from %s failed: %s", s.browser, lastErrorLine(output.String()))
	}

	info, err := os.Stat(s.cacheFile)
	if err != nil {
		return "", fmt.Errorf("cookie extraction from %s produced no file: %w", s.browser, err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("cookie extraction from %s produced an empty file", s.browser)
	}
	// Cookie files hold live session tokens
	if err := os.Chmod(s.cacheFile, 0600); err != nil {
		s.logger.Warn("Failed to restrict cookie file permissions", zap.Error(err))
	}
	return s.cacheFile, nil
}
