package infrastructure

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// FileCookieSource serves an explicit, user-managed cookies.txt. It never
// rewrites the file; it only checks that the file exists and looks like
// Netscape cookie format before handing the path to yt-dlp.
type FileCookieSource struct {
	path string
}

// NewFileCookieSource creates a cookie source for an explicit cookies.txt
func NewFileCookieSource(path string) *FileCookieSource {
	return &FileCookieSource{path: path}
}

func (s *FileCookieSource) Source() domain.CredentialSource {
	return domain.SourceFile
}

// Extract validates the configured file and returns its path
func (s *FileCookieSource) Extract(ctx context.Context) (string, error) {
	if s.path == "" {
		return "", fmt.Errorf("no cookies file configured")
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("cookies file %s: %w", s.path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("cookies file %s is a directory", s.path)
	}
	if err := validateNetscapeCookies(s.path); err != nil {
		return "", err
	}
	return s.path, nil
}

// validateNetscapeCookies rejects files that are obviously not cookies.txt,
// like a JSON export from a browser extension. yt-dlp's own error for that
// case is cryptic; failing here gives the user an actionable message.
func validateNetscapeCookies(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open cookies file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Netscape format is 7 tab-separated fields per cookie line
		if len(strings.Split(line, "\t")) >= 7 {
			return nil
		}
		return fmt.Errorf("cookies file %s is not in Netscape cookies.txt format", path)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read cookies file: %w", err)
	}
	return fmt.Errorf("cookies file %s contains no cookies", path)
}
