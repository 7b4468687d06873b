package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// BatchEntry is one video in a YAML batch file. Format and quality fall
// back to the file's defaults, then to the configured defaults.
type BatchEntry struct {
	URL     string `yaml:"url"`
	Format  string `yaml:"format,omitempty"`
	Quality string `yaml:"quality,omitempty"`
}

// BatchDefaults are file-level option defaults in a YAML batch file
type BatchDefaults struct {
	Format  string `yaml:"format,omitempty"`
	Quality string `yaml:"quality,omitempty"`
}

// BatchFile is the YAML batch file layout:
//
//	defaults:
//	  format: mp4
//	  quality: 1080p
//	videos:
//	  - url: https://youtu.be/abc
//	  - url: https://youtu.be/def
//	    format: mp3
type BatchFile struct {
	Defaults BatchDefaults `yaml:"defaults"`
	Videos   []BatchEntry  `yaml:"videos"`
}

// LoadRequestList reads a request list from disk. YAML files (.yaml/.yml)
// use the BatchFile layout with per-item overrides; anything else is read
// as a plain newline list of URLs using the supplied defaults. Blank lines
// and #-comments are skipped.
//
// Any unreadable or malformed entry fails the whole load: a broken input
// list is a structural error, not a per-item one.
func LoadRequestList(path string, defaultFormat domain.Format, defaultQuality domain.Quality) ([]domain.DownloadRequest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return loadYAMLList(path, defaultFormat, defaultQuality)
	}
	return loadPlainList(path, defaultFormat, defaultQuality)
}

func loadYAMLList(path string, defaultFormat domain.Format, defaultQuality domain.Quality) ([]domain.DownloadRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var batch BatchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(batch.Videos) == 0 {
		return nil, fmt.Errorf("batch file %s contains no videos", path)
	}
	if batch.Defaults.Format != "" {
		defaultFormat = domain.Format(batch.Defaults.Format)
	}
	if batch.Defaults.Quality != "" {
		defaultQuality = domain.Quality(batch.Defaults.Quality)
	}

	requests := make([]domain.DownloadRequest, 0, len(batch.Videos))
	for i, entry := range batch.Videos {
		if entry.URL == "" {
			return nil, fmt.Errorf("batch entry %d has no url", i+1)
		}
		format := defaultFormat
		if entry.Format != "" {
			format = domain.Format(entry.Format)
		}
		quality := defaultQuality
		if entry.Quality != "" {
			quality = domain.Quality(entry.Quality)
		}
		req, err := domain.NewDownloadRequest(entry.URL, format, quality)
		if err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", i+1, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func loadPlainList(path string, format domain.Format, quality domain.Quality) ([]domain.DownloadRequest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	defer file.Close()

	var requests []domain.DownloadRequest
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		req, err := domain.NewDownloadRequest(text, format, quality)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		requests = append(requests, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("URL list %s contains no URLs", path)
	}
	return requests, nil
}
