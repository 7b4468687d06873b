package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Format represents the requested output container
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatWebM Format = "webm"
	FormatMKV  Format = "mkv"
	FormatMP3  Format = "mp3"
	FormatM4A  Format = "m4a"
)

// Quality represents the requested video quality
type Quality string

const (
	QualityBest  Quality = "best"
	Quality2160p Quality = "2160p"
	Quality1440p Quality = "1440p"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
	Quality360p  Quality = "360p"
	Quality240p  Quality = "240p"
	Quality144p  Quality = "144p"
)

// qualityHeights maps each quality token to its pixel height.
// QualityBest is intentionally absent (no height cap).
var qualityHeights = map[Quality]int{
	Quality2160p: 2160,
	Quality1440p: 1440,
	Quality1080p: 1080,
	Quality720p:  720,
	Quality480p:  480,
	Quality360p:  360,
	Quality240p:  240,
	Quality144p:  144,
}

// DownloadRequest represents a single requested video download.
// It is immutable once created via NewDownloadRequest.
type DownloadRequest struct {
	URL     string  `json:"url"`
	Format  Format  `json:"format"`
	Quality Quality `json:"quality"`
}

// NewDownloadRequest validates the URL and option tokens and builds a request.
// Quality tokens paired with audio-only formats are accepted as-is: they are
// ignored at resolution time, not validated against the video quality set.
func NewDownloadRequest(rawURL string, format Format, quality Quality) (DownloadRequest, error) {
	if err := ValidateURL(rawURL); err != nil {
		return DownloadRequest{}, err
	}
	if !ValidFormat(format) {
		return DownloadRequest{}, &InvalidOptionError{Field: "format", Value: string(format)}
	}
	if !format.AudioOnly() && !ValidQuality(quality) {
		return DownloadRequest{}, &InvalidOptionError{Field: "quality", Value: string(quality)}
	}
	return DownloadRequest{URL: rawURL, Format: format, Quality: quality}, nil
}

// AudioOnly reports whether the format carries no video track
func (f Format) AudioOnly() bool {
	return f == FormatMP3 || f == FormatM4A
}

// ValidFormat checks if a format token is a member of the enumerated set
func ValidFormat(f Format) bool {
	switch f {
	case FormatMP4, FormatWebM, FormatMKV, FormatMP3, FormatM4A:
		return true
	}
	return false
}

// ValidQuality checks if a quality token is a member of the enumerated set
func ValidQuality(q Quality) bool {
	if q == QualityBest {
		return true
	}
	_, ok := qualityHeights[q]
	return ok
}

// Height returns the pixel height for a quality token, or 0 for best
func (q Quality) Height() int {
	return qualityHeights[q]
}

// ValidateURL rejects URLs the extractor cannot possibly handle
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &InvalidOptionError{Field: "url", Value: rawURL}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidOptionError{Field: "url", Value: rawURL}
	}
	return nil
}

// VideoID extracts the YouTube video ID from a watch or short-form URL.
// Unrecognized hosts return the last path element as a best effort.
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id
		}
		// /shorts/<id>, /embed/<id> and /live/<id> forms
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && (parts[0] == "shorts" || parts[0] == "embed" || parts[0] == "live") {
			return parts[1]
		}
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return rawURL
}

// String renders the request for logs
func (r DownloadRequest) String() string {
	return fmt.Sprintf("%s [%s/%s]", r.URL, r.Format, r.Quality)
}
