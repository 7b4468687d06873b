package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// captionTracksRe locates the caption track list embedded in the watch
// page's player response JSON.
var captionTracksRe = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

// timedTextRe extracts the text payloads from the timedtext XML
var timedTextRe = regexp.MustCompile(`<text[^>]*>(.*?)</text>`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// YouTubeTranscriptFetcher fetches a video transcript by scraping the
// caption track list from the watch page and downloading the timedtext
// document. No API key required; the tradeoff is sensitivity to page
// layout changes.
type YouTubeTranscriptFetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewYouTubeTranscriptFetcher creates a transcript fetcher
func NewYouTubeTranscriptFetcher(timeout time.Duration, logger *zap.Logger) *YouTubeTranscriptFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YouTubeTranscriptFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch returns the plain-text transcript for a video id
func (f *YouTubeTranscriptFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	page, err := f.get(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch watch page: %w", err)
	}

	track, err := pickCaptionTrack(page)
	if err != nil {
		return "", fmt.Errorf("video %s: %w", videoID, err)
	}
	f.logger.Debug("Selected caption track",
		zap.String("video_id", videoID),
		zap.String("language", track.LanguageCode),
		zap.String("kind", track.Kind))

	xmlBody, err := f.get(ctx, html.UnescapeString(track.BaseURL))
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}

	text := timedTextToPlain(xmlBody)
	if text == "" {
		return "", fmt.Errorf("video %s: caption track was empty", videoID)
	}
	return text, nil
}

func (f *YouTubeTranscriptFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// pickCaptionTrack prefers manually-authored English captions, then
// auto-generated English, then whatever track exists.
func pickCaptionTrack(page string) (*captionTrack, error) {
	match := captionTracksRe.FindStringSubmatch(page)
	if match == nil {
		return nil, fmt.Errorf("no captions available")
	}
	var tracks []captionTrack
	if err := json.Unmarshal([]byte(match[1]), &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption track list: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no captions available")
	}

	var english, englishAuto *captionTrack
	for i := range tracks {
		t := &tracks[i]
		if !strings.HasPrefix(t.LanguageCode, "en") {
			continue
		}
		if t.Kind == "asr" {
			if englishAuto == nil {
				englishAuto = t
			}
		} else if english == nil {
			english = t
		}
	}
	if english != nil {
		return english, nil
	}
	if englishAuto != nil {
		return englishAuto, nil
	}
	return &tracks[0], nil
}

// timedTextToPlain flattens a timedtext XML document into plain text
func timedTextToPlain(xmlBody string) string {
	matches := timedTextRe.FindAllStringSubmatch(xmlBody, -1)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		text := html.UnescapeString(m[1])
		text = strings.TrimSpace(text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
