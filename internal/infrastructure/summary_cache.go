package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// FileSummaryCache stores transcripts and summaries as flat files under a
// cache directory. Transcripts are keyed by video id; summaries by video
// id, depth and model, since all three change the output.
type FileSummaryCache struct {
	dir string
}

// NewFileSummaryCache creates the cache rooted at dir
func NewFileSummaryCache(dir string) (*FileSummaryCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileSummaryCache{dir: dir}, nil
}

func (c *FileSummaryCache) transcriptPath(videoID string) string {
	return filepath.Join(c.dir, fmt.Sprintf("transcript_%s.txt", videoID))
}

func (c *FileSummaryCache) summaryPath(videoID string, depth domain.SummaryDepth, model string) string {
	return filepath.Join(c.dir, fmt.Sprintf("summary_%s_%s_%s.md", videoID, depth, model))
}

// GetTranscript returns a cached transcript, if present
func (c *FileSummaryCache) GetTranscript(videoID string) (string, bool) {
	data, err := os.ReadFile(c.transcriptPath(videoID))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// PutTranscript stores a transcript
func (c *FileSummaryCache) PutTranscript(videoID, text string) error {
	return os.WriteFile(c.transcriptPath(videoID), []byte(text), 0644)
}

// GetSummary returns a cached summary, if present
func (c *FileSummaryCache) GetSummary(videoID string, depth domain.SummaryDepth, model string) (string, bool) {
	data, err := os.ReadFile(c.summaryPath(videoID, depth, model))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// PutSummary stores a summary
func (c *FileSummaryCache) PutSummary(videoID string, depth domain.SummaryDepth, model, summary string) error {
	return os.WriteFile(c.summaryPath(videoID, depth, model), []byte(summary), 0644)
}
