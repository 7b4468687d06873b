package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// SummaryCache stores fetched transcripts and generated summaries so a
// repeated request for the same video costs nothing.
type SummaryCache interface {
	GetTranscript(videoID string) (string, bool)
	PutTranscript(videoID, text string) error
	GetSummary(videoID string, depth domain.SummaryDepth, model string) (string, bool)
	PutSummary(videoID string, depth domain.SummaryDepth, model, summary string) error
}

// depthPrompts maps each summary depth to its per-chunk prompt template
var depthPrompts = map[domain.SummaryDepth]string{
	domain.DepthBasic: "Summarize the following video transcript section in a short " +
		"paragraph covering only the main points:\n\n%s",
	domain.DepthDetailed: "Write a detailed summary of the following video transcript " +
		"section. Keep the key arguments, examples and conclusions:\n\n%s",
	domain.DepthTechnical: "Write a technical summary of the following video transcript " +
		"section. Preserve terminology, numbers, tool names and step-by-step " +
		"instructions exactly:\n\n%s",
}

// Summarizer turns a video URL into a text summary: fetch the transcript,
// chunk it by word budget, summarize each chunk at the requested depth and
// join the pieces. Transcript and model calls go through the shared
// backoff helper; the collaborators are rate-limited, fallible services.
type Summarizer struct {
	transcripts domain.TranscriptFetcher
	llm         domain.LLMClient
	cache       SummaryCache
	config      *domain.SummaryConfig
	sleep       SleepFunc
	logger      *zap.Logger
}

// NewSummarizer creates a summarizer. cache may be nil to disable caching.
func NewSummarizer(transcripts domain.TranscriptFetcher, llm domain.LLMClient, cache SummaryCache, config *domain.SummaryConfig, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		transcripts: transcripts,
		llm:         llm,
		cache:       cache,
		config:      config,
		sleep:       ContextSleep,
		logger:      logger,
	}
}

// Summarize generates (or returns a cached) summary for the video at url
func (s *Summarizer) Summarize(ctx context.Context, url string, depth domain.SummaryDepth, model string) (string, error) {
	if depth == "" {
		depth = domain.SummaryDepth(s.config.DefaultDepth)
	}
	if !domain.ValidDepth(depth) {
		return "", &domain.InvalidOptionError{Field: "depth", Value: string(depth)}
	}
	if model == "" {
		model = s.config.Model
	}
	videoID := domain.VideoID(url)

	if s.cache != nil {
		if summary, ok := s.cache.GetSummary(videoID, depth, model); ok {
			s.logger.Debug("Summary cache hit", zap.String("video_id", videoID))
			return summary, nil
		}
	}

	transcript, err := s.transcript(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript: %w", err)
	}

	chunks := chunkByWords(transcript, s.config.ChunkWords)
	s.logger.Info("Summarizing transcript",
		zap.String("video_id", videoID),
		zap.String("depth", string(depth)),
		zap.Int("chunks", len(chunks)))

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		prompt := fmt.Sprintf(depthPrompts[depth], chunk)
		var text string
		err := RetryWithBackoff(ctx, s.config.MaxRetries, s.config.BaseDelay, s.sleep, func() error {
			var callErr error
			text, callErr = s.llm.Complete(ctx, model, prompt, s.config.MaxTokens, s.config.Temperature)
			return callErr
		})
		if err != nil {
			return "", fmt.Errorf("failed to summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, strings.TrimSpace(text))
	}

	summary := strings.Join(summaries, "\n\n")
	if s.cache != nil {
		if err := s.cache.PutSummary(videoID, depth, model, summary); err != nil {
			s.logger.Warn("Failed to cache summary", zap.Error(err))
		}
	}
	return summary, nil
}

// transcript returns the cached transcript or fetches it with backoff
func (s *Summarizer) transcript(ctx context.Context, videoID string) (string, error) {
	if s.cache != nil {
		if text, ok := s.cache.GetTranscript(videoID); ok {
			s.logger.Debug("Transcript cache hit", zap.String("video_id", videoID))
			return text, nil
		}
	}
	var text string
	err := RetryWithBackoff(ctx, s.config.MaxRetries, s.config.BaseDelay, s.sleep, func() error {
		var fetchErr error
		text, fetchErr = s.transcripts.Fetch(ctx, videoID)
		return fetchErr
	})
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.PutTranscript(videoID, text); err != nil {
			s.logger.Warn("Failed to cache transcript", zap.Error(err))
		}
	}
	return text, nil
}

// chunkByWords splits text into chunks of at most chunkWords words,
// breaking on whitespace only.
func chunkByWords(text string, chunkWords int) []string {
	if chunkWords < 1 {
		chunkWords = 1800
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	for start := 0; start < len(words); start += chunkWords {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
