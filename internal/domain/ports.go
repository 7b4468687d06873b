package domain

import "context"

// Extractor is the external extraction/download collaborator. It resolves
// playable streams from a video URL and writes a file into outputDir.
// Failures come back as *DownloadError with a kind the retry controller
// can act on.
type Extractor interface {
	Download(ctx context.Context, req DownloadRequest, spec StreamSpec, creds *CredentialContext, outputDir string) (path, title string, err error)
}

// CookieSource produces a cookies.txt file from one concrete origin
// (explicit file, a browser profile, ...). Sources are tried in a fixed
// priority order by the authentication provider.
type CookieSource interface {
	Source() CredentialSource
	Extract(ctx context.Context) (cookieFile string, err error)
}

// CredentialProvider resolves and caches the credential context used by
// download attempts.
type CredentialProvider interface {
	GetCredentials(ctx context.Context) *CredentialContext
	Invalidate()
}

// TranscriptFetcher fetches the plain-text transcript for a video
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// LLMClient is the hosted large-language-model collaborator used by the
// summarizer. Treated as an opaque, fallible, rate-limited service.
type LLMClient interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error)
}

// DownloadRepository persists the download history
type DownloadRepository interface {
	Create(record *DownloadRecord) error
	Update(record *DownloadRecord) error
	FindByID(id string) (*DownloadRecord, error)
	FindByBatch(batchID string) ([]*DownloadRecord, error)
	FindRecent(limit int) ([]*DownloadRecord, error)
	GetStats() (*DownloadStats, error)
}
