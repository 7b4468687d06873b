package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// mapExtractor scripts one outcome per URL and is safe for concurrent use
type mapExtractor struct {
	mu       sync.Mutex
	outcomes map[string]error
	calls    map[string]int
	block    chan struct{} // when set, Download waits for it before returning
}

func (e *mapExtractor) Download(ctx context.Context, req domain.DownloadRequest, spec domain.StreamSpec, creds *domain.CredentialContext, outputDir string) (string, string, error) {
	if e.block != nil {
		<-e.block
	}
	e.mu.Lock()
	if e.calls == nil {
		e.calls = make(map[string]int)
	}
	e.calls[req.URL]++
	err := e.outcomes[req.URL]
	e.mu.Unlock()
	if err != nil {
		return "", "", err
	}
	return outputDir + "/" + domain.VideoID(req.URL) + ".mp4", "Title " + domain.VideoID(req.URL), nil
}

// memoryRepo collects persisted records in memory
type memoryRepo struct {
	mu      sync.Mutex
	records []*domain.DownloadRecord
}

func (r *memoryRepo) Create(record *domain.DownloadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *memoryRepo) Update(record *domain.DownloadRecord) error            { return nil }
func (r *memoryRepo) FindByID(id string) (*domain.DownloadRecord, error)    { return nil, nil }
func (r *memoryRepo) FindByBatch(id string) ([]*domain.DownloadRecord, error) { return nil, nil }
func (r *memoryRepo) FindRecent(limit int) ([]*domain.DownloadRecord, error)  { return nil, nil }
func (r *memoryRepo) GetStats() (*domain.DownloadStats, error)              { return nil, nil }

func mustRequests(t *testing.T, format domain.Format, quality domain.Quality, urls ...string) []domain.DownloadRequest {
	t.Helper()
	requests := make([]domain.DownloadRequest, 0, len(urls))
	for _, url := range urls {
		req, err := domain.NewDownloadRequest(url, format, quality)
		require.NoError(t, err)
		requests = append(requests, req)
	}
	return requests
}

func newTestOrchestrator(t *testing.T, extractor domain.Extractor, repo domain.DownloadRepository, workers int) *BatchOrchestrator {
	t.Helper()
	controller := NewRetryController(extractor, anonProvider(), 3, time.Millisecond, nil)
	controller.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return NewBatchOrchestrator(controller, repo, t.TempDir(), workers, nil)
}

func TestBatchOrchestrator_MixedOutcomesKeepOrder(t *testing.T) {
	// One failed item never aborts the batch, and the report keeps the
	// input order whatever the completion order was.
	extractor := &mapExtractor{outcomes: map[string]error{
		"https://youtu.be/bbb": domain.NewDownloadError(domain.KindNotFound, "video unavailable", nil),
	}}
	orch := newTestOrchestrator(t, extractor, nil, 2)
	requests := mustRequests(t, domain.FormatMP4, domain.QualityBest,
		"https://youtu.be/aaa", "https://youtu.be/bbb", "https://youtu.be/ccc")

	report, err := orch.Run(context.Background(), requests)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.AllSucceeded())
	require.Len(t, report.Results, 3)
	assert.Equal(t, "https://youtu.be/aaa", report.Results[0].Request.URL)
	assert.Equal(t, "https://youtu.be/bbb", report.Results[1].Request.URL)
	assert.Equal(t, "https://youtu.be/ccc", report.Results[2].Request.URL)
	assert.True(t, report.Results[0].Succeeded())
	assert.False(t, report.Results[1].Succeeded())
	assert.Equal(t, domain.KindNotFound, report.Results[1].ErrorKind)
	assert.True(t, report.Results[2].Succeeded())
}

func TestBatchOrchestrator_AllSucceed(t *testing.T) {
	extractor := &mapExtractor{}
	orch := newTestOrchestrator(t, extractor, nil, 1)
	requests := mustRequests(t, domain.FormatMP3, domain.QualityBest,
		"https://youtu.be/one", "https://youtu.be/two")

	report, err := orch.Run(context.Background(), requests)

	require.NoError(t, err)
	assert.True(t, report.AllSucceeded())
	assert.Equal(t, 2, report.Succeeded)
	for _, result := range report.Results {
		assert.Equal(t, 1, result.AttemptsUsed)
		assert.NotEmpty(t, result.Path)
	}
}

func TestBatchOrchestrator_PersistsRecords(t *testing.T) {
	extractor := &mapExtractor{outcomes: map[string]error{
		"https://youtu.be/bad": domain.NewDownloadError(domain.KindRegionBlocked, "not available in your country", nil),
	}}
	repo := &memoryRepo{}
	orch := newTestOrchestrator(t, extractor, repo, 1)
	requests := mustRequests(t, domain.FormatMP4, domain.Quality720p,
		"https://youtu.be/good", "https://youtu.be/bad")

	_, err := orch.Run(context.Background(), requests)

	require.NoError(t, err)
	require.Len(t, repo.records, 2)
	assert.Equal(t, repo.records[0].BatchID, repo.records[1].BatchID)
	assert.Equal(t, domain.VideoDownloaded, repo.records[0].Status)
	assert.Equal(t, domain.VideoFailed, repo.records[1].Status)
	assert.Equal(t, domain.KindRegionBlocked, repo.records[1].ErrorKind)
}

func TestBatchOrchestrator_CancelMarksUnstartedItems(t *testing.T) {
	block := make(chan struct{})
	extractor := &mapExtractor{block: block}
	orch := newTestOrchestrator(t, extractor, nil, 1)
	requests := mustRequests(t, domain.FormatMP4, domain.QualityBest,
		"https://youtu.be/first", "https://youtu.be/second", "https://youtu.be/third")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *domain.BatchReport, 1)
	go func() {
		report, _ := orch.Run(ctx, requests)
		done <- report
	}()

	// Let the first item start, then cancel and release it
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(block)
	report := <-done

	require.NotNil(t, report)
	assert.Equal(t, 3, report.Total)
	// The in-flight item finished; the queued ones were reported cancelled
	assert.True(t, report.Results[0].Succeeded())
	assert.Equal(t, domain.ReasonCancelled, report.Results[1].Reason)
	assert.Equal(t, domain.ReasonCancelled, report.Results[2].Reason)
}

func TestBatchOrchestrator_MP3BatchWithPrivateVideo(t *testing.T) {
	// Two mp3 requests where the second is a private video: the private one
	// gets its single auth-refresh attempt and then fails, the first still
	// downloads, and the batch reports 1/1.
	privateErr := domain.NewDownloadError(domain.KindAuthRequired, "Private video. Sign in if you've been granted access", nil)
	extractor := &mapExtractor{outcomes: map[string]error{
		"https://youtu.be/private": privateErr,
	}}
	provider := anonProvider()
	controller := NewRetryController(extractor, provider, 3, time.Millisecond, nil)
	controller.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	orch := NewBatchOrchestrator(controller, nil, t.TempDir(), 1, nil)
	requests := mustRequests(t, domain.FormatMP3, domain.QualityBest,
		"https://youtu.be/public", "https://youtu.be/private")

	report, err := orch.Run(context.Background(), requests)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.Results[0].Succeeded())
	assert.False(t, report.Results[1].Succeeded())
	assert.Equal(t, domain.KindAuthRequired, report.Results[1].ErrorKind)
	// The refresh attempt ran: one invalidate, two extractor calls for the
	// private video.
	assert.Equal(t, 1, provider.invalidated)
	assert.Equal(t, 2, extractor.calls["https://youtu.be/private"])
	assert.Equal(t, 2, report.Results[1].AttemptsUsed)
}

func TestBatchOrchestrator_EmptyRequestList(t *testing.T) {
	orch := newTestOrchestrator(t, &mapExtractor{}, nil, 2)

	report, err := orch.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.True(t, report.AllSucceeded())
}
