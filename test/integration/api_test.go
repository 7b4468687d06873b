//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/api"
	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/domain"
	"github.com/yourusername/ytfetch-go/internal/infrastructure"
)

// stubExtractor succeeds for every URL without touching the network
type stubExtractor struct{}

func (stubExtractor) Download(ctx context.Context, req domain.DownloadRequest, spec domain.StreamSpec, creds *domain.CredentialContext, outputDir string) (string, string, error) {
	return outputDir + "/video.mp4", "Stub Title", nil
}

// anonymousProvider always yields an anonymous credential context
type anonymousProvider struct{}

func (anonymousProvider) GetCredentials(ctx context.Context) *domain.CredentialContext {
	return &domain.CredentialContext{Source: domain.SourceNone}
}
func (anonymousProvider) Invalidate() {}

func setupTestServer(t *testing.T) (*httptest.Server, *app.BatchService) {
	t.Helper()
	repo, err := infrastructure.NewSQLiteDownloadRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)

	controller := app.NewRetryController(stubExtractor{}, anonymousProvider{}, 3, time.Millisecond, nil)
	orch := app.NewBatchOrchestrator(controller, repo, t.TempDir(), 2, nil)
	batches := app.NewBatchService(orch, nil)

	config := domain.DefaultConfig()
	router := api.SetupRouter(batches, nil, repo, config, zap.NewNop())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, batches
}

func TestAPI_SubmitBatch(t *testing.T) {
	server, batches := setupTestServer(t)

	payload := map[string]any{
		"videos": []map[string]string{
			{"url": "https://youtu.be/abc"},
			{"url": "https://youtu.be/def", "format": "mp3"},
		},
		"quality": "720p",
	}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(server.URL+"/api/v1/batches", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var run app.BatchRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Total)

	waitForCompletion(t, batches, run.ID)

	getResp, err := http.Get(server.URL + "/api/v1/batches/" + run.ID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var final app.BatchRun
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&final))
	assert.Equal(t, app.BatchCompleted, final.Status)
	require.NotNil(t, final.Report)
	assert.True(t, final.Report.AllSucceeded())
}

func TestAPI_SubmitBatchRejectsBadInput(t *testing.T) {
	server, _ := setupTestServer(t)

	cases := []map[string]any{
		{},
		{"videos": []map[string]string{}},
		{"videos": []map[string]string{{"url": "not-a-url"}}},
		{"videos": []map[string]string{{"url": "https://youtu.be/a", "format": "avi"}}},
	}
	for _, payload := range cases {
		data, _ := json.Marshal(payload)
		resp, err := http.Post(server.URL+"/api/v1/batches", "application/json", bytes.NewReader(data))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestAPI_GetUnknownBatch(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/batches/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_History(t *testing.T) {
	server, batches := setupTestServer(t)

	payload := map[string]any{"videos": []map[string]string{{"url": "https://youtu.be/abc"}}}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(server.URL+"/api/v1/batches", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	var run app.BatchRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	resp.Body.Close()
	waitForCompletion(t, batches, run.ID)

	histResp, err := http.Get(server.URL + "/api/v1/history")
	require.NoError(t, err)
	defer histResp.Body.Close()
	require.Equal(t, http.StatusOK, histResp.StatusCode)

	var records []domain.DownloadRecord
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&records))
	assert.Len(t, records, 1)
	assert.Equal(t, domain.VideoDownloaded, records[0].Status)
}

func TestAPI_Health(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func waitForCompletion(t *testing.T, batches *app.BatchService, id string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		run, ok := batches.Get(id)
		require.True(t, ok)
		if run.Status != app.BatchRunning {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("batch never completed")
}
