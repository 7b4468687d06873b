package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// BatchOrchestrator processes an ordered list of download requests and
// aggregates per-item outcomes into a BatchReport. Requests run on a
// bounded worker pool; each item resolves its stream spec, then goes
// through the retry controller. The credential context is shared across the
// batch (the provider re-extracts only when invalidated mid-run).
//
// A single item's failure never aborts the batch. Only structural problems
// (output directory cannot be created) abort the whole run. Report order
// always matches input order, whatever the completion order was.
type BatchOrchestrator struct {
	controller *RetryController
	repo       domain.DownloadRepository
	outputDir  string
	workers    int
	logger     *zap.Logger
}

// NewBatchOrchestrator creates a batch orchestrator. repo may be nil when
// history persistence is disabled. workers below 1 falls back to sequential
// processing.
func NewBatchOrchestrator(controller *RetryController, repo domain.DownloadRepository, outputDir string, workers int, logger *zap.Logger) *BatchOrchestrator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchOrchestrator{
		controller: controller,
		repo:       repo,
		outputDir:  outputDir,
		workers:    workers,
		logger:     logger,
	}
}

// Run processes the requests and returns the aggregated report. The error
// return is reserved for structural failures; per-item errors live inside
// the report. Cancelling ctx stops new items from starting; items already
// in flight finish or fail naturally and unstarted ones are reported as
// cancelled.
func (o *BatchOrchestrator) Run(ctx context.Context, requests []domain.DownloadRequest) (*domain.BatchReport, error) {
	if err := os.MkdirAll(o.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	batchID := uuid.New().String()
	report := domain.NewBatchReport(len(requests))
	o.logger.Info("Batch started",
		zap.String("batch_id", batchID),
		zap.Int("total", len(requests)),
		zap.Int("workers", o.workers))

	type job struct {
		index   int
		request domain.DownloadRequest
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				report.SetResult(j.index, o.processOne(ctx, j.request))
			}
		}()
	}

	for i, req := range requests {
		jobs <- job{index: i, request: req}
	}
	close(jobs)
	wg.Wait()

	report.Finalize()
	o.persist(batchID, report)
	o.logger.Info("Batch finished",
		zap.String("batch_id", batchID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}

// processOne runs a single request end to end. Workers pull from the job
// channel until it drains, so a cancelled context turns every not-yet
// started item into a cancelled result without abandoning in-flight ones.
func (o *BatchOrchestrator) processOne(ctx context.Context, req domain.DownloadRequest) domain.VideoResult {
	if ctx.Err() != nil {
		return domain.VideoResult{
			Request: req,
			Status:  domain.VideoFailed,
			Reason:  domain.ReasonCancelled,
		}
	}
	spec, err := domain.ResolveStreamSpec(req.Format, req.Quality)
	if err != nil {
		// Requests are validated on creation, so this only fires for
		// hand-built requests that bypassed NewDownloadRequest.
		return domain.VideoResult{
			Request: req,
			Status:  domain.VideoFailed,
			Reason:  err.Error(),
		}
	}
	return o.controller.Attempt(ctx, req, spec, o.outputDir)
}

// persist writes one history record per result. History is best-effort:
// storage errors are logged, never propagated into the report.
func (o *BatchOrchestrator) persist(batchID string, report *domain.BatchReport) {
	if o.repo == nil {
		return
	}
	for _, result := range report.Results {
		if err := o.repo.Create(domain.NewDownloadRecord(batchID, result)); err != nil {
			o.logger.Error("Failed to persist download record",
				zap.String("url", result.Request.URL),
				zap.Error(err))
		}
	}
}
