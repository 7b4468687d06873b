package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// BatchRunStatus is the lifecycle state of a submitted batch
type BatchRunStatus string

const (
	BatchRunning   BatchRunStatus = "running"
	BatchCompleted BatchRunStatus = "completed"
	BatchFailed    BatchRunStatus = "failed"
	BatchCancelled BatchRunStatus = "cancelled"
)

// BatchRun tracks one batch submitted through the HTTP API. The report is
// nil while the run is in flight.
type BatchRun struct {
	ID          string              `json:"id"`
	Status      BatchRunStatus      `json:"status"`
	Total       int                 `json:"total"`
	Report      *domain.BatchReport `json:"report,omitempty"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// BatchService runs batches asynchronously for the HTTP surface and keeps
// an in-memory registry of their runs. The CLI path calls the orchestrator
// directly and does not go through this service.
type BatchService struct {
	orch   *BatchOrchestrator
	logger *zap.Logger

	mu      sync.RWMutex
	runs    map[string]*BatchRun
	cancels map[string]context.CancelFunc
}

// NewBatchService creates a batch service over the orchestrator
func NewBatchService(orch *BatchOrchestrator, logger *zap.Logger) *BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{
		orch:    orch,
		logger:  logger,
		runs:    make(map[string]*BatchRun),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Submit starts the batch in the background and returns its run handle
func (s *BatchService) Submit(requests []domain.DownloadRequest) *BatchRun {
	runCtx, cancel := context.WithCancel(context.Background())
	run := &BatchRun{
		ID:        uuid.New().String(),
		Status:    BatchRunning,
		Total:     len(requests),
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.cancels[run.ID] = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		report, err := s.orch.Run(runCtx, requests)
		now := time.Now()
		s.mu.Lock()
		defer s.mu.Unlock()
		run.CompletedAt = &now
		if err != nil {
			run.Status = BatchFailed
			run.Error = err.Error()
			s.logger.Error("Batch run failed", zap.String("id", run.ID), zap.Error(err))
			return
		}
		run.Report = report
		if runCtx.Err() != nil {
			run.Status = BatchCancelled
		} else {
			run.Status = BatchCompleted
		}
	}()
	return run
}

// Get returns a snapshot of a run by ID. Snapshots are value copies so
// callers can marshal them without racing the run goroutine; the embedded
// report is immutable once set.
func (s *BatchService) Get(id string) (BatchRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return BatchRun{}, false
	}
	return *run, true
}

// List returns snapshots of all known runs
func (s *BatchService) List() []BatchRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]BatchRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, *run)
	}
	return runs
}

// Cancel signals a running batch to stop. In-flight downloads finish or
// fail naturally; unstarted items end up cancelled in the report.
func (s *BatchService) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("batch not found: %s", id)
	}
	if run.Status != BatchRunning {
		return fmt.Errorf("batch already in terminal state: %s", run.Status)
	}
	if cancel, ok := s.cancels[id]; ok {
		cancel()
	}
	return nil
}
