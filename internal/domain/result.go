package domain

import "time"

// AttemptResult classifies the outcome of one download attempt
type AttemptResult string

const (
	AttemptSuccess          AttemptResult = "success"
	AttemptRetryableFailure AttemptResult = "retryable_failure"
	AttemptFatalFailure     AttemptResult = "fatal_failure"
)

// AttemptOutcome records a single attempt inside the retry loop. It is
// consumed by the controller and carried on the VideoResult for reporting;
// it is never persisted on its own.
type AttemptOutcome struct {
	AttemptNumber     int           `json:"attempt_number"`
	Result            AttemptResult `json:"result"`
	Reason            string        `json:"reason,omitempty"`
	BackoffBeforeNext time.Duration `json:"backoff_before_next,omitempty"`
}

// VideoStatus is the terminal status of one requested video
type VideoStatus string

const (
	VideoDownloaded VideoStatus = "downloaded"
	VideoFailed     VideoStatus = "failed"
)

// VideoResult is the per-video outcome produced by the retry controller
type VideoResult struct {
	Request      DownloadRequest  `json:"request"`
	Status       VideoStatus      `json:"status"`
	Path         string           `json:"path,omitempty"`
	Title        string           `json:"title,omitempty"`
	Reason       string           `json:"reason,omitempty"`
	ErrorKind    ErrorKind        `json:"error_kind,omitempty"`
	AttemptsUsed int              `json:"attempts_used"`
	Attempts     []AttemptOutcome `json:"attempts,omitempty"`
}

// Succeeded reports whether the video was downloaded
func (r VideoResult) Succeeded() bool {
	return r.Status == VideoDownloaded
}

// BatchReport aggregates the results of one batch run. Results are kept in
// original request order regardless of completion order.
type BatchReport struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []VideoResult `json:"results"`
}

// NewBatchReport allocates a report sized for the request list
func NewBatchReport(total int) *BatchReport {
	return &BatchReport{Total: total, Results: make([]VideoResult, total)}
}

// SetResult stores a result at its original request index
func (b *BatchReport) SetResult(index int, result VideoResult) {
	b.Results[index] = result
}

// Finalize computes the aggregate counts from the stored results
func (b *BatchReport) Finalize() {
	b.Succeeded = 0
	b.Failed = 0
	for _, r := range b.Results {
		if r.Succeeded() {
			b.Succeeded++
		} else {
			b.Failed++
		}
	}
}

// AllSucceeded reports whether every requested video downloaded
func (b *BatchReport) AllSucceeded() bool {
	return b.Failed == 0
}
