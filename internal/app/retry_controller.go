package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// RetryController wraps a single requested download with bounded retries
// and exponential backoff. Failure classification drives the policy:
//
//   - retryable (network-class): sleep baseDelay*2^(n-1), retry up to
//     maxRetries total attempts, then fail with "max retries exceeded"
//   - auth-required: invalidate the shared credential context, re-fetch,
//     and retry at most one extra time regardless of the retry budget
//   - fatal (gone/private/region/filesystem): fail immediately
//
// Exhaustion is reported in the VideoResult, never raised as a
// program-terminating error.
type RetryController struct {
	extractor  domain.Extractor
	creds      domain.CredentialProvider
	maxRetries int
	baseDelay  time.Duration
	sleep      SleepFunc
	logger     *zap.Logger
}

// NewRetryController creates a retry controller. maxRetries counts total
// attempts for retryable failures; defaults apply when zero.
func NewRetryController(extractor domain.Extractor, creds domain.CredentialProvider, maxRetries int, baseDelay time.Duration, logger *zap.Logger) *RetryController {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryController{
		extractor:  extractor,
		creds:      creds,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      ContextSleep,
		logger:     logger,
	}
}

// Attempt runs the download for one request until success, a fatal failure,
// or retry exhaustion, and returns the per-video outcome.
func (c *RetryController) Attempt(ctx context.Context, req domain.DownloadRequest, spec domain.StreamSpec, outputDir string) domain.VideoResult {
	var attempts []domain.AttemptOutcome
	credentials := c.creds.GetCredentials(ctx)
	authRefreshed := false
	attempt := 1

	for {
		path, title, err := c.extractor.Download(ctx, req, spec, credentials, outputDir)
		if err == nil {
			attempts = append(attempts, domain.AttemptOutcome{
				AttemptNumber: attempt,
				Result:        domain.AttemptSuccess,
			})
			c.logger.Info("Download succeeded",
				zap.String("url", req.URL),
				zap.String("path", path),
				zap.Int("attempts", attempt))
			return domain.VideoResult{
				Request:      req,
				Status:       domain.VideoDownloaded,
				Path:         path,
				Title:        title,
				AttemptsUsed: attempt,
				Attempts:     attempts,
			}
		}

		kind := domain.ErrorKindOf(err)
		c.logger.Warn("Download attempt failed",
			zap.String("url", req.URL),
			zap.Int("attempt", attempt),
			zap.String("kind", string(kind)),
			zap.Error(err))

		switch {
		case domain.IsAuthRequired(err):
			if !authRefreshed {
				// One credential refresh gets one extra attempt, outside
				// the retryable budget.
				authRefreshed = true
				c.creds.Invalidate()
				credentials = c.creds.GetCredentials(ctx)
				attempts = append(attempts, domain.AttemptOutcome{
					AttemptNumber: attempt,
					Result:        domain.AttemptRetryableFailure,
					Reason:        err.Error(),
				})
				attempt++
				continue
			}
			attempts = append(attempts, domain.AttemptOutcome{
				AttemptNumber: attempt,
				Result:        domain.AttemptFatalFailure,
				Reason:        err.Error(),
			})
			return c.failed(req, err, kind, attempt, attempts)

		case domain.IsRetryable(err):
			if attempt < c.maxRetries {
				delay := BackoffDelay(c.baseDelay, attempt)
				attempts = append(attempts, domain.AttemptOutcome{
					AttemptNumber:     attempt,
					Result:            domain.AttemptRetryableFailure,
					Reason:            err.Error(),
					BackoffBeforeNext: delay,
				})
				if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
					return domain.VideoResult{
						Request:      req,
						Status:       domain.VideoFailed,
						Reason:       domain.ReasonCancelled,
						AttemptsUsed: attempt,
						Attempts:     attempts,
					}
				}
				attempt++
				continue
			}
			attempts = append(attempts, domain.AttemptOutcome{
				AttemptNumber: attempt,
				Result:        domain.AttemptRetryableFailure,
				Reason:        err.Error(),
			})
			return domain.VideoResult{
				Request:      req,
				Status:       domain.VideoFailed,
				Reason:       domain.ReasonMaxRetries,
				ErrorKind:    kind,
				AttemptsUsed: c.maxRetries,
				Attempts:     attempts,
			}

		default:
			attempts = append(attempts, domain.AttemptOutcome{
				AttemptNumber: attempt,
				Result:        domain.AttemptFatalFailure,
				Reason:        err.Error(),
			})
			return c.failed(req, err, kind, attempt, attempts)
		}
	}
}

func (c *RetryController) failed(req domain.DownloadRequest, err error, kind domain.ErrorKind, attempt int, attempts []domain.AttemptOutcome) domain.VideoResult {
	return domain.VideoResult{
		Request:      req,
		Status:       domain.VideoFailed,
		Reason:       err.Error(),
		ErrorKind:    kind,
		AttemptsUsed: attempt,
		Attempts:     attempts,
	}
}
