package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed download attempt. The retry controller's
// whole policy hangs off this classification.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"
	KindAuthRequired      ErrorKind = "auth_required"
	KindNotFound          ErrorKind = "not_found"
	KindRegionBlocked     ErrorKind = "region_blocked"
	KindFilesystem        ErrorKind = "filesystem"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
)

// DownloadError is the error type the extractor reports. Every failure that
// crosses the extractor boundary carries a kind.
type DownloadError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *DownloadError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewDownloadError builds a classified extractor error
func NewDownloadError(kind ErrorKind, msg string, err error) *DownloadError {
	return &DownloadError{Kind: kind, Msg: msg, Err: err}
}

// IsRetryable reports whether retrying the attempt can plausibly change the
// outcome (transient network, server or TLS hiccups).
func IsRetryable(err error) bool {
	var de *DownloadError
	if errors.As(err, &de) {
		return de.Kind == KindNetwork
	}
	return false
}

// IsAuthRequired reports whether the failure is gated content that a
// credential refresh may unlock (age-restricted, members-only, 401/403).
func IsAuthRequired(err error) bool {
	var de *DownloadError
	if errors.As(err, &de) {
		return de.Kind == KindAuthRequired
	}
	return false
}

// ErrorKindOf extracts the kind from an extractor error, or "" if untagged
func ErrorKindOf(err error) ErrorKind {
	var de *DownloadError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// InvalidOptionError reports a bad format/quality/url token. It is surfaced
// to the caller before any network activity happens.
type InvalidOptionError struct {
	Field string
	Value string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// ReasonMaxRetries is the terminal reason when the retryable budget runs out
const ReasonMaxRetries = "max retries exceeded"

// ReasonCancelled marks requests that never started because the batch was stopped
const ReasonCancelled = "cancelled"
