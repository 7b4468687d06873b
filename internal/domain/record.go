package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadRecord is one row of download history. The orchestrator writes a
// record per requested video so past runs survive process restarts and are
// visible through the CLI and the HTTP API.
type DownloadRecord struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	BatchID      string      `json:"batch_id" gorm:"index"`
	URL          string      `json:"url" gorm:"not null"`
	Format       Format      `json:"format"`
	Quality      Quality     `json:"quality"`
	Status       VideoStatus `json:"status" gorm:"index"`
	FilePath     string      `json:"file_path,omitempty"`
	Title        string      `json:"title,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	ErrorKind    ErrorKind   `json:"error_kind,omitempty"`
	AttemptsUsed int         `json:"attempts_used"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}

// NewDownloadRecord builds a history record from a finished video result
func NewDownloadRecord(batchID string, result VideoResult) *DownloadRecord {
	now := time.Now()
	rec := &DownloadRecord{
		ID:           uuid.New().String(),
		BatchID:      batchID,
		URL:          result.Request.URL,
		Format:       result.Request.Format,
		Quality:      result.Request.Quality,
		Status:       result.Status,
		AttemptsUsed: result.AttemptsUsed,
		CreatedAt:    now,
		CompletedAt:  &now,
	}
	if result.Succeeded() {
		rec.FilePath = result.Path
		rec.Title = result.Title
	} else {
		rec.ErrorMessage = result.Reason
		rec.ErrorKind = result.ErrorKind
	}
	return rec
}

// DownloadStats summarizes the history table
type DownloadStats struct {
	Total      int64 `json:"total"`
	Downloaded int64 `json:"downloaded"`
	Failed     int64 `json:"failed"`
}
