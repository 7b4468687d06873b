package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// SQLiteDownloadRepository persists download history in a local SQLite
// database via GORM.
type SQLiteDownloadRepository struct {
	db *gorm.DB
}

// NewSQLiteDownloadRepository opens (creating if needed) the history
// database and migrates the schema.
func NewSQLiteDownloadRepository(databasePath string) (*SQLiteDownloadRepository, error) {
	if err := os.MkdirAll(filepath.Dir(databasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&domain.DownloadRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &SQLiteDownloadRepository{db: db}, nil
}

// Create inserts a new download record
func (r *SQLiteDownloadRepository) Create(record *domain.DownloadRecord) error {
	return r.db.Create(record).Error
}

// Update saves changes to an existing record
func (r *SQLiteDownloadRepository) Update(record *domain.DownloadRecord) error {
	return r.db.Save(record).Error
}

// FindByID returns the record with the given id
func (r *SQLiteDownloadRepository) FindByID(id string) (*domain.DownloadRecord, error) {
	var record domain.DownloadRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByBatch returns all records of one batch in creation order
func (r *SQLiteDownloadRepository) FindByBatch(batchID string) ([]*domain.DownloadRecord, error) {
	var records []*domain.DownloadRecord
	err := r.db.Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// FindRecent returns the most recent records, newest first
func (r *SQLiteDownloadRepository) FindRecent(limit int) ([]*domain.DownloadRecord, error) {
	if limit < 1 {
		limit = 50
	}
	var records []*domain.DownloadRecord
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// GetStats aggregates counts over the whole history table
func (r *SQLiteDownloadRepository) GetStats() (*domain.DownloadStats, error) {
	stats := &domain.DownloadStats{}
	if err := r.db.Model(&domain.DownloadRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.DownloadRecord{}).
		Where("status = ?", domain.VideoDownloaded).
		Count(&stats.Downloaded).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.DownloadRecord{}).
		Where("status = ?", domain.VideoFailed).
		Count(&stats.Failed).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
