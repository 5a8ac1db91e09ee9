package repository

import (
	"time"

	"hospital-records/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(userID *uint, action, department, details string) error {
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Department: department,
		Details:    details,
	}
	return r.db.Create(log).Error
}

// ListRecent returns the newest entries first
func (r *AuditRepository) ListRecent(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// DeleteOlderThan removes entries created before cutoff and reports how many went.
// Timestamps are stored in UTC, so cutoff is compared in UTC as well.
func (r *AuditRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff.UTC()).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
