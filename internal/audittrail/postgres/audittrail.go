package postgres

import (
	"context"

	"github.com/openclerk/backoffice/internal/audittrail"
	"github.com/openclerk/backoffice/internal/core/entity"
	"gorm.io/gorm"
)

// AuditTrailRepository is append-only, like the activity log.
type AuditTrailRepository struct {
	db *gorm.DB
}

func NewAuditTrailRepository(db *gorm.DB) audittrail.RepositoryAPI {
	return &AuditTrailRepository{db: db}
}

func (r *AuditTrailRepository) Append(ctx context.Context, trail *entity.AuditTrail) error {
	return r.db.WithContext(ctx).Create(trail).Error
}

func (r *AuditTrailRepository) ByEntity(ctx context.Context, entityType string, entityID uint) ([]entity.AuditTrail, error) {
	var trails []entity.AuditTrail
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("timestamp ASC").
		Find(&trails).Error
	return trails, err
}

func (r *AuditTrailRepository) ByUser(ctx context.Context, userID uint, limit int) ([]entity.AuditTrail, error) {
	var trails []entity.AuditTrail
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&trails).Error
	return trails, err
}
