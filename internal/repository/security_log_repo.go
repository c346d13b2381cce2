package repository

import (
	"context"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/gorm"
)

type SecurityLogRepository interface {
	Append(ctx context.Context, tx *gorm.DB, entry *models.SecurityLog) error
}

type securityLogRepository struct {
	db *gorm.DB
}

func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &securityLogRepository{db: db}
}

func (r *securityLogRepository) Append(ctx context.Context, tx *gorm.DB, entry *models.SecurityLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}
