package repository

import (
	"context"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, tx *gorm.DB, admin *models.AdminUser) error
	FindActiveByUserID(ctx context.Context, userID uint) (*models.AdminUser, error)
	FindActiveBySubjectID(ctx context.Context, subjectID string) (*models.AdminUser, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, tx *gorm.DB, admin *models.AdminUser) error {
	return tx.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) FindActiveByUserID(ctx context.Context, userID uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindActiveBySubjectID(ctx context.Context, subjectID string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = admin_users.user_id").
		Where("users.subject_id = ? AND admin_users.is_active = ?", subjectID, true).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
