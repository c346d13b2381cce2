package repository

import (
	"context"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/gorm"
)

type TokenRepository interface {
	CreateVerification(ctx context.Context, tx *gorm.DB, token *models.EmailVerificationToken) error
	InvalidateVerifications(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error
	FindVerification(ctx context.Context, token string) (*models.EmailVerificationToken, error)
	// ConsumeVerification marks the token verified only while it is still
	// unconsumed and unexpired; the affected-row count decides redemption.
	ConsumeVerification(ctx context.Context, tx *gorm.DB, token string, at time.Time) (int64, error)

	CreateReset(ctx context.Context, tx *gorm.DB, token *models.PasswordResetToken) error
	InvalidateResets(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error
	FindReset(ctx context.Context, token string) (*models.PasswordResetToken, error)
	ConsumeReset(ctx context.Context, tx *gorm.DB, token string, at time.Time) (int64, error)

	GetDB() *gorm.DB
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *tokenRepository) CreateVerification(ctx context.Context, tx *gorm.DB, token *models.EmailVerificationToken) error {
	return tx.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) InvalidateVerifications(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.EmailVerificationToken{}).
		Where("user_id = ? AND verified_at IS NULL", userID).
		Update("verified_at", at).Error
}

func (r *tokenRepository) FindVerification(ctx context.Context, token string) (*models.EmailVerificationToken, error) {
	var record models.EmailVerificationToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *tokenRepository) ConsumeVerification(ctx context.Context, tx *gorm.DB, token string, at time.Time) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.EmailVerificationToken{}).
		Where("token = ? AND verified_at IS NULL AND expires_at > ?", token, at).
		Update("verified_at", at)
	return result.RowsAffected, result.Error
}

func (r *tokenRepository) CreateReset(ctx context.Context, tx *gorm.DB, token *models.PasswordResetToken) error {
	return tx.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) InvalidateResets(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", at).Error
}

func (r *tokenRepository) FindReset(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var record models.PasswordResetToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *tokenRepository) ConsumeReset(ctx context.Context, tx *gorm.DB, token string, at time.Time) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, at).
		Update("used_at", at)
	return result.RowsAffected, result.Error
}
