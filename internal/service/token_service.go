package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/pkg/random"
	"gorm.io/gorm"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyVerified = errors.New("email already verified")
	ErrTokenInvalid    = errors.New("invalid or expired token")
)

type TokenService interface {
	// ResendVerification issues a fresh verification token, invalidating any
	// outstanding ones. Returns the token so development builds can surface it.
	ResendVerification(ctx context.Context, email string) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	// RequestPasswordReset never reveals whether the email exists; the caller
	// must return the same response either way.
	RequestPasswordReset(ctx context.Context, email, ip, userAgent string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, ip, userAgent string) error
}

type tokenService struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
	logRepo   repository.SecurityLogRepository
}

func NewTokenService(tokenRepo repository.TokenRepository, userRepo repository.UserRepository, logRepo repository.SecurityLogRepository) TokenService {
	return &tokenService{tokenRepo: tokenRepo, userRepo: userRepo, logRepo: logRepo}
}

func (s *tokenService) ResendVerification(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.EmailVerified {
		return "", ErrAlreadyVerified
	}

	value, err := random.Hex(32)
	if err != nil {
		return "", err
	}

	err = s.tokenRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := s.tokenRepo.InvalidateVerifications(ctx, tx, user.ID, now); err != nil {
			return err
		}
		return s.tokenRepo.CreateVerification(ctx, tx, &models.EmailVerificationToken{
			UserID:    user.ID,
			Token:     value,
			Email:     email,
			ExpiresAt: now.Add(verificationTokenTTL),
		})
	})
	if err != nil {
		return "", err
	}

	// Mail delivery is owned by the identity provider's notification channel.
	slog.Info("verification token issued", "user_id", user.ID)
	return value, nil
}

func (s *tokenService) VerifyEmail(ctx context.Context, token string) (string, error) {
	record, err := s.tokenRepo.FindVerification(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTokenInvalid
		}
		return "", err
	}

	err = s.tokenRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		affected, err := s.tokenRepo.ConsumeVerification(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrTokenInvalid
		}

		if err := s.userRepo.SetEmailVerified(ctx, tx, record.UserID); err != nil {
			return err
		}

		return s.logRepo.Append(ctx, tx, &models.SecurityLog{
			UserID:  &record.UserID,
			Action:  "email_verified",
			Status:  "success",
			Details: models.StringMap{"email": record.Email},
		})
	})
	if err != nil {
		return "", err
	}

	return record.Email, nil
}

func (s *tokenService) RequestPasswordReset(ctx context.Context, email, ip, userAgent string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Indistinguishable from success to the caller.
			return "", nil
		}
		return "", err
	}
	if user.Status != "active" {
		return "", nil
	}

	value, err := random.Hex(32)
	if err != nil {
		return "", err
	}

	err = s.tokenRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := s.tokenRepo.InvalidateResets(ctx, tx, user.ID, now); err != nil {
			return err
		}
		if err := s.tokenRepo.CreateReset(ctx, tx, &models.PasswordResetToken{
			UserID:    user.ID,
			Token:     value,
			ExpiresAt: now.Add(resetTokenTTL),
		}); err != nil {
			return err
		}
		return s.logRepo.Append(ctx, tx, &models.SecurityLog{
			UserID:    &user.ID,
			Action:    "password_reset_requested",
			IPAddress: ip,
			UserAgent: userAgent,
			Status:    "success",
			Details:   models.StringMap{"email": email},
		})
	})
	if err != nil {
		return "", err
	}

	slog.Info("password reset token issued", "user_id", user.ID)
	return value, nil
}

// ConfirmPasswordReset consumes the token; the credential change itself
// happens at the identity provider, which remains authoritative.
func (s *tokenService) ConfirmPasswordReset(ctx context.Context, token, ip, userAgent string) error {
	record, err := s.tokenRepo.FindReset(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	return s.tokenRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.tokenRepo.ConsumeReset(ctx, tx, token, time.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrTokenInvalid
		}

		return s.logRepo.Append(ctx, tx, &models.SecurityLog{
			UserID:    &record.UserID,
			Action:    "password_reset_completed",
			IPAddress: ip,
			UserAgent: userAgent,
			Status:    "success",
			Details:   models.StringMap{},
		})
	})
}
