package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/entradalive/ticketing/internal/identity"
	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoIdentity = errors.New("no identity supplied")
	ErrNotAdmin   = errors.New("admin access required")
)

type SyncResult struct {
	User        *models.User
	IsAdmin     bool
	Role        models.AdminRole
	Permissions models.StringSlice
}

type AuthService interface {
	// Sync upserts the local user for the provider identity and resolves the
	// admin role. Admin status always comes from the admin_users table, never
	// from provider claims.
	Sync(ctx context.Context, claims *identity.Claims, ip, userAgent string) (*SyncResult, error)
	RequireAdmin(ctx context.Context, subjectID string) (*models.AdminUser, error)
	// UserBySubject resolves the local user for a verified provider subject.
	UserBySubject(ctx context.Context, subjectID string) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	adminRepo   repository.AdminRepository
	logRepo     repository.SecurityLogRepository
	adminEmails []string
}

func NewAuthService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	logRepo repository.SecurityLogRepository,
	adminEmails []string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		logRepo:     logRepo,
		adminEmails: adminEmails,
	}
}

func (s *authService) Sync(ctx context.Context, claims *identity.Claims, ip, userAgent string) (*SyncResult, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrNoIdentity
	}

	var user *models.User

	// User upsert, admin bootstrap and the audit row commit or roll back together.
	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.userRepo.FindBySubjectID(ctx, tx, claims.Subject)
		switch {
		case err == nil:
			now := time.Now()
			if err := s.userRepo.UpdateLastLogin(ctx, tx, existing.ID, now); err != nil {
				return err
			}
			existing.LastLogin = &now
			user = existing

		case errors.Is(err, gorm.ErrRecordNotFound):
			now := time.Now()
			user = &models.User{
				SubjectID:     claims.Subject,
				Email:         claims.Email,
				FirstName:     claims.FirstName(),
				LastName:      claims.LastName(),
				EmailVerified: claims.EmailVerified,
				Status:        "active",
				LastLogin:     &now,
			}
			if err := s.userRepo.Create(ctx, tx, user); err != nil {
				return err
			}

			if s.isAdminEmail(claims.Email) {
				admin := &models.AdminUser{
					UserID:      user.ID,
					Role:        models.RoleSuperAdmin,
					Permissions: models.FullPermissions,
					IsActive:    true,
				}
				if err := s.adminRepo.Create(ctx, tx, admin); err != nil {
					return err
				}
				grant := &models.SecurityLog{
					UserID:   &user.ID,
					Action:   "admin_granted",
					Resource: "admin_user",
					Status:   "success",
					Details:  models.StringMap{"role": string(models.RoleSuperAdmin), "source": "allow_list"},
				}
				if err := s.logRepo.Append(ctx, tx, grant); err != nil {
					return err
				}
			}

		default:
			return err
		}

		entry := &models.SecurityLog{
			UserID:    &user.ID,
			Action:    "login",
			IPAddress: ip,
			UserAgent: userAgent,
			Status:    "success",
			Details:   models.StringMap{"method": "identity_provider"},
		}
		return s.logRepo.Append(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	result := &SyncResult{User: user, Permissions: models.StringSlice{}}

	admin, err := s.adminRepo.FindActiveByUserID(ctx, user.ID)
	if err == nil {
		result.IsAdmin = true
		result.Role = admin.Role
		result.Permissions = admin.Permissions
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return result, nil
}

func (s *authService) RequireAdmin(ctx context.Context, subjectID string) (*models.AdminUser, error) {
	admin, err := s.adminRepo.FindActiveBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAdmin
		}
		return nil, err
	}
	return admin, nil
}

func (s *authService) UserBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	user, err := s.userRepo.FindBySubjectID(ctx, s.userRepo.GetDB(), subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) isAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, e := range s.adminEmails {
		if strings.ToLower(e) == email {
			return true
		}
	}
	return false
}
