package service

import (
	"context"
	"testing"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	findBySubjectFn func(ctx context.Context, subjectID string) (*models.User, error)
	findByEmailFn   func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return nil
}
func (m *mockUserRepo) FindBySubjectID(ctx context.Context, tx *gorm.DB, subjectID string) (*models.User, error) {
	return m.findBySubjectFn(ctx, subjectID)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error {
	return nil
}
func (m *mockUserRepo) SetEmailVerified(ctx context.Context, tx *gorm.DB, userID uint) error {
	return nil
}
func (m *mockUserRepo) GetDB() *gorm.DB { return nil }

// --- Mock AdminRepository ---

type mockAdminRepo struct {
	findBySubjectFn func(ctx context.Context, subjectID string) (*models.AdminUser, error)
}

func (m *mockAdminRepo) Create(ctx context.Context, tx *gorm.DB, admin *models.AdminUser) error {
	return nil
}
func (m *mockAdminRepo) FindActiveByUserID(ctx context.Context, userID uint) (*models.AdminUser, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockAdminRepo) FindActiveBySubjectID(ctx context.Context, subjectID string) (*models.AdminUser, error) {
	return m.findBySubjectFn(ctx, subjectID)
}

// --- Tests ---

func TestRequireAdmin_Active(t *testing.T) {
	admins := &mockAdminRepo{
		findBySubjectFn: func(ctx context.Context, subjectID string) (*models.AdminUser, error) {
			assert.Equal(t, "sub-1", subjectID)
			return &models.AdminUser{ID: 1, UserID: 5, Role: models.RoleSuperAdmin, Permissions: models.FullPermissions}, nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, admins, &mockLogRepo{}, nil)
	admin, err := svc.RequireAdmin(context.Background(), "sub-1")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), admin.UserID)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)
}

func TestRequireAdmin_NotAdmin(t *testing.T) {
	admins := &mockAdminRepo{
		findBySubjectFn: func(ctx context.Context, subjectID string) (*models.AdminUser, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewAuthService(&mockUserRepo{}, admins, &mockLogRepo{}, nil)
	admin, err := svc.RequireAdmin(context.Background(), "sub-2")

	assert.Nil(t, admin)
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestUserBySubject_NotRegistered(t *testing.T) {
	users := &mockUserRepo{
		findBySubjectFn: func(ctx context.Context, subjectID string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewAuthService(users, &mockAdminRepo{}, &mockLogRepo{}, nil)
	user, err := svc.UserBySubject(context.Background(), "sub-3")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserBySubject_Found(t *testing.T) {
	users := &mockUserRepo{
		findBySubjectFn: func(ctx context.Context, subjectID string) (*models.User, error) {
			return &models.User{ID: 9, SubjectID: subjectID, Email: "ana@example.com"}, nil
		},
	}

	svc := NewAuthService(users, &mockAdminRepo{}, &mockLogRepo{}, nil)
	user, err := svc.UserBySubject(context.Background(), "sub-4")

	assert.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)
}

func TestIsAdminEmail_CaseInsensitive(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockAdminRepo{}, &mockLogRepo{}, []string{"boss@example.com"}).(*authService)

	assert.True(t, svc.isAdminEmail("Boss@Example.com"))
	assert.False(t, svc.isAdminEmail("intern@example.com"))
}
