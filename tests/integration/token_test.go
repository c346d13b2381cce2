//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() service.TokenService {
	return service.NewTokenService(
		repository.NewTokenRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewSecurityLogRepository(testDB),
	)
}

func TestVerifyEmail_ConsumesTokenOnce(t *testing.T) {
	cleanTables()
	user := createTestUser(t, 1)
	svc := newTokenService()

	token, err := svc.ResendVerification(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, email)

	var stored models.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	assert.True(t, stored.EmailVerified)

	// Consumed tokens cannot be replayed.
	_, err = svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestVerifyEmail_ConcurrentConsume(t *testing.T) {
	cleanTables()
	user := createTestUser(t, 1)
	svc := newTokenService()

	token, err := svc.ResendVerification(context.Background(), user.Email)
	require.NoError(t, err)

	attempts := 8
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.VerifyEmail(context.Background(), token); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	won := 0
	for range successes {
		won++
	}
	assert.Equal(t, 1, won, "exactly one verification should consume the token")
}

func TestResendVerification_InvalidatesPreviousTokens(t *testing.T) {
	cleanTables()
	user := createTestUser(t, 1)
	svc := newTokenService()

	first, err := svc.ResendVerification(context.Background(), user.Email)
	require.NoError(t, err)
	second, err := svc.ResendVerification(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = svc.VerifyEmail(context.Background(), first)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, err = svc.VerifyEmail(context.Background(), second)
	assert.NoError(t, err)
}

func TestResendVerification_AlreadyVerified(t *testing.T) {
	cleanTables()
	user := createTestUser(t, 1)
	testDB.Model(&models.User{}).Where("id = ?", user.ID).Update("email_verified", true)
	svc := newTokenService()

	_, err := svc.ResendVerification(context.Background(), user.Email)
	assert.ErrorIs(t, err, service.ErrAlreadyVerified)
}

func TestPasswordReset_SilentOnUnknownEmail(t *testing.T) {
	cleanTables()
	svc := newTokenService()

	token, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com", "127.0.0.1", "test")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestPasswordReset_ConfirmConsumesToken(t *testing.T) {
	cleanTables()
	user := createTestUser(t, 1)
	svc := newTokenService()

	token, err := svc.RequestPasswordReset(context.Background(), user.Email, "127.0.0.1", "test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token, "127.0.0.1", "test"))

	err = svc.ConfirmPasswordReset(context.Background(), token, "127.0.0.1", "test")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}
