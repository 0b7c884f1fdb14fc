// AngelaMos | 2026
// recovery_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/artisan-market/internal/core"
)

func recoveryUser(t *testing.T) *UserInfo {
	t.Helper()

	q1 := "What was your first pet's name?"
	q2 := "What city were you born in?"

	a1, err := core.HashAnswer("Fluffy")
	require.NoError(t, err)
	a2, err := core.HashAnswer("Lisbon")
	require.NoError(t, err)

	dob := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)

	return &UserInfo{
		ID:                  "user-1",
		Email:               "maker@example.com",
		FirstName:           "Ada",
		LastName:            "Craft",
		SecurityQuestion1:   &q1,
		SecurityQuestion2:   &q2,
		SecurityAnswerHash1: &a1,
		SecurityAnswerHash2: &a2,
		DateOfBirth:         &dob,
	}
}

func recoveryService(t *testing.T, user *UserInfo, repo *fakeRepo, extra *fakeUserProvider) *Service {
	t.Helper()

	provider := &fakeUserProvider{
		getByEmail: func(ctx context.Context, email string) (*UserInfo, error) {
			if email != user.Email {
				return nil, core.ErrNotFound
			}
			return user, nil
		},
	}
	if extra != nil {
		provider.resetPassword = extra.resetPassword
		provider.incrementTokenVersion = extra.incrementTokenVersion
	}
	if repo == nil {
		repo = &fakeRepo{}
	}
	return NewService(repo, newTestJWTManager(t), provider, newTestRedis(t))
}

func validRecoveryRequest(user *UserInfo) RecoveryResetRequest {
	return RecoveryResetRequest{
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DateOfBirth: "1990-03-14",
		Answer1:     "Fluffy",
		Answer2:     "Lisbon",
		NewPassword: "brandnewpassword",
	}
}

func TestLookupSecurityQuestions(t *testing.T) {
	user := recoveryUser(t)
	svc := recoveryService(t, user, nil, nil)

	questions, err := svc.LookupSecurityQuestions(
		context.Background(),
		user.Email,
	)
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, *user.SecurityQuestion1, questions[0])
	assert.Equal(t, *user.SecurityQuestion2, questions[1])
}

func TestLookupSecurityQuestions_NotConfigured(t *testing.T) {
	user := recoveryUser(t)
	user.SecurityQuestion1 = nil
	user.SecurityAnswerHash1 = nil
	svc := recoveryService(t, user, nil, nil)

	_, err := svc.LookupSecurityQuestions(context.Background(), user.Email)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "RECOVERY_NOT_CONFIGURED", appErr.Code)
}

func TestRecoverPassword_NameMismatch(t *testing.T) {
	user := recoveryUser(t)
	resetCalled := false
	svc := recoveryService(t, user, nil, &fakeUserProvider{
		resetPassword: func(ctx context.Context, userID, hash string) error {
			resetCalled = true
			return nil
		},
	})

	req := validRecoveryRequest(user)
	req.LastName = "Smith"

	err := svc.RecoverPassword(context.Background(), req)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "RECOVERY_MISMATCH", appErr.Code)
	assert.Equal(t, "name does not match our records", appErr.Message)
	assert.False(t, resetCalled)
}

func TestRecoverPassword_NameMatchIsCaseInsensitive(t *testing.T) {
	user := recoveryUser(t)
	svc := recoveryService(t, user, nil, nil)

	req := validRecoveryRequest(user)
	req.FirstName = "ADA"
	req.LastName = "craft"

	err := svc.RecoverPassword(context.Background(), req)
	require.NoError(t, err)
}

func TestRecoverPassword_DateOfBirthMismatch(t *testing.T) {
	user := recoveryUser(t)
	svc := recoveryService(t, user, nil, nil)

	req := validRecoveryRequest(user)
	req.DateOfBirth = "1991-01-01"

	err := svc.RecoverPassword(context.Background(), req)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "RECOVERY_MISMATCH", appErr.Code)
	assert.Equal(t, "date of birth does not match our records", appErr.Message)
}

func TestRecoverPassword_DateOfBirthSkippedWhenNotOnFile(t *testing.T) {
	user := recoveryUser(t)
	user.DateOfBirth = nil
	svc := recoveryService(t, user, nil, nil)

	req := validRecoveryRequest(user)
	req.DateOfBirth = "1991-01-01"

	err := svc.RecoverPassword(context.Background(), req)
	require.NoError(t, err)
}

func TestRecoverPassword_WrongAnswer(t *testing.T) {
	user := recoveryUser(t)
	svc := recoveryService(t, user, nil, nil)

	req := validRecoveryRequest(user)
	req.Answer2 = "Porto"

	err := svc.RecoverPassword(context.Background(), req)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "RECOVERY_MISMATCH", appErr.Code)
	assert.Equal(t, "security answer is incorrect", appErr.Message)
}

func TestRecoverPassword_AnswersNormalized(t *testing.T) {
	user := recoveryUser(t)
	svc := recoveryService(t, user, nil, nil)

	req := validRecoveryRequest(user)
	req.Answer1 = "  FLUFFY  "
	req.Answer2 = "lisbon"

	err := svc.RecoverPassword(context.Background(), req)
	require.NoError(t, err)
}

func TestRecoverPassword_Success(t *testing.T) {
	user := recoveryUser(t)

	var storedHash string
	versionBumped := false
	allRevoked := false

	repo := &fakeRepo{
		revokeAllForUser: func(ctx context.Context, userID string) error {
			allRevoked = true
			return nil
		},
	}
	svc := recoveryService(t, user, repo, &fakeUserProvider{
		resetPassword: func(ctx context.Context, userID, hash string) error {
			assert.Equal(t, user.ID, userID)
			storedHash = hash
			return nil
		},
		incrementTokenVersion: func(ctx context.Context, userID string) error {
			versionBumped = true
			return nil
		},
	})

	err := svc.RecoverPassword(context.Background(), validRecoveryRequest(user))
	require.NoError(t, err)

	require.NotEmpty(t, storedHash)
	ok, err := core.VerifyPassword("brandnewpassword", storedHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, allRevoked, "existing sessions must be revoked")
	assert.True(t, versionBumped, "token version must be bumped")
}
