// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/artisan-market/internal/core"
)

type fakeUserProvider struct {
	getByEmail            func(ctx context.Context, email string) (*UserInfo, error)
	getByID               func(ctx context.Context, id string) (*UserInfo, error)
	create                func(ctx context.Context, params CreateUserParams) (*UserInfo, error)
	incrementTokenVersion func(ctx context.Context, userID string) error
	updatePassword        func(ctx context.Context, userID, passwordHash string) error
	resetPassword         func(ctx context.Context, userID, passwordHash string) error
}

func (f *fakeUserProvider) GetByEmail(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	return f.getByEmail(ctx, email)
}

func (f *fakeUserProvider) GetByID(
	ctx context.Context,
	id string,
) (*UserInfo, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUserProvider) Create(
	ctx context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	return f.create(ctx, params)
}

func (f *fakeUserProvider) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	if f.incrementTokenVersion == nil {
		return nil
	}
	return f.incrementTokenVersion(ctx, userID)
}

func (f *fakeUserProvider) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	if f.updatePassword == nil {
		return nil
	}
	return f.updatePassword(ctx, userID, passwordHash)
}

func (f *fakeUserProvider) ResetPassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	if f.resetPassword == nil {
		return nil
	}
	return f.resetPassword(ctx, userID, passwordHash)
}

type fakeRepo struct {
	create           func(ctx context.Context, token *RefreshToken) error
	findByHash       func(ctx context.Context, tokenHash string) (*RefreshToken, error)
	findByID         func(ctx context.Context, id string) (*RefreshToken, error)
	markAsUsed       func(ctx context.Context, id, replacedByID string) error
	revokeByID       func(ctx context.Context, id string) error
	revokeByFamilyID func(ctx context.Context, familyID string) error
	revokeAllForUser func(ctx context.Context, userID string) error
	activeSessions   func(ctx context.Context, userID string) ([]RefreshToken, error)
}

func (f *fakeRepo) Create(ctx context.Context, token *RefreshToken) error {
	if f.create == nil {
		return nil
	}
	return f.create(ctx, token)
}

func (f *fakeRepo) FindByHash(
	ctx context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	return f.findByHash(ctx, tokenHash)
}

func (f *fakeRepo) FindByID(
	ctx context.Context,
	id string,
) (*RefreshToken, error) {
	return f.findByID(ctx, id)
}

func (f *fakeRepo) MarkAsUsed(
	ctx context.Context,
	id, replacedByID string,
) error {
	if f.markAsUsed == nil {
		return nil
	}
	return f.markAsUsed(ctx, id, replacedByID)
}

func (f *fakeRepo) RevokeByID(ctx context.Context, id string) error {
	if f.revokeByID == nil {
		return nil
	}
	return f.revokeByID(ctx, id)
}

func (f *fakeRepo) RevokeByFamilyID(
	ctx context.Context,
	familyID string,
) error {
	if f.revokeByFamilyID == nil {
		return nil
	}
	return f.revokeByFamilyID(ctx, familyID)
}

func (f *fakeRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	if f.revokeAllForUser == nil {
		return nil
	}
	return f.revokeAllForUser(ctx, userID)
}

func (f *fakeRepo) GetActiveSessionsForUser(
	ctx context.Context,
	userID string,
) ([]RefreshToken, error) {
	return f.activeSessions(ctx, userID)
}

func (f *fakeRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testUser(t *testing.T, password string) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	return &UserInfo{
		ID:           "user-1",
		Email:        "maker@example.com",
		FirstName:    "Ada",
		LastName:     "Craft",
		PasswordHash: hash,
		Role:         "user",
		TokenVersion: 0,
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	provider := &fakeUserProvider{
		getByEmail: func(ctx context.Context, email string) (*UserInfo, error) {
			return nil, core.ErrNotFound
		},
	}
	svc := NewService(&fakeRepo{}, newTestJWTManager(t), provider, newTestRedis(t))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	}, "ua", "1.2.3.4")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := testUser(t, "rightpassword")
	provider := &fakeUserProvider{
		getByEmail: func(ctx context.Context, email string) (*UserInfo, error) {
			return user, nil
		},
	}
	svc := NewService(&fakeRepo{}, newTestJWTManager(t), provider, newTestRedis(t))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrongpassword",
	}, "ua", "1.2.3.4")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	user := testUser(t, "rightpassword")
	user.MustChangePassword = true

	var storedToken *RefreshToken
	repo := &fakeRepo{
		create: func(ctx context.Context, token *RefreshToken) error {
			storedToken = token
			return nil
		},
	}
	provider := &fakeUserProvider{
		getByEmail: func(ctx context.Context, email string) (*UserInfo, error) {
			return user, nil
		},
	}
	manager := newTestJWTManager(t)
	svc := NewService(repo, manager, provider, newTestRedis(t))

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "rightpassword",
	}, "test-agent", "1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.User.ID)
	assert.True(t, resp.User.MustChangePassword)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	require.NotNil(t, storedToken)
	assert.Equal(t, user.ID, storedToken.UserID)
	assert.Equal(t, "test-agent", storedToken.UserAgent)

	// The forced-rotation flag travels in the access token claims.
	claims, err := manager.VerifyAccessToken(
		context.Background(),
		resp.Tokens.AccessToken,
	)
	require.NoError(t, err)
	assert.True(t, claims.MustChangePassword)
}

func TestRefresh_ReuseRevokesFamily(t *testing.T) {
	familyRevoked := ""
	repo := &fakeRepo{
		findByHash: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				ID:        "tok-1",
				UserID:    "user-1",
				FamilyID:  "fam-1",
				ExpiresAt: time.Now().Add(time.Hour),
				IsUsed:    true,
			}, nil
		},
		revokeByFamilyID: func(ctx context.Context, familyID string) error {
			familyRevoked = familyID
			return nil
		},
	}
	svc := NewService(repo, newTestJWTManager(t), &fakeUserProvider{}, newTestRedis(t))

	_, err := svc.Refresh(context.Background(), "spent-token", "ua", "ip")

	assert.ErrorIs(t, err, ErrTokenReuse)
	assert.Equal(t, "fam-1", familyRevoked)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	repo := &fakeRepo{
		findByHash: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				ID:        "tok-1",
				UserID:    "user-1",
				FamilyID:  "fam-1",
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil
		},
	}
	svc := NewService(repo, newTestJWTManager(t), &fakeUserProvider{}, newTestRedis(t))

	_, err := svc.Refresh(context.Background(), "old-token", "ua", "ip")

	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestAccessTokenBlacklist(t *testing.T) {
	svc := NewService(
		&fakeRepo{},
		newTestJWTManager(t),
		&fakeUserProvider{},
		newTestRedis(t),
	)
	ctx := context.Background()

	blacklisted, err := svc.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	err = svc.RevokeAccessToken(ctx, "jti-1", time.Now().Add(10*time.Minute))
	require.NoError(t, err)

	blacklisted, err = svc.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestRevokeAccessToken_AlreadyExpired(t *testing.T) {
	svc := NewService(
		&fakeRepo{},
		newTestJWTManager(t),
		&fakeUserProvider{},
		newTestRedis(t),
	)
	ctx := context.Background()

	// Nothing to store: the token cannot be replayed anyway.
	err := svc.RevokeAccessToken(ctx, "jti-2", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	blacklisted, err := svc.IsAccessTokenBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	user := testUser(t, "oldpassword1")
	provider := &fakeUserProvider{
		getByID: func(ctx context.Context, id string) (*UserInfo, error) {
			return user, nil
		},
	}
	svc := NewService(&fakeRepo{}, newTestJWTManager(t), provider, newTestRedis(t))

	_, err := svc.ChangePassword(
		context.Background(),
		user.ID,
		"not-the-password",
		"newpassword1",
		"ua", "ip",
	)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword_ClearsForcedRotation(t *testing.T) {
	user := testUser(t, "temppassword1")
	user.MustChangePassword = true

	resetCalled := false
	allRevoked := false
	provider := &fakeUserProvider{
		getByID: func(ctx context.Context, id string) (*UserInfo, error) {
			return user, nil
		},
		resetPassword: func(ctx context.Context, userID, hash string) error {
			resetCalled = true

			ok, err := core.VerifyPassword("brandnewpassword", hash)
			require.NoError(t, err)
			assert.True(t, ok, "stored hash must match the new password")

			user.PasswordHash = hash
			user.MustChangePassword = false
			return nil
		},
	}
	repo := &fakeRepo{
		revokeAllForUser: func(ctx context.Context, userID string) error {
			allRevoked = true
			return nil
		},
	}
	svc := NewService(repo, newTestJWTManager(t), provider, newTestRedis(t))

	resp, err := svc.ChangePassword(
		context.Background(),
		user.ID,
		"temppassword1",
		"brandnewpassword",
		"ua", "ip",
	)
	require.NoError(t, err)

	assert.True(t, resetCalled)
	assert.True(t, allRevoked)
	assert.False(t, resp.User.MustChangePassword)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

func TestValidateTokenVersion(t *testing.T) {
	user := testUser(t, "password123")
	user.TokenVersion = 2
	provider := &fakeUserProvider{
		getByID: func(ctx context.Context, id string) (*UserInfo, error) {
			return user, nil
		},
	}
	svc := NewService(&fakeRepo{}, newTestJWTManager(t), provider, newTestRedis(t))

	assert.NoError(
		t,
		svc.ValidateTokenVersion(context.Background(), user.ID, 2),
	)
	assert.ErrorIs(
		t,
		svc.ValidateTokenVersion(context.Background(), user.ID, 1),
		core.ErrTokenRevoked,
	)
}
