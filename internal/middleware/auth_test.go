// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/angelamos/artisan-market/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*AccessTokenClaims, error) {
	return f.claims, f.err
}

type fakeSessionGuard struct {
	blacklisted bool
	versionErr  error
}

func (f *fakeSessionGuard) IsAccessTokenBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	return f.blacklisted, nil
}

func (f *fakeSessionGuard) ValidateTokenVersion(
	ctx context.Context,
	userID string,
	tokenVersion int,
) error {
	return f.versionErr
}

func testClaims() *AccessTokenClaims {
	return &AccessTokenClaims{
		UserID:       "user-1",
		Role:         "user",
		TokenVersion: 1,
		JTI:          "jti-1",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
}

func runAuthenticator(
	t *testing.T,
	verifier TokenVerifier,
	guard SessionGuard,
) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	Authenticator(verifier, guard)(next).ServeHTTP(rec, req)

	return rec, nextCalled
}

func TestAuthenticator_ValidToken(t *testing.T) {
	rec, nextCalled := runAuthenticator(
		t,
		&fakeVerifier{claims: testClaims()},
		&fakeSessionGuard{},
	)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticator_MissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	rec := httptest.NewRecorder()

	Authenticator(&fakeVerifier{}, &fakeSessionGuard{})(next).
		ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_BlacklistedJTI(t *testing.T) {
	rec, nextCalled := runAuthenticator(
		t,
		&fakeVerifier{claims: testClaims()},
		&fakeSessionGuard{blacklisted: true},
	)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_StaleTokenVersion(t *testing.T) {
	// A token minted before logout-all carries an old version and must
	// be rejected even though its JTI was never blacklisted.
	guard := &fakeSessionGuard{
		versionErr: fmt.Errorf(
			"validate token version: %w",
			core.ErrTokenRevoked,
		),
	}

	rec, nextCalled := runAuthenticator(
		t,
		&fakeVerifier{claims: testClaims()},
		guard,
	)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_VersionLookupFailureFailsOpen(t *testing.T) {
	guard := &fakeSessionGuard{
		versionErr: fmt.Errorf("get user: connection refused"),
	}

	rec, nextCalled := runAuthenticator(
		t,
		&fakeVerifier{claims: testClaims()},
		guard,
	)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}
