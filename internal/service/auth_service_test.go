package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// ---- fakes ----

type fakeUserRepo struct {
	users     map[string]*domain.User
	lookupErr error
	updateErr error
	updated   map[int64]string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:   make(map[string]*domain.User),
		updated: make(map[int64]string),
	}
	for _, user := range users {
		repo.users[user.Username] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = passwordHash
	return nil
}

type fakeDenylist struct {
	entries map[string]struct{}
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{entries: make(map[string]struct{})}
}

func (f *fakeDenylist) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.entries[key]
	return ok, nil
}

func (f *fakeDenylist) Set(_ context.Context, key, _ string, _ time.Duration) error {
	f.entries[key] = struct{}{}
	return nil
}

type denyAllAuthorizer struct{}

func (denyAllAuthorizer) Authorize(context.Context, string) (bool, error) {
	return false, nil
}

// ---- helpers ----

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLMinutes:  15,
			RefreshTokenTTLMinutes: 60,
			RevokedTokenPrefix:     "jwt-denylist",
			BcryptCost:             4,
		},
	}
}

func testUser(t *testing.T, id int64, username, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{ID: id, Username: username, PasswordHash: hash}
}

func newTestService(t *testing.T, users *fakeUserRepo, resetAuth ResetAuthorizer) *AuthService {
	t.Helper()
	return NewAuthService(testConfig(), AuthDependencies{
		UserRepo:        users,
		Denylist:        newFakeDenylist(),
		ResetAuthorizer: resetAuth,
	}, zap.NewNop())
}

func domainStatus(t *testing.T, err error) int {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.HTTPStatus
}

// ---- login ----

func TestLoginIssuesDistinctTokenPair(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 7, "admin", "admin"))
	svc := newTestService(t, users, nil)

	pair, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64(7), pair.UserID)

	accessClaims, err := svc.TokenManager().Verify(pair.AccessToken, auth.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: 7, Username: "admin"}, accessClaims.Identity())

	refreshClaims, err := svc.TokenManager().Verify(pair.RefreshToken, auth.TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: 7, Username: "admin"}, refreshClaims.Identity())
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), nil)

	_, err := svc.Login(context.Background(), "ghost", "pw")
	assert.Equal(t, 401, domainStatus(t, err))
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 1, "admin", "admin"))
	svc := newTestService(t, users, nil)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.Equal(t, 401, domainStatus(t, err))
}

func TestLoginStoreFailureIsInternal(t *testing.T) {
	users := newFakeUserRepo()
	users.lookupErr = errors.New("connection reset")
	svc := newTestService(t, users, nil)

	_, err := svc.Login(context.Background(), "admin", "admin")
	assert.Equal(t, 500, domainStatus(t, err))
}

// ---- refresh / revoke ----

func TestRefreshMintsAccessTokenForSameIdentity(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), nil)

	token, err := svc.Refresh(context.Background(), auth.Identity{UserID: 3, Username: "bob"})
	require.NoError(t, err)

	claims, err := svc.TokenManager().Verify(token, auth.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: 3, Username: "bob"}, claims.Identity())
}

func TestRevokeMarksOnlyThatToken(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 1, "admin", "admin"))
	svc := newTestService(t, users, nil)

	pair, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	claims, err := svc.TokenManager().Verify(pair.AccessToken, auth.TokenKindAccess)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), claims))
	// revoking twice is not an error
	require.NoError(t, svc.Revoke(context.Background(), claims))

	assert.True(t, svc.TokenManager().IsRevoked(context.Background(), claims.ID))

	refreshClaims, err := svc.TokenManager().Verify(pair.RefreshToken, auth.TokenKindRefresh)
	require.NoError(t, err)
	assert.False(t, svc.TokenManager().IsRevoked(context.Background(), refreshClaims.ID))
}

// ---- change password ----

func TestChangePasswordConfirmMismatchWritesNothing(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 1, "admin", "admin"))
	svc := newTestService(t, users, nil)

	err := svc.ChangePassword(context.Background(), 1, "admin", "newpass", "different")
	assert.Equal(t, 400, domainStatus(t, err))
	assert.Empty(t, users.updated)

	// same length, different contents
	err = svc.ChangePassword(context.Background(), 1, "admin", "newpass1", "newpass2")
	assert.Equal(t, 400, domainStatus(t, err))
	assert.Empty(t, users.updated)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 1, "admin", "admin"))
	svc := newTestService(t, users, nil)

	err := svc.ChangePassword(context.Background(), 1, "wrong", "newpass", "newpass")
	assert.Equal(t, 401, domainStatus(t, err))
	assert.Empty(t, users.updated)
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), nil)

	err := svc.ChangePassword(context.Background(), 99, "pw", "newpass", "newpass")
	assert.Equal(t, 401, domainStatus(t, err))
}

func TestChangePasswordPersistsNewHash(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 1, "admin", "admin"))
	svc := newTestService(t, users, nil)

	require.NoError(t, svc.ChangePassword(context.Background(), 1, "admin", "newpass", "newpass"))

	hash, ok := users.updated[1]
	require.True(t, ok)
	assert.NoError(t, auth.ComparePassword(hash, "newpass"))
}

// ---- reset password ----

func TestResetPasswordUnknownTarget(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), nil)

	err := svc.ResetPassword(context.Background(), "admin", "ghost", "newpass")
	assert.Equal(t, 401, domainStatus(t, err))
}

func TestResetPasswordDeniedByPolicy(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 2, "alice", "oldpass"))
	svc := newTestService(t, users, denyAllAuthorizer{})

	err := svc.ResetPassword(context.Background(), "admin", "alice", "newpass")
	assert.Equal(t, 401, domainStatus(t, err))
	assert.Empty(t, users.updated)
}

func TestResetPasswordPersistsNewHash(t *testing.T) {
	users := newFakeUserRepo(testUser(t, 2, "alice", "oldpass"))
	svc := newTestService(t, users, nil)

	require.NoError(t, svc.ResetPassword(context.Background(), "admin", "alice", "newpass"))

	hash, ok := users.updated[2]
	require.True(t, ok)
	assert.NoError(t, auth.ComparePassword(hash, "newpass"))
}
