// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carterperez-dev/wedding-backend/internal/config"
	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[int64]*UserInfo
}

func newFakeUsers(users ...*UserInfo) *fakeUsers {
	f := &fakeUsers{users: make(map[int64]*UserInfo)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].PasswordHash = hash
	return nil
}

func (f *fakeUsers) ReplacePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].PasswordHash = hash
	f.users[id].TokenVersion++
	return nil
}

type fakeBlacklist struct {
	revoked map[string]time.Time
}

func (b *fakeBlacklist) Revoke(_ context.Context, jti string, exp time.Time) error {
	b.revoked[jti] = exp
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := b.revoked[jti]
	return ok, nil
}

func newTestJWT(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	mgr, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath: priv,
		PublicKeyPath:  pub,
		SessionExpire:  time.Hour,
		Issuer:         "wedding-backend",
		Audience:       "wedding-admin",
	})
	require.NoError(t, err)
	return mgr
}

func newTestService(t *testing.T, password string) (*Service, *fakeUsers, *fakeBlacklist) {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	users := newFakeUsers(&UserInfo{
		ID:           1,
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
	})
	bl := &fakeBlacklist{revoked: make(map[string]time.Time)}

	return NewService(newTestJWT(t), users, bl, nil), users, bl
}

func TestLogin_SuccessIssuesVerifiableSession(t *testing.T) {
	svc, _, _ := newTestService(t, "secret1")
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "admin@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.VerifySession(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestLogin_GenericFailure(t *testing.T) {
	svc, _, _ := newTestService(t, "secret1")
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmailMatchIsExact(t *testing.T) {
	svc, _, _ := newTestService(t, "secret1")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Admin@Example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UpgradesLegacyHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users := newFakeUsers(&UserInfo{
		ID:           5,
		Email:        "legacy@example.com",
		PasswordHash: string(legacy),
	})
	svc := NewService(newTestJWT(t), users, nil, nil)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "legacy@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	stored := users.users[5].PasswordHash
	assert.False(t, core.IsLegacyHash(stored))
	ok, err := core.VerifyPassword("secret1", stored)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChangePassword_CheckOrder(t *testing.T) {
	svc, _, _ := newTestService(t, "secret1")
	ctx := context.Background()

	tests := []struct {
		name   string
		req    ChangePasswordRequest
		status int
	}{
		{
			name:   "missing fields",
			req:    ChangePasswordRequest{Email: "admin@example.com"},
			status: http.StatusBadRequest,
		},
		{
			name: "new password too short",
			req: ChangePasswordRequest{
				Email: "admin@example.com", CurrentPassword: "secret1", NewPassword: "abc",
			},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown email",
			req: ChangePasswordRequest{
				Email: "ghost@example.com", CurrentPassword: "secret1", NewPassword: "another1",
			},
			status: http.StatusNotFound,
		},
		{
			name: "wrong current password",
			req: ChangePasswordRequest{
				Email: "admin@example.com", CurrentPassword: "nope", NewPassword: "another1",
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "same as current",
			req: ChangePasswordRequest{
				Email: "admin@example.com", CurrentPassword: "secret1", NewPassword: "secret1",
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, tt.req)
			appErr, ok := core.AsAppError(err)
			require.True(t, ok, "expected AppError, got %v", err)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}
}

func TestChangePassword_SuccessRevokesOldSessions(t *testing.T) {
	svc, users, _ := newTestService(t, "secret1")
	ctx := context.Background()

	before, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)
	oldHash := users.users[1].PasswordHash

	require.NoError(t, svc.ChangePassword(ctx, ChangePasswordRequest{
		Email:           "admin@example.com",
		CurrentPassword: "secret1",
		NewPassword:     "another1",
	}))

	newHash := users.users[1].PasswordHash
	assert.NotEqual(t, oldHash, newHash)
	assert.NotEqual(t, "another1", newHash)

	_, err = svc.VerifySession(ctx, before.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	_, err = svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "another1"})
	assert.NoError(t, err)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	svc, _, bl := newTestService(t, "secret1")
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.VerifySession(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	assert.Contains(t, bl.revoked, claims.TokenID)

	_, err = svc.VerifySession(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifySession_RejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService(t, "secret1")

	_, err := svc.VerifySession(context.Background(), "not-a-jwt")
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}
