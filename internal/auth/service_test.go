// Copyright (c) 2026 eZunder. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezunder/ezunder/internal/auth"
	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/internal/platform/sec"
)

// # In-Memory Fakes

// memoryUserRepository is a map-backed UserRepository for service tests.
type memoryUserRepository struct {
	mu    sync.Mutex
	byID  map[string]*auth.User
	byEml map[string]*auth.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byID:  make(map[string]*auth.User),
		byEml: make(map[string]*auth.User),
	}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEml[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEml[user.Email]; exists {
		return apperr.Conflict("Email already exists")
	}
	r.byID[user.ID] = user
	r.byEml[user.Email] = user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[user.ID] = user
	r.byEml[user.Email] = user
	return nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// memoryRotationGuard mirrors the Redis compare-and-swap semantics in memory.
type memoryRotationGuard struct {
	mu      sync.Mutex
	handles map[string]string
}

func newMemoryRotationGuard() *memoryRotationGuard {
	return &memoryRotationGuard{handles: make(map[string]string)}
}

func (g *memoryRotationGuard) Begin(_ context.Context, userID, jti string, _ time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handles[userID] = jti
	return nil
}

func (g *memoryRotationGuard) Rotate(_ context.Context, userID, oldJTI, newJTI string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	current, exists := g.handles[userID]
	if exists && current != oldJTI {
		return false, nil
	}
	g.handles[userID] = newJTI
	return true, nil
}

func (g *memoryRotationGuard) Clear(_ context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.handles, userID)
	return nil
}

// memoryResetTokenRepository is a map-backed ResetTokenRepository.
type memoryResetTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryResetTokenRepository() *memoryResetTokenRepository {
	return &memoryResetTokenRepository{tokens: make(map[string]string)}
}

func (r *memoryResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *memoryResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (r *memoryResetTokenRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

// # Harness

type serviceHarness struct {
	service *auth.Service
	users   *memoryUserRepository
	guard   *memoryRotationGuard
	resets  *memoryResetTokenRepository
	tokens  *sec.TokenService
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()

	tokens, err := sec.NewTokenService(
		"test-access-secret-0123456789abcdef",
		"test-refresh-secret-0123456789abcdef",
		"test.ezunder.app",
		auth.AccessTokenTTL,
		auth.RefreshTokenTTL,
	)
	require.NoError(t, err)

	users := newMemoryUserRepository()
	guard := newMemoryRotationGuard()
	resets := newMemoryResetTokenRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &serviceHarness{
		service: auth.NewService(users, guard, resets, tokens, logger),
		users:   users,
		guard:   guard,
		resets:  resets,
		tokens:  tokens,
	}
}

func (h *serviceHarness) register(t *testing.T, email, password string) *auth.LoginSession {
	t.Helper()
	session, err := h.service.Register(context.Background(), auth.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return session
}

// # Registration

/*
TestService_Register verifies account creation and its first session.
*/
func TestService_Register(t *testing.T) {
	h := newServiceHarness(t)

	session := h.register(t, "ada@example.com", "correct-horse")

	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, sec.RoleUser, session.User.Role)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// Stored hash must never equal the plain-text password.
	assert.NotEqual(t, "correct-horse", session.User.PasswordHash)

	// The access token must verify and carry the user identity.
	claims, err := h.tokens.VerifyAccess(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
}

/*
TestService_Register_DuplicateEmail verifies the uniqueness conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	h := newServiceHarness(t)
	h.register(t, "ada@example.com", "correct-horse")

	_, err := h.service.Register(context.Background(), auth.RegisterInput{
		Email:     "ada@example.com",
		Password:  "another-pass",
		FirstName: "Ada",
		LastName:  "Again",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login

/*
TestService_Login covers success and the generic failure cases.
*/
func TestService_Login(t *testing.T) {
	h := newServiceHarness(t)
	h.register(t, "ada@example.com", "correct-horse")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid_credentials", "ada@example.com", "correct-horse", false},
		{"wrong_password", "ada@example.com", "wrong-horse", true},
		{"unknown_email", "nobody@example.com", "correct-horse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := h.service.Login(context.Background(), auth.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)

				// Unknown email and wrong password must be indistinguishable.
				assert.Equal(t, "UNAUTHORIZED", ae.Code)
				assert.Equal(t, "Invalid login credentials", ae.Message)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
		})
	}
}

// # Refresh Rotation

/*
TestService_Refresh verifies the happy-path rotation.
*/
func TestService_Refresh(t *testing.T) {
	h := newServiceHarness(t)
	first := h.register(t, "ada@example.com", "correct-horse")

	second, err := h.service.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, first.User.ID, second.User.ID)
}

/*
TestService_Refresh_SingleUse verifies that a rotated refresh token cannot
be redeemed a second time.
*/
func TestService_Refresh_SingleUse(t *testing.T) {
	h := newServiceHarness(t)
	first := h.register(t, "ada@example.com", "correct-horse")

	_, err := h.service.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)

	// Replay of the now-stale token loses the compare-and-swap.
	_, err = h.service.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

/*
TestService_Refresh_Garbage rejects tokens that never came from us.
*/
func TestService_Refresh_Garbage(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.service.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Logout

/*
TestService_Logout verifies the rotation handle is cleared and that logout
is idempotent for junk tokens.
*/
func TestService_Logout(t *testing.T) {
	h := newServiceHarness(t)
	session := h.register(t, "ada@example.com", "correct-horse")

	require.NoError(t, h.service.Logout(context.Background(), session.RefreshToken))

	h.guard.mu.Lock()
	_, exists := h.guard.handles[session.User.ID]
	h.guard.mu.Unlock()
	assert.False(t, exists)

	// Unparseable tokens still log out cleanly.
	assert.NoError(t, h.service.Logout(context.Background(), "garbage"))
}

// # Password Recovery

/*
TestService_PasswordReset walks the full forgot/reset flow.
*/
func TestService_PasswordReset(t *testing.T) {
	h := newServiceHarness(t)
	h.register(t, "ada@example.com", "correct-horse")

	token, err := h.service.RequestPasswordReset(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, h.service.ResetPassword(context.Background(), token, "brand-new-pass"))

	// Old password no longer works; the new one does.
	_, err = h.service.Login(context.Background(), auth.LoginInput{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)

	_, err = h.service.Login(context.Background(), auth.LoginInput{
		Email:    "ada@example.com",
		Password: "brand-new-pass",
	})
	require.NoError(t, err)

	// Reset tokens are single-use.
	err = h.service.ResetPassword(context.Background(), token, "yet-another")
	require.Error(t, err)
}

/*
TestService_PasswordReset_UnknownEmail must not reveal account existence.
*/
func TestService_PasswordReset_UnknownEmail(t *testing.T) {
	h := newServiceHarness(t)

	token, err := h.service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}
