// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package auth implements the core identity and access management system.

It handles everything from user registration and secure password hashing to
the access/refresh token lifecycle (JWT pairs with single-use refresh
rotation tracked in Redis).

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh, Logout).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (rotation).
  - Security: bcrypt password hashes and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/internal/platform/sec"
	"github.com/ezunder/ezunder/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and checking token pairs.
type TokenProvider interface {
	// IssuePair creates a signed access/refresh pair for the given user.
	// refreshTokenID becomes the refresh token's jti claim.
	IssuePair(userID, role, refreshTokenID string) (*sec.TokenPair, error)

	// VerifyRefresh checks a refresh token's signature and expiry.
	VerifyRefresh(token string) (*sec.RefreshClaims, error)

	// RefreshTTL reports the configured refresh token lifetime.
	RefreshTTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or refresh-rotation logic must be reviewed carefully.
type Service struct {
	userRepository       UserRepository
	rotationGuard        RotationGuard
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
	logger               *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	guard RotationGuard,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:       userRepo,
		rotationGuard:        guard,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
		logger:               logger,
	}
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

/*
Register validates, hashes, and persists a brand new user account, then
establishes the first session.

Description: Email uniqueness is enforced by the database's unique
constraint rather than a check-then-insert, so concurrent registrations of
the same address cannot both succeed.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *LoginSession: Created account plus its first token pair
  - error: apperr.Conflict (if email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*LoginSession, error) {

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         sec.RoleUser,
	}

	// Persist the user; a duplicate email surfaces as apperr.Conflict here.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return service.establishSession(context, user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a token pair.

Description: Verifies identity with bcrypt's constant-time comparison and
initializes a new session. Unknown email and wrong password produce the
same generic error to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: apperr.Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, user)
}

// establishSession mints a token pair and records the rotation handle.
func (service *Service) establishSession(context context.Context, user *User) (*LoginSession, error) {
	refreshTokenID := uuid.New()

	pair, err := service.tokenProvider.IssuePair(user.ID, string(user.Role), refreshTokenID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.rotationGuard.Begin(context, user.ID, refreshTokenID, service.tokenProvider.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("auth_service_rotation_begin_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  user,
	}, nil
}

// # Session Management

/*
Refresh implements the refresh-token rotation mechanism.

Description: Verifies the presented refresh token statelessly (signature +
expiry), then attempts to atomically rotate the user's stored handle to a
fresh token ID. When two requests race on the same refresh token, exactly
one rotation wins; the loser receives apperr.Unauthorized and its caller
must fall back to the winner's result (the Go client coalesces concurrent
refreshes for exactly this reason).

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New access + refresh credentials
  - error: apperr.Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*LoginSession, error) {
	claims, err := service.tokenProvider.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Unknown subject: the account may have been removed since issuance.
	user, err := service.userRepository.FindByID(context, claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized("Unknown subject")
	}

	newRefreshTokenID := uuid.New()

	pair, err := service.tokenProvider.IssuePair(user.ID, string(user.Role), newRefreshTokenID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_generation_failed: %w", err)
	}

	// Single-use rotation: only one concurrent caller may swap the handle.
	won, err := service.rotationGuard.Rotate(context, user.ID, claims.ID, newRefreshTokenID, service.tokenProvider.RefreshTTL())
	if err != nil {
		return nil, fmt.Errorf("auth_service_rotation_failed: %w", err)
	}
	if !won {
		return nil, apperr.Unauthorized("Refresh token already rotated")
	}

	return &LoginSession{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		User:                  user,
	}, nil
}

/*
Logout invalidates the user's rotation handle.

Description: Idempotent — an unparseable or expired refresh token still
results in a successful logout, since the client clears its credentials
either way.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	claims, err := service.tokenProvider.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}

	if err := service.rotationGuard.Clear(context, claims.Subject); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

/*
Profile returns the account behind an authenticated request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis. The caller
always reports generic success regardless of whether the email exists, to
prevent account enumeration; this method mirrors that by swallowing the
not-found case.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Reset token (empty when the account does not exist)
  - error: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	// TODO: hand the token to the outbound email service once one exists.
	service.logger.Info("password_reset_requested", slog.String("user_id", user.ID))

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the DB,
and clears the rotation handle so outstanding refresh tokens die with the
old password.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security cleanup: force re-login everywhere.
	_ = service.rotationGuard.Clear(context, userID)
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}
