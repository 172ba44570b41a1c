// Copyright (c) 2026 eZunder. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Classes
//
// eZunder uses two token classes with independent signing secrets:
//
//   - Access token: short-lived (minutes), carries the user's role, attached
//     as a bearer header to every protected request.
//   - Refresh token: long-lived (days), carries a rotation ID (jti), travels
//     only in an HTTP-only cookie scoped to the auth endpoints.
//
// Both are HS256-signed JWTs. Verification is stateless; rotation bookkeeping
// for refresh tokens lives in the auth domain, not here.

// Verification failure sentinels. Callers distinguish an expired token
// (client should attempt a refresh) from a tampered or malformed one
// (client must re-authenticate).
var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid means the token is malformed, signed with the wrong
	// key, or carries unexpected claims.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AccessClaims is the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the UserID and Role directly inside the JWT, the
// authentication middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Role   string `json:"rol"`
}

// RefreshClaims is the payload embedded inside a JWT refresh token.
//
// The ID (jti) is the rotation handle: the auth domain remembers the
// last-issued jti per user and treats any other value as already rotated.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenPair is the value produced by a successful issuance.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenID        string
	RefreshTokenExpiresAt time.Time
}

// TokenService handles generation and verification of the two token classes.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService signing with the two provided secrets.
func NewTokenService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// IssuePair mints a fresh access/refresh token pair for a user.
//
// The refreshTokenID becomes the jti claim of the refresh token; the caller
// persists it as the user's current rotation handle.
func (service *TokenService) IssuePair(userID, role, refreshTokenID string) (*TokenPair, error) {
	currentTime := time.Now()

	accessExpiry := currentTime.Add(service.accessTTL)
	accessClaims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
		UserID: userID,
		Role:   role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(service.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	refreshExpiry := currentTime.Add(service.refreshTTL)
	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshTokenID,
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(service.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refreshToken,
		RefreshTokenID:        refreshTokenID,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

// IssueAccess mints only a new access token, leaving the refresh token as-is.
func (service *TokenService) IssueAccess(userID, role string) (string, time.Time, error) {
	currentTime := time.Now()
	expiry := currentTime.Add(service.accessTTL)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		UserID: userID,
		Role:   role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.accessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return token, expiry, nil
}

// VerifyAccess checks the signature and validity of an access token.
//
// It fails with [ErrTokenExpired] on expiry and [ErrTokenInvalid] on any
// other defect, so the middleware can report a distinguishable reason
// while still mapping both to HTTP 401.
func (service *TokenService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := service.verify(tokenString, claims, service.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh checks the signature and validity of a refresh token.
func (service *TokenService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.verify(tokenString, claims, service.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// AccessTTL exposes the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

// RefreshTTL exposes the configured refresh token lifetime.
func (service *TokenService) RefreshTTL() time.Duration { return service.refreshTTL }

// verify parses a token with the given secret and maps library errors onto
// the package sentinels.
func (service *TokenService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return ErrTokenInvalid
	}

	return nil
}
