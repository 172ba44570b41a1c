// Copyright (c) 2026 eZunder. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		A duplicate email surfaces as apperr.Conflict via the unique
		constraint — uniqueness is enforced by the database, not by a
		check-then-insert race.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Refresh Rotation Bookkeeping

// RotationGuard tracks the last-issued refresh token ID (jti) per user.
//
// Refresh tokens are verified statelessly by signature and expiry; the guard
// adds the single-use rotation property on top: when two requests race on
// the same refresh token, exactly one rotation wins and the loser is told
// the token was already rotated.
type RotationGuard interface {

	/*
		Begin records jti as the user's current rotation handle.

		Called at login and registration, replacing whatever handle a
		previous session held.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - jti: string
		  - ttl: time.Duration (matches the refresh token's lifetime)

		Returns:
		  - error: Persistence failures
	*/
	Begin(context context.Context, userID, jti string, ttl time.Duration) error

	/*
		Rotate atomically swaps the stored handle from oldJTI to newJTI.

		The compare-and-swap succeeds when the stored handle equals oldJTI
		or when no handle is stored (stateless fallback after an eviction).
		It fails — without modifying state — when another rotation already
		replaced oldJTI.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - oldJTI: string
		  - newJTI: string
		  - ttl: time.Duration

		Returns:
		  - bool: true when this caller won the rotation
		  - error: Persistence failures
	*/
	Rotate(context context.Context, userID, oldJTI, newJTI string, ttl time.Duration) (bool, error)

	/*
		Clear forgets the user's rotation handle.

		Called at logout; any outstanding refresh token of this user can
		then only pass the stateless fallback path until it expires.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Clear(context context.Context, userID string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
type ResetTokenRepository interface {

	/*
		Set stores a reset token associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: apperr.NotFound or retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}
