// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
authentication, token refresh, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/ezunder/ezunder/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the eZunder platform.
//
// Users are never hard-deleted through the API; dependants (projects,
// documents) cascade at the storage layer if an account is ever removed.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DisplayName returns the user's human-readable name.
func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldToken       = "token"
	FieldAccessToken = "accessToken"
	FieldUser        = "user"
)
