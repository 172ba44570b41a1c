// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package project implements the project management domain.

A project is a named container for documents, owned by exactly one user.
Every read and mutation is ownership-scoped: the owning user ID is part of
each query predicate, so a foreign project is indistinguishable from a
missing one.

Architecture:

  - Service: Business logic and ownership-scoped orchestration.
  - Repository: PostgreSQL persistence behind a narrow interface.
  - Handler: RESTful JSON endpoints mounted under /api/projects.
*/
package project

import "time"

// # Status Lifecycle

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// StatusValues lists every valid status, for validation messages.
func StatusValues() []string {
	return []string{
		string(StatusDraft),
		string(StatusActive),
		string(StatusCompleted),
		string(StatusArchived),
	}
}

// # Entity

// Project is a named, user-owned container for documents.
//
// Settings holds free-form typography and layout preferences as JSON; the
// server stores it opaquely and never interprets individual keys.
type Project struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	Settings    map[string]any `json:"settings"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldSettings    = "settings"
	FieldProjectID   = "projectId"
)

// # Constraints

const (
	// MaxNameLength bounds the project name.
	MaxNameLength = 200

	// MaxDescriptionLength bounds the optional description.
	MaxDescriptionLength = 2000
)
