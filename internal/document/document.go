// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package document implements the document authoring domain.

A document is a unit of rich-text content owned by exactly one user and
optionally attached to one of their projects. Content mutations recompute
the word count server-side and advance a version counter; the client's
word count is never trusted.

Architecture:

  - Service: Business logic, derived-field recomputation, ownership scoping.
  - Repository: PostgreSQL persistence behind a narrow interface.
  - Handler: RESTful JSON endpoints mounted under /api/documents.
*/
package document

import (
	"strings"
	"time"
)

// # Type & Status Enums

// Type classifies the kind of content a document holds.
type Type string

const (
	TypeArticle    Type = "article"
	TypeBook       Type = "book"
	TypeReport     Type = "report"
	TypeSummary    Type = "summary"
	TypeEmail      Type = "email"
	TypeBlogPost   Type = "blog_post"
	TypeSocialPost Type = "social_post"
)

// Valid reports whether the type is one of the known content kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeArticle, TypeBook, TypeReport, TypeSummary, TypeEmail, TypeBlogPost, TypeSocialPost:
		return true
	}
	return false
}

// TypeValues lists every valid type, for validation messages.
func TypeValues() []string {
	return []string{
		string(TypeArticle),
		string(TypeBook),
		string(TypeReport),
		string(TypeSummary),
		string(TypeEmail),
		string(TypeBlogPost),
		string(TypeSocialPost),
	}
}

// Status represents the editorial state of a document.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReview    Status = "review"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether the status is one of the known editorial states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// StatusValues lists every valid status, for validation messages.
func StatusValues() []string {
	return []string{
		string(StatusDraft),
		string(StatusReview),
		string(StatusPublished),
		string(StatusArchived),
	}
}

// # Entity

// Document is a user-owned content unit, optionally attached to a project.
type Document struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProjectID *string   `json:"projectId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	WordCount int       `json:"wordCount"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WordCount counts whitespace-delimited non-empty tokens.
//
// The computation is deterministic and idempotent: recounting unchanged
// content always yields the same number. Markup is counted as-is; the
// editor strips tags before rendering statistics it wants markup-free.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldType      = "type"
	FieldStatus    = "status"
	FieldProjectID = "projectId"
)

// # Constraints

const (
	// MaxTitleLength bounds the document title.
	MaxTitleLength = 300

	// MaxContentLength bounds the rich-text body (characters).
	MaxContentLength = 2_000_000
)
