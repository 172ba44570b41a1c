// Copyright (c) 2026 eZunder. All rights reserved.

package document

import (
	"context"
	"time"

	"github.com/ezunder/ezunder/pkg/pagination"
	"github.com/ezunder/ezunder/pkg/uuid"
)

// Service implements document authoring use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new document [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data for a new document.
type CreateInput struct {
	ProjectID *string
	Title     string
	Content   string
	Type      Type
}

/*
Create persists a new document for the given owner.

Description: The word count is derived from the initial content; new
documents start at version 1 in the draft state.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput

Returns:
  - *Document: Persisted entity
  - error: apperr.NotFound("Project") or persistence failures
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Document, error) {
	now := time.Now()

	document := &Document{
		ID:        uuid.New(),
		UserID:    userID,
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Content:   input.Content,
		Type:      input.Type,
		Status:    StatusDraft,
		WordCount: WordCount(input.Content),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(context, document); err != nil {
		return nil, err
	}

	return document, nil
}

/*
Get returns a single owner-scoped document.

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - *Document: Hydrated entity
  - error: apperr.NotFound or database failures
*/
func (service *Service) Get(context context.Context, id, userID string) (*Document, error) {
	return service.repository.FindByID(context, id, userID)
}

/*
List returns a page of the user's documents in one project.

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter (ProjectID required)
  - page: pagination.Params

Returns:
  - []*Document: Result page
  - int64: Total matching rows
  - error: Database failures
*/
func (service *Service) List(context context.Context, userID string, filter Filter, page pagination.Params) ([]*Document, int64, error) {
	return service.repository.List(context, userID, filter, page)
}

// UpdateInput holds a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title   *string
	Content *string
	Type    *Type
	Status  *Status
}

/*
Update applies a partial update to an owner-scoped document.

Description: Accepts idempotent "set title/content" updates from the
editor's debounced auto-save. A content-bearing update recomputes the word
count from the new content and advances the version counter; the client's
word count is never trusted. Metadata-only updates (title, type, status)
leave both derived fields untouched.

Parameters:
  - context: context.Context
  - id: string
  - userID: string
  - input: UpdateInput

Returns:
  - *Document: Updated entity
  - error: apperr.NotFound or database failures
*/
func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Document, error) {
	document, err := service.repository.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		document.Title = *input.Title
	}
	if input.Type != nil {
		document.Type = *input.Type
	}
	if input.Status != nil {
		document.Status = *input.Status
	}
	if input.Content != nil {
		document.Content = *input.Content
		document.WordCount = WordCount(*input.Content)
		document.Version++
	}
	document.UpdatedAt = time.Now()

	if err := service.repository.Update(context, document); err != nil {
		return nil, err
	}

	return document, nil
}

/*
Delete removes an owner-scoped document.

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - error: apperr.NotFound or database failures
*/
func (service *Service) Delete(context context.Context, id, userID string) error {
	return service.repository.Delete(context, id, userID)
}
