// Copyright (c) 2026 eZunder. All rights reserved.

package project

import (
	"context"
	"time"

	"github.com/ezunder/ezunder/pkg/pagination"
	"github.com/ezunder/ezunder/pkg/uuid"
)

// Service implements project management use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new project [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data for a new project.
type CreateInput struct {
	Name        string
	Description string
	Settings    map[string]any
}

/*
Create persists a new project for the given owner.

Description: New projects always start in the draft state; the status is a
lifecycle the owner advances explicitly via Update.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput

Returns:
  - *Project: Persisted entity
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Project, error) {
	now := time.Now()

	settings := input.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	project := &Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Status:      StatusDraft,
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repository.Create(context, project); err != nil {
		return nil, err
	}

	return project, nil
}

/*
Get returns a single owner-scoped project.

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - *Project: Hydrated entity
  - error: apperr.NotFound or database failures
*/
func (service *Service) Get(context context.Context, id, userID string) (*Project, error) {
	return service.repository.FindByID(context, id, userID)
}

/*
List returns a page of the user's projects.

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Project: Result page
  - int64: Total matching rows
  - error: Database failures
*/
func (service *Service) List(context context.Context, userID string, filter Filter, page pagination.Params) ([]*Project, int64, error) {
	return service.repository.List(context, userID, filter, page)
}

// UpdateInput holds a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Status      *Status
	Settings    map[string]any
}

/*
Update applies a partial update to an owner-scoped project.

Description: Reads the current row (scoped to the owner), overlays the
provided fields, and writes it back with the same ownership predicate.

Parameters:
  - context: context.Context
  - id: string
  - userID: string
  - input: UpdateInput

Returns:
  - *Project: Updated entity
  - error: apperr.NotFound or database failures
*/
func (service *Service) Update(context context.Context, id, userID string, input UpdateInput) (*Project, error) {
	project, err := service.repository.FindByID(context, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Settings != nil {
		project.Settings = input.Settings
	}
	project.UpdatedAt = time.Now()

	if err := service.repository.Update(context, project); err != nil {
		return nil, err
	}

	return project, nil
}

/*
Delete removes an owner-scoped project and, via cascade, its documents.

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
