// Copyright (c) 2026 eZunder. All rights reserved.

package project

import (
	"context"

	"github.com/ezunder/ezunder/pkg/pagination"
)

// Filter narrows a project listing.
type Filter struct {
	// Status restricts results to one lifecycle state when non-empty.
	Status Status
}

// Repository defines the data access contract for projects.
//
// Every method that touches an existing project takes the owning userID and
// folds it into the query predicate. There is no unscoped lookup: ownership
// violations surface as apperr.NotFound, never as a separate 403.
type Repository interface {

	/*
		Create persists a new project.

		Parameters:
		  - context: context.Context
		  - project: *Project

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, project *Project) error

	/*
		FindByID returns the project with the given ID owned by userID.

		Parameters:
		  - context: context.Context
		  - id: string
		  - userID: string

		Returns:
		  - *Project: Hydrated entity
		  - error: apperr.NotFound (missing or foreign) or database failures
	*/
	FindByID(context context.Context, id, userID string) (*Project, error)

	/*
		List returns the user's projects, newest first, with the total count
		for pagination metadata.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - filter: Filter
		  - page: pagination.Params

		Returns:
		  - []*Project: Result page
		  - int64: Total matching rows ignoring limit/offset
		  - error: Database failures
	*/
	List(context context.Context, userID string, filter Filter, page pagination.Params) ([]*Project, int64, error)

	/*
		Update persists changes to a project owned by userID.

		Parameters:
		  - context: context.Context
		  - project: *Project

		Returns:
		  - error: apperr.NotFound (missing or foreign) or database failures
	*/
	Update(context context.Context, project *Project) error

	/*
		Delete removes the project owned by userID; documents under it are
		removed by the database cascade.

		Parameters:
		  - context: context.Context
		  - id: string
		  - userID: string

		Returns:
		  - error: apperr.NotFound (missing or foreign) or database failures
	*/
	Delete(context context.Context, id, userID string) error
}
