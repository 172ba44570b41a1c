// Copyright (c) 2026 eZunder. All rights reserved.

package document

import (
	"context"

	"github.com/ezunder/ezunder/pkg/pagination"
)

// Filter narrows a document listing. ProjectID is mandatory for listings;
// the other fields are optional refinements.
type Filter struct {
	ProjectID string
	Status    Status
	Type      Type
}

// Repository defines the data access contract for documents.
//
// As with projects, the owning userID is part of every predicate: a foreign
// document is indistinguishable from a missing one.
type Repository interface {

	/*
		Create persists a new document.

		When the document references a project, the insert verifies in the
		same statement that the project belongs to the same user; a missing
		or foreign project surfaces as apperr.NotFound("Project").

		Parameters:
		  - context: context.Context
		  - document: *Document

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Create(context context.Context, document *Document) error

	/*
		FindByID returns the document with the given ID owned by userID.

		Parameters:
		  - context: context.Context
		  - id: string
		  - userID: string

		Returns:
		  - *Document: Hydrated entity
		  - error: apperr.NotFound (missing or foreign) or database failures
	*/
	FindByID(context context.Context, id, userID string) (*Document, error)

	/*
		List returns the user's documents in one project, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - filter: Filter (ProjectID required)
		  - page: pagination.Params

		Returns:
		  - []*Document: Result page
		  - int64: Total matching rows ignoring limit/offset
		  - error: Database failures
	*/
	List(context context.Context, userID string, filter Filter, page pagination.Params) ([]*Document, int64, error)

	/*
		Update persists changes to a document owned by userID.

		Parameters:
		  - context: context.Context
		  - document: *Document

		Returns:
		  - error: apperr.NotFound (missing or foreign) or database failures
	*/
	Update(context context.Context, document *Document) error

	/*
		Delete removes the document owned by userID.

		Parameters:
		  - context: context.Context
		  - id: string
		  - userID: string

		Returns:
		  - error: apperr.NotFound (missing or foreign) or database failures
	*/
	Delete(context context.Context, id, userID string) error
}
