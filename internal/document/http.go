// Copyright (c) 2026 eZunder. All rights reserved.

package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ezunder/ezunder/internal/platform/middleware"
	requestutil "github.com/ezunder/ezunder/internal/platform/request"
	"github.com/ezunder/ezunder/internal/platform/respond"
	"github.com/ezunder/ezunder/internal/platform/validate"
	"github.com/ezunder/ezunder/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements document authoring HTTP endpoints.
type Handler struct {
	documentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{documentService: service}
}

// Routes returns a [chi.Router] configured with document routes.
//
// # Endpoints
//   - GET  /     : Lists documents in a project (projectId required).
//   - POST /     : Creates a document.
//   - GET  /{id} : Reads one document.
//   - PUT  /{id} : Partially updates a document (auto-save target).
//   - DELETE /{id} : Deletes a document.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type createRequest struct {
	ProjectID *string `json:"projectId"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Type      string  `json:"type"`
}

type updateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Type    *string `json:"type"`
	Status  *string `json:"status"`
}

/*
Create makes a new document for the authenticated user.

POST /api/documents

Request:
  - Body: createRequest (Title and Type required, ProjectID, Content)

Response:
  - 201: Document: Created entity with derived wordCount, version 1
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 404: ErrNotFound: Referenced project missing or owned by another user
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		MaxLen(FieldContent, input.Content, MaxContentLength).
		OneOf(FieldType, input.Type, TypeValues()...)
	if input.ProjectID != nil {
		validator.UUID(FieldProjectID, *input.ProjectID)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.documentService.Create(request.Context(), userID, CreateInput{
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Content:   input.Content,
		Type:      Type(input.Type),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, document)
}

/*
List returns the user's documents in one project, newest first.

GET /api/documents?projectId=&status=&type=&limit=&offset=

Response:
  - 200: []Document: Result page with pagination metadata
  - 400: ErrInvalidJSON: Missing projectId or unknown filter value
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	projectID := query.Get(FieldProjectID)
	status := query.Get(FieldStatus)
	docType := query.Get(FieldType)

	validator := &validate.Validator{}
	validator.Required(FieldProjectID, projectID).
		OneOfOrEmpty(FieldStatus, status, StatusValues()...).
		OneOfOrEmpty(FieldType, docType, TypeValues()...)
	if projectID != "" {
		validator.UUID(FieldProjectID, projectID)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	documents, total, err := handler.documentService.List(request.Context(), userID, Filter{
		ProjectID: projectID,
		Status:    Status(status),
		Type:      Type(docType),
	}, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, documents, pagination.NewMeta(page.Limit, page.Offset, int(total)))
}

/*
Get reads one owner-scoped document.

GET /api/documents/{id}

Response:
  - 200: Document: Hydrated entity including content
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.documentService.Get(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
Update applies a partial update to a document.

PUT /api/documents/{id}

Description: This is the auto-save target. A content-bearing update
recomputes wordCount server-side and bumps the version counter.

Request:
  - Body: updateRequest (any subset of Title, Content, Type, Status)

Response:
  - 200: Document: Updated entity with fresh wordCount and version
  - 400: ErrInvalidJSON: Bad input or unknown enum value
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Content != nil {
		validator.MaxLen(FieldContent, *input.Content, MaxContentLength)
	}
	if input.Type != nil {
		validator.OneOf(FieldType, *input.Type, TypeValues()...)
	}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, StatusValues()...)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Title:   input.Title,
		Content: input.Content,
	}
	if input.Type != nil {
		docType := Type(*input.Type)
		update.Type = &docType
	}
	if input.Status != nil {
		status := Status(*input.Status)
		update.Status = &status
	}

	document, err := handler.documentService.Update(request.Context(), requestutil.ID(request, "id"), userID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
Remove deletes a document.

DELETE /api/documents/{id}

Response:
  - 204: No Content: Deleted
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.documentService.Delete(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
