// Copyright (c) 2026 eZunder. All rights reserved.

package project

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

// Handler implements project management HTTP endpoints.
//
// Every endpoint requires authentication; the owner is always taken from
// the access token, never from the payload.
type Handler struct {
	projectService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{projectService: service}
}

// Routes returns a [chi.Router] configured with project routes.
//
// # Endpoints
//   - GET  /     : Lists the user's projects (status filter, pagination).
//   - POST /     : Creates a project.
//   - GET  /{id} : Reads one project.
//   - PUT  /{id} : Partially updates a project.
//   - DELETE /{id} : Deletes a project and its documents.
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
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Settings    map[string]any `json:"settings"`
}

type updateRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Settings    map[string]any `json:"settings"`
}

/*
Create makes a new project for the authenticated user.

POST /api/projects

Request:
  - Body: createRequest (Name required, Description, Settings)

Response:
  - 201: Project: Created entity, status "draft"
  - 400: ErrInvalidJSON: Bad input or validation failure
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
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		MaxLen(FieldDescription, input.Description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.projectService.Create(request.Context(), userID, CreateInput{
		Name:        input.Name,
		Description: input.Description,
		Settings:    input.Settings,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, project)
}

/*
List returns the user's projects, newest first.

GET /api/projects?status=&limit=&offset=

Response:
  - 200: []Project: Result page with pagination metadata
  - 400: ErrInvalidJSON: Unknown status filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status := request.URL.Query().Get(FieldStatus)

	validator := &validate.Validator{}
	validator.OneOfOrEmpty(FieldStatus, status, StatusValues()...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	projects, total, err := handler.projectService.List(request.Context(), userID,
		Filter{Status: Status(status)}, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, pagination.NewMeta(page.Limit, page.Offset, int(total)))
}

/*
Get reads one owner-scoped project.

GET /api/projects/{id}

Response:
  - 200: Project: Hydrated entity
  - 404: ErrNotFound: Missing or owned by another user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.projectService.Get(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

/*
Update applies a partial update to a project.

PUT /api/projects/{id}

Request:
  - Body: updateRequest (any subset of Name, Description, Status, Settings)

Response:
  - 200: Project: Updated entity
  - 400: ErrInvalidJSON: Bad input or unknown status
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
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, MaxNameLength)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, StatusValues()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		Settings:    input.Settings,
	}
	if input.Status != nil {
		status := Status(*input.Status)
		update.Status = &status
	}

	project, err := handler.projectService.Update(request.Context(), requestutil.ID(request, "id"), userID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

/*
Remove deletes a project and, via cascade, its documents.

DELETE /api/projects/{id}

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

	if err := handler.projectService.Delete(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
