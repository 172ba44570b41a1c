// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ezunder/ezunder/internal/platform/middleware"
	requestutil "github.com/ezunder/ezunder/internal/platform/request"
	"github.com/ezunder/ezunder/internal/platform/respond"
	"github.com/ezunder/ezunder/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the AI proxy HTTP endpoints.
//
// Every input is validated here, before the external model is involved: no
// side effect (model call, usage log) happens for a malformed request.
type Handler struct {
	aiService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{aiService: service}
}

// Routes returns a [chi.Router] configured with AI proxy routes.
//
// # Endpoints
//   - POST /generate  : Produces new content from a topic.
//   - POST /improve   : Rewrites content with an editing focus.
//   - POST /translate : Translates content into a target language.
//   - POST /summarize : Condenses content.
//   - GET  /usage     : Aggregated usage accounting.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/generate", handler.generate)
	router.Post("/improve", handler.improve)
	router.Post("/translate", handler.translate)
	router.Post("/summarize", handler.summarize)
	router.Get("/usage", handler.usage)

	return router
}

// # Request Payloads

type generateRequest struct {
	Topic       string  `json:"topic"`
	ContentType string  `json:"contentType"`
	Tone        string  `json:"tone"`
	Length      string  `json:"length"`
	ProjectID   *string `json:"projectId"`
}

type improveRequest struct {
	Content         string `json:"content"`
	ImprovementType string `json:"improvementType"`
	Tone            string `json:"tone"`
}

type translateRequest struct {
	Content            string `json:"content"`
	TargetLanguage     string `json:"targetLanguage"`
	PreserveFormatting *bool  `json:"preserveFormatting"`
}

type summarizeRequest struct {
	Content       string `json:"content"`
	SummaryLength string `json:"summaryLength"`
}

// contentTypeValues mirrors the document content kinds accepted for
// generation. Kept local so the proxy does not depend on the document
// package for a validation list.
var contentTypeValues = []string{
	"article", "book", "report", "summary", "email", "blog_post", "social_post",
}

/*
Generate produces new content from a topic.

POST /api/ai/generate

Request:
  - Body: generateRequest (Topic and ContentType required; Tone, Length,
    ProjectID optional)

Response:
  - 200: Result: {content, tokensUsed}
  - 400: ErrInvalidJSON: Bad input or unknown enum value
  - 500: ErrUpstream: Model failure (generic message)
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input generateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTopic, input.Topic).
		MaxLen(FieldTopic, input.Topic, MaxTopicLength).
		OneOf(FieldContentType, input.ContentType, contentTypeValues...).
		OneOfOrEmpty(FieldTone, input.Tone, ToneValues()...).
		OneOfOrEmpty(FieldLength, input.Length, LengthValues()...)
	if input.ProjectID != nil {
		validator.UUID(FieldProjectID, *input.ProjectID)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.aiService.Generate(request.Context(), userID, GenerateInput{
		Topic:       input.Topic,
		ContentType: input.ContentType,
		Tone:        Tone(input.Tone),
		Length:      Length(input.Length),
		ProjectID:   input.ProjectID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Improve rewrites existing content with a chosen editing focus.

POST /api/ai/improve

Request:
  - Body: improveRequest (Content and ImprovementType required; Tone optional)

Response:
  - 200: Result: {content, tokensUsed}
  - 400: ErrInvalidJSON: Bad input or unknown enum value
  - 500: ErrUpstream: Model failure (generic message)
*/
func (handler *Handler) improve(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input improveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxInputContentLength).
		OneOf(FieldImprovement, input.ImprovementType, ImprovementValues()...).
		OneOfOrEmpty(FieldTone, input.Tone, ToneValues()...)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.aiService.Improve(request.Context(), userID, ImproveInput{
		Content:     input.Content,
		Improvement: Improvement(input.ImprovementType),
		Tone:        Tone(input.Tone),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Translate converts content into a target language.

POST /api/ai/translate

Request:
  - Body: translateRequest (Content and TargetLanguage required;
    PreserveFormatting defaults to true)

Response:
  - 200: Result: {content, tokensUsed}
  - 400: ErrInvalidJSON: Bad input
  - 500: ErrUpstream: Model failure (generic message)
*/
func (handler *Handler) translate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input translateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxInputContentLength).
		Required(FieldTargetLanguage, input.TargetLanguage).
		MaxLen(FieldTargetLanguage, input.TargetLanguage, MaxTargetLanguageLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	preserveFormatting := true
	if input.PreserveFormatting != nil {
		preserveFormatting = *input.PreserveFormatting
	}

	result, err := handler.aiService.Translate(request.Context(), userID, TranslateInput{
		Content:            input.Content,
		TargetLanguage:     input.TargetLanguage,
		PreserveFormatting: preserveFormatting,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Summarize condenses content to a brief or detailed summary.

POST /api/ai/summarize

Request:
  - Body: summarizeRequest (Content required; SummaryLength defaults to brief)

Response:
  - 200: Result: {content, tokensUsed}
  - 400: ErrInvalidJSON: Bad input or unknown enum value
  - 500: ErrUpstream: Model failure (generic message)
*/
func (handler *Handler) summarize(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input summarizeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxInputContentLength).
		OneOfOrEmpty(FieldSummaryLength, input.SummaryLength, SummaryLengthValues()...)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summaryLength := SummaryBrief
	if input.SummaryLength != "" {
		summaryLength = SummaryLength(input.SummaryLength)
	}

	result, err := handler.aiService.Summarize(request.Context(), userID, SummarizeInput{
		Content:       input.Content,
		SummaryLength: summaryLength,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Usage returns aggregated usage accounting for the authenticated user.

GET /api/ai/usage?startDate=&endDate=

Response:
  - 200: UsageStats: {totalRequests, totalTokens, requestsByType}
  - 400: ErrInvalidJSON: Unparseable date parameter
*/
func (handler *Handler) usage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	from, err := requestutil.DateParam(request, FieldStartDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	to, err := requestutil.DateParam(request, FieldEndDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.aiService.Usage(request.Context(), userID, from, to)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
