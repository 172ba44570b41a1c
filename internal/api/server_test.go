// Copyright (c) 2026 eZunder. All rights reserved.

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezunder/ezunder/internal/ai"
	"github.com/ezunder/ezunder/internal/api"
	"github.com/ezunder/ezunder/internal/auth"
	"github.com/ezunder/ezunder/internal/document"
	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/internal/platform/config"
	"github.com/ezunder/ezunder/internal/platform/sec"
	"github.com/ezunder/ezunder/internal/project"
	"github.com/ezunder/ezunder/pkg/pagination"
)

// # In-Memory Stores
//
// Map-backed implementations of every repository interface, mirroring the
// ownership semantics of the Postgres layer, so the full router and
// middleware chain can run without external services.

type memStores struct {
	mu        sync.Mutex
	usersByID map[string]*auth.User
	usersByEm map[string]*auth.User
	handles   map[string]string
	resets    map[string]string
	projects  map[string]*project.Project
	documents map[string]*document.Document
	usageLogs []*ai.UsageLog
}

func newMemStores() *memStores {
	return &memStores{
		usersByID: make(map[string]*auth.User),
		usersByEm: make(map[string]*auth.User),
		handles:   make(map[string]string),
		resets:    make(map[string]string),
		projects:  make(map[string]*project.Project),
		documents: make(map[string]*document.Document),
	}
}

// --- auth.UserRepository

func (s *memStores) FindByID(_ context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usersByID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (s *memStores) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usersByEm[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (s *memStores) Create(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByEm[u.Email]; exists {
		return apperr.Conflict("Email already exists")
	}
	s.usersByID[u.ID] = u
	s.usersByEm[u.Email] = u
	return nil
}

func (s *memStores) Update(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByID[u.ID] = u
	s.usersByEm[u.Email] = u
	return nil
}

func (s *memStores) UpdatePassword(_ context.Context, userID, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usersByID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.PasswordHash = newHash
	return nil
}

// --- auth.RotationGuard

func (s *memStores) Begin(_ context.Context, userID, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[userID] = jti
	return nil
}

func (s *memStores) Rotate(_ context.Context, userID, oldJTI, newJTI string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, exists := s.handles[userID]
	if exists && current != oldJTI {
		return false, nil
	}
	s.handles[userID] = newJTI
	return true, nil
}

func (s *memStores) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, userID)
	return nil
}

// --- auth.ResetTokenRepository

func (s *memStores) Set(_ context.Context, token, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = userID
	return nil
}

func (s *memStores) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.resets[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (s *memStores) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resets, token)
	return nil
}

// projectStore adapts memStores to project.Repository.
type projectStore struct{ s *memStores }

func (r projectStore) Create(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	clone := *p
	r.s.projects[p.ID] = &clone
	return nil
}

func (r projectStore) FindByID(_ context.Context, id, userID string) (*project.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return nil, apperr.NotFound("Project")
	}
	clone := *p
	return &clone, nil
}

func (r projectStore) List(_ context.Context, userID string, filter project.Filter, page pagination.Params) ([]*project.Project, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matches := make([]*project.Project, 0)
	for _, p := range r.s.projects {
		if p.UserID != userID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		clone := *p
		matches = append(matches, &clone)
	}
	return matches, int64(len(matches)), nil
}

func (r projectStore) Update(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.projects[p.ID]
	if !ok || existing.UserID != p.UserID {
		return apperr.NotFound("Project")
	}
	clone := *p
	r.s.projects[p.ID] = &clone
	return nil
}

func (r projectStore) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return apperr.NotFound("Project")
	}
	delete(r.s.projects, id)
	return nil
}

// documentStore adapts memStores to document.Repository.
type documentStore struct{ s *memStores }

func (r documentStore) Create(_ context.Context, d *document.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.ProjectID != nil {
		p, ok := r.s.projects[*d.ProjectID]
		if !ok || p.UserID != d.UserID {
			return apperr.NotFound("Project")
		}
	}
	clone := *d
	r.s.documents[d.ID] = &clone
	return nil
}

func (r documentStore) FindByID(_ context.Context, id, userID string) (*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.UserID != userID {
		return nil, apperr.NotFound("Document")
	}
	clone := *d
	return &clone, nil
}

func (r documentStore) List(_ context.Context, userID string, filter document.Filter, page pagination.Params) ([]*document.Document, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matches := make([]*document.Document, 0)
	for _, d := range r.s.documents {
		if d.UserID != userID || d.ProjectID == nil || *d.ProjectID != filter.ProjectID {
			continue
		}
		clone := *d
		matches = append(matches, &clone)
	}
	return matches, int64(len(matches)), nil
}

func (r documentStore) Update(_ context.Context, d *document.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.documents[d.ID]
	if !ok || existing.UserID != d.UserID {
		return apperr.NotFound("Document")
	}
	clone := *d
	r.s.documents[d.ID] = &clone
	return nil
}

func (r documentStore) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.UserID != userID {
		return apperr.NotFound("Document")
	}
	delete(r.s.documents, id)
	return nil
}

// usageStore adapts memStores to ai.UsageRepository.
type usageStore struct{ s *memStores }

func (r usageStore) Insert(_ context.Context, log *ai.UsageLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.usageLogs = append(r.s.usageLogs, log)
	return nil
}

func (r usageStore) Stats(_ context.Context, userID string, _, _ time.Time) (*ai.UsageStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := &ai.UsageStats{RequestsByType: []ai.TypeStat{}}
	perType := make(map[ai.RequestType]*ai.TypeStat)
	for _, entry := range r.s.usageLogs {
		if entry.UserID != userID {
			continue
		}
		stats.TotalRequests++
		stats.TotalTokens += int64(entry.TokensUsed)
		ts, ok := perType[entry.RequestType]
		if !ok {
			stats.RequestsByType = append(stats.RequestsByType, ai.TypeStat{Type: entry.RequestType})
			ts = &stats.RequestsByType[len(stats.RequestsByType)-1]
			perType[entry.RequestType] = ts
		}
		ts.Count++
		ts.Tokens += int64(entry.TokensUsed)
	}
	return stats, nil
}

// stubModel is a fixed-output ai.Provider.
type stubModel struct{ output string }

func (m stubModel) Complete(_ context.Context, _ string) (string, error) {
	return m.output, nil
}

// # Harness

type apiHarness struct {
	router http.Handler
	stores *memStores
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	stores := newMemStores()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := sec.NewTokenService(
		"e2e-access-secret-0123456789abcdef",
		"e2e-refresh-secret-0123456789abcde",
		"test.ezunder.app",
		auth.AccessTokenTTL,
		auth.RefreshTokenTTL,
	)
	require.NoError(t, err)

	authService := auth.NewService(stores, stores, stores, tokens, logger)
	projectService := project.NewService(projectStore{stores})
	documentService := document.NewService(documentStore{stores})
	aiService := ai.NewService(stubModel{output: "Model says hi."}, usageStore{stores}, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger, time.Now())

	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "development",
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Project:   project.NewHandler(projectService),
		Document:  document.NewHandler(documentService),
		AI:        ai.NewHandler(aiService),
	})

	return &apiHarness{router: server.Router(), stores: stores}
}

// call runs one request through the full router and returns the recorder.
func (h *apiHarness) call(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	request.RemoteAddr = "192.0.2.1:4444"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)
	return recorder
}

// data unmarshals the success envelope's data field.
func data(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

/*
TestEndToEnd_AuthoringFlow drives the full stack: register, create a
project, create a document under it, and auto-save content.
*/
func TestEndToEnd_AuthoringFlow(t *testing.T) {
	h := newAPIHarness(t)

	// Register.
	response := h.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "alice@example.com",
		"password":  "Password123!",
		"firstName": "Alice",
		"lastName":  "Author",
	})
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	var session struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	data(t, response, &session)
	require.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "alice@example.com", session.User.Email)

	// Create a project: starts as draft.
	response = h.call(t, http.MethodPost, "/api/projects", session.AccessToken, map[string]string{
		"name": "Book",
	})
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	var proj struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	data(t, response, &proj)
	assert.Equal(t, "draft", proj.Status)

	// Create a document under the project: empty content, wordCount 0.
	response = h.call(t, http.MethodPost, "/api/documents", session.AccessToken, map[string]any{
		"title":     "Ch1",
		"type":      "article",
		"projectId": proj.ID,
	})
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	var doc struct {
		ID        string `json:"id"`
		WordCount int    `json:"wordCount"`
		Version   int    `json:"version"`
	}
	data(t, response, &doc)
	assert.Equal(t, 0, doc.WordCount)
	assert.Equal(t, 1, doc.Version)

	// Auto-save content: wordCount recomputed server-side.
	response = h.call(t, http.MethodPut, "/api/documents/"+doc.ID, session.AccessToken, map[string]string{
		"content": "one two three",
	})
	require.Equal(t, http.StatusOK, response.Code, response.Body.String())

	data(t, response, &doc)
	assert.Equal(t, 3, doc.WordCount)
	assert.Equal(t, 2, doc.Version)
}

/*
TestEndToEnd_Unauthenticated hits protected endpoints without a token.
*/
func TestEndToEnd_Unauthenticated(t *testing.T) {
	h := newAPIHarness(t)

	for _, path := range []string{"/api/projects", "/api/documents"} {
		response := h.call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, response.Code, path)
	}

	response := h.call(t, http.MethodPost, "/api/ai/generate", "", map[string]string{
		"topic": "bees", "contentType": "article",
	})
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

/*
TestEndToEnd_OwnershipIsolation checks that one user's project is a 404
for another user, never a 403.
*/
func TestEndToEnd_OwnershipIsolation(t *testing.T) {
	h := newAPIHarness(t)

	register := func(email string) string {
		response := h.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": email, "password": "Password123!", "firstName": "A", "lastName": "B",
		})
		require.Equal(t, http.StatusCreated, response.Code, response.Body.String())
		var session struct {
			AccessToken string `json:"accessToken"`
		}
		data(t, response, &session)
		return session.AccessToken
	}

	aliceToken := register("alice@example.com")
	bobToken := register("bob@example.com")

	response := h.call(t, http.MethodPost, "/api/projects", aliceToken, map[string]string{"name": "Private"})
	require.Equal(t, http.StatusCreated, response.Code)
	var proj struct {
		ID string `json:"id"`
	}
	data(t, response, &proj)

	response = h.call(t, http.MethodGet, "/api/projects/"+proj.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, response.Code)

	response = h.call(t, http.MethodDelete, "/api/projects/"+proj.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
}

/*
TestEndToEnd_AIProxy generates content and sees it in the usage stats.
*/
func TestEndToEnd_AIProxy(t *testing.T) {
	h := newAPIHarness(t)

	response := h.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "Password123!", "firstName": "A", "lastName": "B",
	})
	require.Equal(t, http.StatusCreated, response.Code)
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	data(t, response, &session)

	response = h.call(t, http.MethodPost, "/api/ai/generate", session.AccessToken, map[string]string{
		"topic": "bees", "contentType": "article",
	})
	require.Equal(t, http.StatusOK, response.Code, response.Body.String())

	var result struct {
		Content    string `json:"content"`
		TokensUsed int    `json:"tokensUsed"`
	}
	data(t, response, &result)
	assert.Equal(t, "Model says hi.", result.Content)
	assert.Greater(t, result.TokensUsed, 0)

	// The usage log is written asynchronously.
	require.Eventually(t, func() bool {
		h.stores.mu.Lock()
		defer h.stores.mu.Unlock()
		return len(h.stores.usageLogs) == 1
	}, time.Second, 10*time.Millisecond)

	response = h.call(t, http.MethodGet, "/api/ai/usage", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, response.Code)

	var stats struct {
		TotalRequests  int64 `json:"totalRequests"`
		TotalTokens    int64 `json:"totalTokens"`
		RequestsByType []struct {
			Type  string `json:"type"`
			Count int64  `json:"count"`
		} `json:"requestsByType"`
	}
	data(t, response, &stats)
	assert.EqualValues(t, 1, stats.TotalRequests)
	require.Len(t, stats.RequestsByType, 1)
	assert.Equal(t, "generate", stats.RequestsByType[0].Type)
}

/*
TestHealthEndpoint returns status, timestamp, and uptime.
*/
func TestHealthEndpoint(t *testing.T) {
	h := newAPIHarness(t)

	response := h.call(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, response.Code)

	var health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Uptime    string `json:"uptime"`
	}
	data(t, response, &health)
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Timestamp)
	assert.NotEmpty(t, health.Uptime)
}
