// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package client provides a Go API client for the eZunder server, including
the session manager that front-ends are expected to replicate.

# Session Contract

The client attaches the current access token to every request. On a 401 it
refreshes the session exactly once — concurrent requests that fail inside
the same expiry window coalesce into a single in-flight refresh — and then
retries the original request exactly once with the new token. If the
refresh itself fails, all credentials are cleared and [ErrSessionExpired]
is returned; the caller must route the user back to the entry point.

The refresh token never passes through application code: it lives in an
HTTP-only cookie managed by the client's cookie jar.
*/
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrSessionExpired is returned when the refresh flow fails and the
	// client has transitioned to the logged-out state.
	ErrSessionExpired = errors.New("client: session expired")
)

// APIError is a non-2xx answer from the server, decoded from the standard
// error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// errorEnvelope mirrors the server's error response shape.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// dataEnvelope mirrors the server's success response shape.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// sessionData is the payload of login, register, and refresh responses.
type sessionData struct {
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user"`
}

// Client is a thread-safe API client with automatic session refresh.
type Client struct {
	http         *resty.Client
	refreshGroup singleflight.Group

	mu          sync.RWMutex
	accessToken string
}

// New constructs a client for the given server base URL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}, nil
}

// AccessToken returns the currently held access token, empty when logged out.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) setAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// # Authentication

/*
Register creates an account and establishes the first session.

Parameters:
  - context: context.Context
  - email, password, firstName, lastName: string

Returns:
  - json.RawMessage: The created user object as sent by the server
  - error: *APIError or transport failures
*/
func (c *Client) Register(context context.Context, email, password, firstName, lastName string) (json.RawMessage, error) {
	return c.startSession(context, "/api/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	})
}

/*
Login authenticates and establishes a session.

Parameters:
  - context: context.Context
  - email, password: string

Returns:
  - json.RawMessage: The user object as sent by the server
  - error: *APIError or transport failures
*/
func (c *Client) Login(context context.Context, email, password string) (json.RawMessage, error) {
	return c.startSession(context, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// startSession posts credentials and installs the returned access token.
// The refresh cookie lands in the jar automatically.
func (c *Client) startSession(context context.Context, path string, body any) (json.RawMessage, error) {
	response, err := c.http.R().
		SetContext(context).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", path, err)
	}
	if response.IsError() {
		return nil, decodeAPIError(response)
	}

	session, err := decodeSession(response.Body())
	if err != nil {
		return nil, err
	}

	c.setAccessToken(session.AccessToken)
	return session.User, nil
}

/*
Logout revokes the session server-side and clears local credentials.

Parameters:
  - context: context.Context

Returns:
  - error: Transport failures (the local state is cleared regardless)
*/
func (c *Client) Logout(context context.Context) error {
	token := c.AccessToken()
	c.setAccessToken("")

	request := c.http.R().SetContext(context)
	if token != "" {
		request.SetAuthToken(token)
	}

	_, err := request.Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("client: logout: %w", err)
	}
	return nil
}

// # Request Execution

/*
Do executes one API request under the session contract and decodes the
success envelope's data field into result (when result is non-nil).

Parameters:
  - context: context.Context
  - method: string (http.MethodGet etc.)
  - path: string (e.g. "/api/projects")
  - body: any (nil for body-less methods)
  - result: any (pointer, or nil to discard)

Returns:
  - error: ErrSessionExpired, *APIError, or transport failures
*/
func (c *Client) Do(context context.Context, method, path string, body, result any) error {
	response, err := c.execute(context, method, path, body)
	if err != nil {
		return err
	}

	if response.StatusCode() == http.StatusUnauthorized {
		// Refresh exactly once, coalesced across concurrent callers, then
		// retry the original request exactly once.
		if err := c.refresh(context); err != nil {
			return err
		}

		response, err = c.execute(context, method, path, body)
		if err != nil {
			return err
		}
	}

	if response.IsError() {
		return decodeAPIError(response)
	}

	if result == nil || len(response.Body()) == 0 {
		return nil
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(response.Body(), &envelope); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("client: decode data: %w", err)
	}

	return nil
}

// execute performs a single attempt with the current access token attached.
func (c *Client) execute(context context.Context, method, path string, body any) (*resty.Response, error) {
	request := c.http.R().SetContext(context)

	if token := c.AccessToken(); token != "" {
		request.SetAuthToken(token)
	}
	if body != nil {
		request.SetBody(body)
	}

	response, err := request.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	return response, nil
}

// refresh exchanges the refresh cookie for a new token pair.
//
// All concurrent callers share one in-flight refresh via singleflight; each
// of them observes the shared outcome. On failure the client clears its
// credentials and reports ErrSessionExpired.
func (c *Client) refresh(context context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		response, err := c.http.R().
			SetContext(context).
			Post("/api/auth/refresh")
		if err != nil {
			return nil, err
		}
		if response.IsError() {
			return nil, decodeAPIError(response)
		}

		session, err := decodeSession(response.Body())
		if err != nil {
			return nil, err
		}

		c.setAccessToken(session.AccessToken)
		return nil, nil
	})

	if err != nil {
		c.setAccessToken("")
		return ErrSessionExpired
	}
	return nil
}

// # Decoding Helpers

func decodeSession(body []byte) (*sessionData, error) {
	var envelope dataEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("client: decode session envelope: %w", err)
	}

	session := &sessionData{}
	if err := json.Unmarshal(envelope.Data, session); err != nil {
		return nil, fmt.Errorf("client: decode session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, errors.New("client: session response missing access token")
	}
	return session, nil
}

func decodeAPIError(response *resty.Response) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(response.Body(), &envelope); err != nil || envelope.Code == "" {
		return &APIError{
			Status:  response.StatusCode(),
			Code:    "UNKNOWN",
			Message: http.StatusText(response.StatusCode()),
		}
	}
	return &APIError{
		Status:  response.StatusCode(),
		Code:    envelope.Code,
		Message: envelope.Error,
	}
}
