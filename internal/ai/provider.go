// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// # Provider Contract

var (
	// ErrEmptyOutput is returned when the model answers without any text,
	// including safety blocks. Callers treat it like any other model failure.
	ErrEmptyOutput = errors.New("ai: model returned empty output")
)

// Provider is the minimal contract for an external generative model.
type Provider interface {
	// Complete sends one prompt and returns the model's text output.
	// The call honors the context deadline and is never retried here.
	Complete(context context.Context, prompt string) (string, error)
}

// # Gemini REST Provider

// generateContentRequest is the wire shape of a generateContent call.
type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// generateContentResponse is the subset of the reply we consume.
type generateContentResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

// GeminiProvider calls the Gemini REST generateContent endpoint.
//
// # Timeouts
//
// The injected timeout bounds every model call; a timeout is surfaced the
// same way as any other transport failure and is not retried.
type GeminiProvider struct {
	client *resty.Client
	model  string
	apiKey string
}

// NewGeminiProvider constructs a provider for the given endpoint and model.
func NewGeminiProvider(baseURL, apiKey, model string, timeout time.Duration) *GeminiProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &GeminiProvider{
		client: client,
		model:  model,
		apiKey: apiKey,
	}
}

/*
Complete sends one prompt to the model and returns its text output.

Parameters:
  - context: context.Context
  - prompt: string

Returns:
  - string: Model text output
  - error: Transport failures, non-2xx statuses, or ErrEmptyOutput
*/
func (provider *GeminiProvider) Complete(context context.Context, prompt string) (string, error) {
	var result generateContentResponse

	response, err := provider.client.R().
		SetContext(context).
		SetQueryParam("key", provider.apiKey).
		SetBody(generateContentRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", provider.model))

	if err != nil {
		return "", fmt.Errorf("ai_provider_request_failed: %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("ai_provider_status_%d", response.StatusCode())
	}

	if len(result.Candidates) == 0 {
		return "", ErrEmptyOutput
	}
	parts := result.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", ErrEmptyOutput
	}

	return parts[0].Text, nil
}
