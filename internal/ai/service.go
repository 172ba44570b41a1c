// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/pkg/uuid"
)

// usageWriteTimeout bounds the asynchronous usage log write, which runs
// detached from the request context.
const usageWriteTimeout = 10 * time.Second

// Result is the outcome of a successful proxy operation.
type Result struct {
	Content    string `json:"content"`
	TokensUsed int    `json:"tokensUsed"`
}

// Service implements the AI proxy use cases.
type Service struct {
	provider        Provider
	usageRepository UsageRepository
	logger          *slog.Logger
}

// NewService constructs a new AI [Service].
func NewService(provider Provider, usageRepository UsageRepository, logger *slog.Logger) *Service {
	return &Service{
		provider:        provider,
		usageRepository: usageRepository,
		logger:          logger,
	}
}

/*
Generate produces new content from a topic.

Parameters:
  - context: context.Context
  - userID: string
  - input: GenerateInput

Returns:
  - *Result: Model output plus the token estimate
  - error: apperr.Upstream on any model failure
*/
func (service *Service) Generate(context context.Context, userID string, input GenerateInput) (*Result, error) {
	return service.complete(context, userID, RequestGenerate, buildGeneratePrompt(input))
}

/*
Improve rewrites existing content with a chosen editing focus.

Parameters:
  - context: context.Context
  - userID: string
  - input: ImproveInput

Returns:
  - *Result: Model output plus the token estimate
  - error: apperr.Upstream on any model failure
*/
func (service *Service) Improve(context context.Context, userID string, input ImproveInput) (*Result, error) {
	return service.complete(context, userID, RequestImprove, buildImprovePrompt(input))
}

/*
Translate converts content into a target language.

Parameters:
  - context: context.Context
  - userID: string
  - input: TranslateInput

Returns:
  - *Result: Model output plus the token estimate
  - error: apperr.Upstream on any model failure
*/
func (service *Service) Translate(context context.Context, userID string, input TranslateInput) (*Result, error) {
	return service.complete(context, userID, RequestTranslate, buildTranslatePrompt(input))
}

/*
Summarize condenses content to a brief or detailed summary.

Parameters:
  - context: context.Context
  - userID: string
  - input: SummarizeInput

Returns:
  - *Result: Model output plus the token estimate
  - error: apperr.Upstream on any model failure
*/
func (service *Service) Summarize(context context.Context, userID string, input SummarizeInput) (*Result, error) {
	return service.complete(context, userID, RequestSummarize, buildSummarizePrompt(input))
}

/*
Usage aggregates the user's model usage inside an optional date window.

Parameters:
  - context: context.Context
  - userID: string
  - from: time.Time (zero = unbounded)
  - to: time.Time (zero = unbounded)

Returns:
  - *UsageStats: Totals plus a per-type breakdown
  - error: Database failures
*/
func (service *Service) Usage(context context.Context, userID string, from, to time.Time) (*UsageStats, error) {
	return service.usageRepository.Stats(context, userID, from, to)
}

// complete runs one model call and accounts for it.
//
// The token estimate is the fixed heuristic ceil((len(prompt)+len(output))/4),
// not a tokenizer call. The usage log is written asynchronously and only on
// success: a failed call must never appear in the accounting, and a
// successful one appears exactly once.
func (service *Service) complete(ctx context.Context, userID string, requestType RequestType, prompt string) (*Result, error) {
	output, err := service.provider.Complete(ctx, prompt)
	if err != nil {
		service.logger.ErrorContext(ctx, "ai_generation_failed",
			slog.String("request_type", string(requestType)),
			slog.String("error", err.Error()),
		)
		return nil, apperr.Upstream(err)
	}

	tokensUsed := (len(prompt) + len(output) + 3) / 4

	entry := &UsageLog{
		ID:          uuid.New(),
		UserID:      userID,
		RequestType: requestType,
		Prompt:      truncate(prompt, MaxStoredTextLength),
		Response:    truncate(output, MaxStoredTextLength),
		TokensUsed:  tokensUsed,
		CreatedAt:   time.Now(),
	}

	// Detached write: accounting must not add latency to the response, and
	// a storage hiccup must not fail an already-successful generation.
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), usageWriteTimeout)
		defer cancel()

		if err := service.usageRepository.Insert(writeCtx, entry); err != nil {
			service.logger.Error("ai_usage_log_write_failed",
				slog.String("user_id", userID),
				slog.String("request_type", string(requestType)),
				slog.String("error", err.Error()),
			)
		}
	}()

	return &Result{Content: output, TokensUsed: tokensUsed}, nil
}
