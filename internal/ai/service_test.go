// Copyright (c) 2026 eZunder. All rights reserved.

package ai_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezunder/ezunder/internal/ai"
	"github.com/ezunder/ezunder/internal/platform/apperr"
)

// stubProvider returns a fixed output or error.
type stubProvider struct {
	output string
	err    error

	mu         sync.Mutex
	lastPrompt string
}

func (p *stubProvider) Complete(_ context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.lastPrompt = prompt
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.output, nil
}

// recordingRepository captures inserted usage logs.
type recordingRepository struct {
	mu   sync.Mutex
	logs []*ai.UsageLog
}

func (r *recordingRepository) Insert(_ context.Context, log *ai.UsageLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *recordingRepository) Stats(_ context.Context, _ string, _, _ time.Time) (*ai.UsageStats, error) {
	return &ai.UsageStats{}, nil
}

func (r *recordingRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func newTestService(provider ai.Provider, repo ai.UsageRepository) *ai.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ai.NewService(provider, repo, logger)
}

/*
TestService_Generate_Success returns the model output, the deterministic
token estimate, and writes exactly one usage log entry.
*/
func TestService_Generate_Success(t *testing.T) {
	provider := &stubProvider{output: "Generated text."}
	repo := &recordingRepository{}
	service := newTestService(provider, repo)

	result, err := service.Generate(context.Background(), "user-1", ai.GenerateInput{
		Topic:       "bees",
		ContentType: "article",
	})
	require.NoError(t, err)

	assert.Equal(t, "Generated text.", result.Content)

	// ceil((len(prompt) + len(output)) / 4), computed from the exact prompt.
	provider.mu.Lock()
	prompt := provider.lastPrompt
	provider.mu.Unlock()
	expected := (len(prompt) + len("Generated text.") + 3) / 4
	assert.Equal(t, expected, result.TokensUsed)

	// The usage log is written asynchronously, exactly once.
	require.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	entry := repo.logs[0]
	repo.mu.Unlock()
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, ai.RequestGenerate, entry.RequestType)
	assert.Equal(t, expected, entry.TokensUsed)
}

/*
TestService_Generate_Failure surfaces a generic upstream error and writes
no usage log.
*/
func TestService_Generate_Failure(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	repo := &recordingRepository{}
	service := newTestService(provider, repo)

	_, err := service.Generate(context.Background(), "user-1", ai.GenerateInput{
		Topic:       "bees",
		ContentType: "article",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)

	// The generic message must not leak provider details.
	assert.NotContains(t, ae.Message, "connection refused")

	// Failed calls never reach the accounting.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, repo.count())
}

/*
TestService_EmptyOutput treats an empty model answer as a failure.
*/
func TestService_EmptyOutput(t *testing.T) {
	provider := &stubProvider{err: ai.ErrEmptyOutput}
	repo := &recordingRepository{}
	service := newTestService(provider, repo)

	_, err := service.Summarize(context.Background(), "user-1", ai.SummarizeInput{
		Content:       "text to summarize",
		SummaryLength: ai.SummaryBrief,
	})

	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_ERROR", apperr.As(err).Code)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, repo.count())
}

/*
TestService_UsageLog_Truncation clips stored prompt and response to the
storage bound while leaving the returned content untouched.
*/
func TestService_UsageLog_Truncation(t *testing.T) {
	hugeOutput := strings.Repeat("word ", 2000) // well past the storage bound
	provider := &stubProvider{output: hugeOutput}
	repo := &recordingRepository{}
	service := newTestService(provider, repo)

	result, err := service.Improve(context.Background(), "user-1", ai.ImproveInput{
		Content:     strings.Repeat("input ", 2000),
		Improvement: ai.ImproveStyle,
	})
	require.NoError(t, err)

	// Full output to the caller.
	assert.Equal(t, hugeOutput, result.Content)

	require.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	entry := repo.logs[0]
	repo.mu.Unlock()
	assert.LessOrEqual(t, len(entry.Prompt), ai.MaxStoredTextLength)
	assert.LessOrEqual(t, len(entry.Response), ai.MaxStoredTextLength)
}
