// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package ai implements the AI proxy domain.

It translates structured content requests into deterministic prompt strings,
invokes the external generative model over HTTP, and records usage for
accounting. The proxy never retries a failed model call and writes exactly
one usage log entry per successful call.

Architecture:

  - Service: Validation boundary is the handler; the service composes
    prompts, calls the provider, and accounts usage.
  - Provider: HTTP client for the external generative model.
  - Repository: PostgreSQL persistence for usage logs and aggregates.
*/
package ai

import "time"

// # Operation Enums

// RequestType identifies which proxy operation produced a usage log entry.
type RequestType string

const (
	RequestGenerate  RequestType = "generate"
	RequestImprove   RequestType = "improve"
	RequestTranslate RequestType = "translate"
	RequestSummarize RequestType = "summarize"
)

// Tone adjusts the voice of generated or improved content.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneFormal       Tone = "formal"
	TonePersuasive   Tone = "persuasive"
)

// ToneValues lists every valid tone, for validation messages.
func ToneValues() []string {
	return []string{
		string(ToneProfessional),
		string(ToneCasual),
		string(ToneFriendly),
		string(ToneFormal),
		string(TonePersuasive),
	}
}

// Length hints at the desired size of generated content.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// LengthValues lists every valid length, for validation messages.
func LengthValues() []string {
	return []string{string(LengthShort), string(LengthMedium), string(LengthLong)}
}

// Improvement selects the editing focus of the improve operation.
type Improvement string

const (
	ImproveGrammar    Improvement = "grammar"
	ImproveStyle      Improvement = "style"
	ImproveClarity    Improvement = "clarity"
	ImproveEngagement Improvement = "engagement"
	ImproveSEO        Improvement = "seo"
)

// ImprovementValues lists every valid improvement type.
func ImprovementValues() []string {
	return []string{
		string(ImproveGrammar),
		string(ImproveStyle),
		string(ImproveClarity),
		string(ImproveEngagement),
		string(ImproveSEO),
	}
}

// SummaryLength selects how condensed a summary should be.
type SummaryLength string

const (
	SummaryBrief    SummaryLength = "brief"
	SummaryDetailed SummaryLength = "detailed"
)

// SummaryLengthValues lists every valid summary length.
func SummaryLengthValues() []string {
	return []string{string(SummaryBrief), string(SummaryDetailed)}
}

// # Usage Accounting

// UsageLog is one successful model call, recorded for accounting.
//
// Prompt and Response are truncated to [MaxStoredTextLength] before storage;
// the log exists for accounting and abuse review, not as a transcript.
type UsageLog struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	RequestType RequestType `json:"requestType"`
	Prompt      string      `json:"prompt"`
	Response    string      `json:"response"`
	TokensUsed  int         `json:"tokensUsed"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// TypeStat aggregates usage for one request type.
type TypeStat struct {
	Type   RequestType `json:"type"`
	Count  int64       `json:"count"`
	Tokens int64       `json:"tokens"`
}

// UsageStats is the aggregate answer for the usage endpoint.
type UsageStats struct {
	TotalRequests  int64      `json:"totalRequests"`
	TotalTokens    int64      `json:"totalTokens"`
	RequestsByType []TypeStat `json:"requestsByType"`
}

// # Field Identifiers

const (
	FieldTopic          = "topic"
	FieldContent        = "content"
	FieldContentType    = "contentType"
	FieldTone           = "tone"
	FieldLength         = "length"
	FieldImprovement    = "improvementType"
	FieldTargetLanguage = "targetLanguage"
	FieldSummaryLength  = "summaryLength"
	FieldProjectID      = "projectId"
	FieldStartDate      = "startDate"
	FieldEndDate        = "endDate"
)

// # Constraints

const (
	// MaxTopicLength bounds the generate operation's topic/prompt input.
	MaxTopicLength = 2000

	// MaxInputContentLength bounds the content passed to improve, translate,
	// and summarize.
	MaxInputContentLength = 50_000

	// MaxTargetLanguageLength bounds the free-text target language.
	MaxTargetLanguageLength = 60

	// MaxStoredTextLength is the truncation bound applied to prompt and
	// response before a usage log is persisted.
	MaxStoredTextLength = 4000
)

// truncate clips s to the storage bound without touching shorter values.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
