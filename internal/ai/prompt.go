// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"fmt"
	"strings"
)

// preamble is the fixed instructional prefix for every model call.
//
// Prompt assembly is deterministic string composition: preamble, then the
// operation-specific instruction, then the user-supplied content, in that
// order. Sampling temperature is a model-call parameter, never a prompt
// concern.
const preamble = "You are a professional writing assistant. " +
	"Respond with the requested text only, without commentary or markdown fences."

// GenerateInput describes a content generation request.
type GenerateInput struct {
	Topic       string
	ContentType string
	Tone        Tone
	Length      Length
	ProjectID   *string
}

// ImproveInput describes a content improvement request.
type ImproveInput struct {
	Content     string
	Improvement Improvement
	Tone        Tone
}

// TranslateInput describes a translation request.
type TranslateInput struct {
	Content            string
	TargetLanguage     string
	PreserveFormatting bool
}

// SummarizeInput describes a summarization request.
type SummarizeInput struct {
	Content       string
	SummaryLength SummaryLength
}

// buildGeneratePrompt composes the prompt for the generate operation.
func buildGeneratePrompt(input GenerateInput) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(fmt.Sprintf("\n\nWrite content of type %q about the following topic.", input.ContentType))
	if input.Tone != "" {
		b.WriteString(fmt.Sprintf(" Use a %s tone.", input.Tone))
	}
	if input.Length != "" {
		b.WriteString(fmt.Sprintf(" Target a %s length.", input.Length))
	}
	b.WriteString("\n\nTopic: ")
	b.WriteString(input.Topic)
	return b.String()
}

// buildImprovePrompt composes the prompt for the improve operation.
func buildImprovePrompt(input ImproveInput) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(fmt.Sprintf("\n\nImprove the following text, focusing on %s.", input.Improvement))
	if input.Tone != "" {
		b.WriteString(fmt.Sprintf(" Use a %s tone.", input.Tone))
	}
	b.WriteString("\n\n")
	b.WriteString(input.Content)
	return b.String()
}

// buildTranslatePrompt composes the prompt for the translate operation.
func buildTranslatePrompt(input TranslateInput) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(fmt.Sprintf("\n\nTranslate the following text into %s.", input.TargetLanguage))
	if input.PreserveFormatting {
		b.WriteString(" Preserve the original formatting and markup exactly.")
	}
	b.WriteString("\n\n")
	b.WriteString(input.Content)
	return b.String()
}

// buildSummarizePrompt composes the prompt for the summarize operation.
func buildSummarizePrompt(input SummarizeInput) string {
	var b strings.Builder
	b.WriteString(preamble)
	if input.SummaryLength == SummaryDetailed {
		b.WriteString("\n\nWrite a detailed summary of the following text, covering every major point.")
	} else {
		b.WriteString("\n\nWrite a brief summary of the following text in a few sentences.")
	}
	b.WriteString("\n\n")
	b.WriteString(input.Content)
	return b.String()
}
