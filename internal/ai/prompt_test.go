// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestBuildGeneratePrompt_Deterministic verifies the fixed composition order:
preamble, then instruction, then user content.
*/
func TestBuildGeneratePrompt_Deterministic(t *testing.T) {
	input := GenerateInput{
		Topic:       "the history of movable type",
		ContentType: "article",
		Tone:        ToneProfessional,
		Length:      LengthMedium,
	}

	first := buildGeneratePrompt(input)
	second := buildGeneratePrompt(input)
	assert.Equal(t, first, second)

	assert.True(t, strings.HasPrefix(first, preamble))
	instructionIdx := strings.Index(first, `Write content of type "article"`)
	topicIdx := strings.Index(first, input.Topic)
	assert.Greater(t, instructionIdx, 0)
	assert.Greater(t, topicIdx, instructionIdx)
}

/*
TestBuildGeneratePrompt_OptionalFields omits tone and length when unset.
*/
func TestBuildGeneratePrompt_OptionalFields(t *testing.T) {
	bare := buildGeneratePrompt(GenerateInput{Topic: "bees", ContentType: "blog_post"})
	assert.NotContains(t, bare, "tone")
	assert.NotContains(t, bare, "length")

	full := buildGeneratePrompt(GenerateInput{
		Topic:       "bees",
		ContentType: "blog_post",
		Tone:        ToneCasual,
		Length:      LengthShort,
	})
	assert.Contains(t, full, "casual tone")
	assert.Contains(t, full, "short length")
}

/*
TestBuildImprovePrompt includes the editing focus and the content last.
*/
func TestBuildImprovePrompt(t *testing.T) {
	prompt := buildImprovePrompt(ImproveInput{
		Content:     "Their going to the store.",
		Improvement: ImproveGrammar,
	})

	assert.Contains(t, prompt, "focusing on grammar")
	assert.True(t, strings.HasSuffix(prompt, "Their going to the store."))
}

/*
TestBuildTranslatePrompt toggles the formatting clause.
*/
func TestBuildTranslatePrompt(t *testing.T) {
	preserved := buildTranslatePrompt(TranslateInput{
		Content:            "<p>Hello</p>",
		TargetLanguage:     "French",
		PreserveFormatting: true,
	})
	assert.Contains(t, preserved, "into French")
	assert.Contains(t, preserved, "Preserve the original formatting")

	plain := buildTranslatePrompt(TranslateInput{
		Content:        "<p>Hello</p>",
		TargetLanguage: "French",
	})
	assert.NotContains(t, plain, "Preserve the original formatting")
}

/*
TestBuildSummarizePrompt switches instruction by summary length.
*/
func TestBuildSummarizePrompt(t *testing.T) {
	brief := buildSummarizePrompt(SummarizeInput{Content: "long text", SummaryLength: SummaryBrief})
	assert.Contains(t, brief, "brief summary")

	detailed := buildSummarizePrompt(SummarizeInput{Content: "long text", SummaryLength: SummaryDetailed})
	assert.Contains(t, detailed, "detailed summary")
}
