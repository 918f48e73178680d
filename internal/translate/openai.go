// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI is a Translator backed by an OpenAI chat model.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed translator. model may be empty to use
// a default.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

const systemPrompt = "You are a translation engine for UI strings. " +
	"Translate the user's text exactly, preserving placeholders and punctuation. " +
	"Reply with only the translated text, nothing else."

// Translate implements Translator via a chat completion.
func (o *OpenAI) Translate(ctx context.Context, text, source, target string) (string, error) {
	prompt := fmt.Sprintf("Translate from %s to %s:\n%s", source, target, text)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: "openai", Target: target, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: "openai", Target: target, Err: fmt.Errorf("no choices returned")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
