package aienhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docextract/docextract/internal/model"
)

// OpenAIEnhancer fills Record gaps using an OpenAI-compatible chat
// completion endpoint. Grounded on the sashabaranov/go-openai
// client/ChatCompletionRequest idiom used across the retrieval pack (JSON
// object response format + system/user message pair).
type OpenAIEnhancer struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIEnhancer builds an OpenAIEnhancer for the given API key and
// model name (e.g. "gpt-4o-mini"). baseURL overrides the default OpenAI
// endpoint when non-empty, so the same enhancer also serves self-hosted or
// Ollama-compatible OpenAI-shaped endpoints.
func NewOpenAIEnhancer(apiKey, baseURL, modelName string) *OpenAIEnhancer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	return &OpenAIEnhancer{
		client:    openai.NewClientWithConfig(config),
		modelName: modelName,
	}
}

const enhancerSystemPrompt = "You fill in missing fields on a partially " +
	"extracted business document record. Only report a field's value when " +
	"it is clearly present in the supplied text. Always respond with a " +
	"single valid JSON object and nothing else."

// Enhance asks the configured OpenAI-compatible model to fill whatever
// fields record is missing. Any failure is swallowed into a warning; record
// is always returned usable.
func (o *OpenAIEnhancer) Enhance(ctx context.Context, record model.Record, rawText string) (model.Record, []string) {
	req := openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: enhancerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: gapsPrompt(record, rawText)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return record, []string{fmt.Sprintf("openai enhancer: chat completion failed: %v", err)}
	}
	if len(resp.Choices) == 0 {
		return record, []string{"openai enhancer: no choices in response"}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	if content == "" {
		return record, []string{"openai enhancer: empty response content"}
	}

	var p patch
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return record, []string{fmt.Sprintf("openai enhancer: malformed JSON response: %v", err)}
	}

	return applyPatch(record, p), nil
}
