// Package chat provides retrieval-augmented question answering
package chat

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/sashabaranov/go-openai"

	"github.com/ragtext/ragtext/pkg/errors"
)

// OpenAIChatModel generates answers through the OpenAI chat API
type OpenAIChatModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIChatModel creates a chat model client
func NewOpenAIChatModel(apiKey, baseURL, model string) (*OpenAIChatModel, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIChatModel{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Generate produces a completion for the given prompts
func (m *OpenAIChatModel) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var answer string

	err := retry.Do(
		func() error {
			resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model: m.model,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
					{Role: openai.ChatMessageRoleUser, Content: userPrompt},
				},
			})
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return errors.NewLLMError("no choices in completion response", nil)
			}
			answer = resp.Choices[0].Message.Content
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
	)
	if err != nil {
		return "", errors.NewLLMError("chat completion failed", err)
	}

	return answer, nil
}

// Close closes the model connection
func (m *OpenAIChatModel) Close() error {
	return nil
}
