package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// GatewayClient talks to an OpenAI-compatible chat completions endpoint.
type GatewayClient struct {
	client *openai.Client
	model  string
}

func NewGatewayClient(apiKey, baseURL, model string) (*GatewayClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GatewayClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (c *GatewayClient) Complete(ctx context.Context, turns []domain.ChatTurn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", translateOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func translateOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s", errorForStatus(apiErr.HTTPStatusCode), apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: status %d", errorForStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
