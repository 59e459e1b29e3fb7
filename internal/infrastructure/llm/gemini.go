package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient calls the Gemini API directly.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient accepts extra client options, e.g. a custom endpoint.
func NewGeminiClient(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Complete maps system turns to the system instruction, earlier turns to chat
// history and sends the final turn.
func (c *GeminiClient) Complete(ctx context.Context, turns []domain.ChatTurn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("%w: empty conversation", ErrUpstream)
	}

	model := c.client.GenerativeModel(c.model)
	var history []*genai.Content
	var system []genai.Part
	for _, t := range turns[:len(turns)-1] {
		switch t.Role {
		case domain.RoleSystem:
			system = append(system, genai.Text(t.Content))
		case domain.RoleAssistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(t.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(t.Content)}})
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: system}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return "", translateGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func translateGeminiError(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode() > 0 {
		return fmt.Errorf("%w: %v", errorForStatus(apiErr.HTTPCode()), err)
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return fmt.Errorf("%w: %v", errorForStatus(gErr.Code), err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
