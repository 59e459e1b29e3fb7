// Package llm adapts chat-completion providers to a single Completer.
package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdugdh24/cofound-backend/internal/domain"
)

var (
	ErrNotConfigured   = errors.New("AI service not configured")
	ErrRateLimited     = errors.New("upstream rate limited")
	ErrPaymentRequired = errors.New("upstream payment required")
	ErrUpstream        = errors.New("upstream error")
)

// Completer sends one non-streamed conversation and returns the reply text.
// An empty reply is not an error.
type Completer interface {
	Complete(ctx context.Context, turns []domain.ChatTurn) (string, error)
}

// errorForStatus maps an upstream HTTP status onto the package errors.
func errorForStatus(status int) error {
	switch status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrPaymentRequired
	default:
		return ErrUpstream
	}
}
