package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/llm"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	FallbackReply = "I'm having trouble responding right now. Please try again!"

	contextTurns = 10
	historyLimit = 50
)

type AssistantUseCase struct {
	completer   llm.Completer
	profileRepo repository.ProfileRepository
	aiRepo      repository.AIMessageRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewAssistantUseCase accepts a nil completer; Chat then fails with
// llm.ErrNotConfigured.
func NewAssistantUseCase(
	completer llm.Completer,
	profileRepo repository.ProfileRepository,
	aiRepo repository.AIMessageRepository,
	log zerolog.Logger,
) *AssistantUseCase {
	return &AssistantUseCase{
		completer:   completer,
		profileRepo: profileRepo,
		aiRepo:      aiRepo,
		log:         log.With().Str("component", "assistant").Logger(),
		now:         time.Now,
	}
}

// ChatRequest is the assistant endpoint body. The message is checked by the
// use case so a missing one gets the endpoint's own error text.
type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers one message. userID is nil for anonymous callers, who get no
// personalisation and nothing persisted.
func (uc *AssistantUseCase) Chat(ctx context.Context, userID *uuid.UUID, message string) (*ChatResponse, error) {
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if uc.completer == nil {
		metrics.ObserveAssistant(metrics.OutcomeNotConfigured)
		return nil, llm.ErrNotConfigured
	}

	var profile *domain.Profile
	var history []*domain.AIMessage
	if userID != nil {
		profile = uc.loadProfile(ctx, *userID)
		history = uc.loadHistory(ctx, *userID, contextTurns)
	}

	turns := make([]domain.ChatTurn, 0, len(history)+2)
	turns = append(turns, domain.ChatTurn{Role: domain.RoleSystem, Content: SystemPrompt(profile)})
	for _, m := range history {
		turns = append(turns, domain.ChatTurn{Role: m.Role, Content: m.Content})
	}
	turns = append(turns, domain.ChatTurn{Role: domain.RoleUser, Content: message})

	reply, err := uc.completer.Complete(ctx, turns)
	if err != nil {
		metrics.ObserveAssistant(outcomeFor(err))
		uc.log.Error().Err(err).Int("turns", len(turns)).Msg("assistant completion failed")
		return nil, err
	}
	metrics.ObserveAssistant(metrics.OutcomeOK)

	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}

	if userID != nil {
		uc.persist(ctx, *userID, message, reply)
	}

	return &ChatResponse{Reply: reply}, nil
}

// History returns the caller's stored conversation, oldest first.
func (uc *AssistantUseCase) History(ctx context.Context, userID uuid.UUID) ([]*domain.AIMessage, error) {
	rows, err := uc.aiRepo.ListRecent(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	reverse(rows)
	return rows, nil
}

func (uc *AssistantUseCase) loadProfile(ctx context.Context, userID uuid.UUID) *domain.Profile {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			uc.log.Warn().Err(err).Str("user_id", userID.String()).Msg("profile load failed, answering without it")
		}
		return nil
	}
	return profile
}

func (uc *AssistantUseCase) loadHistory(ctx context.Context, userID uuid.UUID, limit int) []*domain.AIMessage {
	rows, err := uc.aiRepo.ListRecent(ctx, userID, limit)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID.String()).Msg("history load failed, answering without it")
		return nil
	}
	reverse(rows)
	return rows
}

// persist stores the exchange as two rows whose timestamps keep the user turn
// first. A failure is logged and the reply still returned.
func (uc *AssistantUseCase) persist(ctx context.Context, userID uuid.UUID, message, reply string) {
	at := uc.now().UTC()
	rows := []*domain.AIMessage{
		{ID: uuid.New(), UserID: userID, Role: domain.RoleUser, Content: message, CreatedAt: at},
		{ID: uuid.New(), UserID: userID, Role: domain.RoleAssistant, Content: reply, CreatedAt: at.Add(time.Microsecond)},
	}
	// The exchange is stored even if the caller has gone away.
	if err := uc.aiRepo.CreateBatch(context.WithoutCancel(ctx), rows); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to save assistant exchange")
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, llm.ErrPaymentRequired):
		return metrics.OutcomePayment
	default:
		return metrics.OutcomeError
	}
}

func reverse(rows []*domain.AIMessage) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
