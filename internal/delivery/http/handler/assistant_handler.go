package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/llm"
	"github.com/gdugdh24/cofound-backend/internal/usecase/assistant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Assistant error texts shown to the chat widget.
const (
	errMissingMessage    = "Missing message"
	errAINotConfigured   = "AI service not configured"
	errAIRateLimited     = "Too many requests. Please try again in a moment."
	errAIPaymentRequired = "AI service temporarily unavailable."
	errAIService         = "AI service error"
)

type AssistantHandler struct {
	assistantUseCase *assistant.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *assistant.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{
		assistantUseCase: assistantUseCase,
	}
}

// Chat handles POST /functions/dova-chat
// @Summary Chat with the assistant
// @Description Authentication is optional; signed-in users get a personalised, persisted conversation
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body assistant.ChatRequest true "Message"
// @Success 200 {object} assistant.ChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functions/dova-chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: errMissingMessage,
		})
		return
	}

	var userID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	resp, err := h.assistantUseCase.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		_ = c.Error(err)
		status, msg := assistantError(err)
		c.JSON(status, ErrorResponse{
			Error: msg,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /assistant/history
// @Summary Assistant conversation history
// @Tags assistant
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.AIMessage
// @Router /assistant/history [get]
func (h *AssistantHandler) History(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	msgs, err := h.assistantUseCase.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load history")
		return
	}

	c.JSON(http.StatusOK, msgs)
}

func assistantError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, errMissingMessage
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusInternalServerError, errAINotConfigured
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests, errAIRateLimited
	case errors.Is(err, llm.ErrPaymentRequired):
		return http.StatusPaymentRequired, errAIPaymentRequired
	default:
		return http.StatusInternalServerError, errAIService
	}
}
