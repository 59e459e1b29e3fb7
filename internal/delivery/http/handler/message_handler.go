package handler

import (
	"io"
	"net/http"

	"github.com/gdugdh24/cofound-backend/internal/usecase/messaging"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messagingUseCase *messaging.MessagingUseCase
}

func NewMessageHandler(messagingUseCase *messaging.MessagingUseCase) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: messagingUseCase,
	}
}

// Send handles POST /messages
// @Summary Send a message
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body messaging.SendRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req messaging.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	msg, err := h.messagingUseCase.Send(c.Request.Context(), userID, &req)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// Inbox handles GET /messages
// @Summary Inbox
// @Description Messages received by the caller, newest first, with sender summaries
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.InboxItem
// @Router /messages [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.messagingUseCase.Inbox(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load messages")
		return
	}

	c.JSON(http.StatusOK, items)
}

// Reply handles POST /messages/:id/reply
// @Summary Reply to a message
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body messaging.ReplyRequest true "Reply"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /messages/{id}/reply [post]
func (h *MessageHandler) Reply(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req messaging.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	msg, err := h.messagingUseCase.Reply(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// MarkRead handles POST /messages/:id/read
// @Summary Mark a message read
// @Tags messages
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.messagingUseCase.MarkRead(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "failed to mark message read")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /messages/:id
// @Summary Remove a message from the inbox
// @Tags messages
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.messagingUseCase.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "failed to delete message")
		return
	}

	c.Status(http.StatusNoContent)
}

// Thread handles GET /messages/threads/:thread_id
// @Summary Conversation thread
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param thread_id path string true "Thread ID"
// @Success 200 {array} domain.Message
// @Failure 404 {object} ErrorResponse
// @Router /messages/threads/{thread_id} [get]
func (h *MessageHandler) Thread(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	threadID, ok := pathUUID(c, "thread_id")
	if !ok {
		return
	}

	msgs, err := h.messagingUseCase.Thread(c.Request.Context(), userID, threadID)
	if err != nil {
		respondError(c, err, "failed to load thread")
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// UnreadCount handles GET /messages/unread-count
// @Summary Unread message count
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Router /messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.messagingUseCase.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to count messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// StreamUnreadCount handles GET /messages/unread-count/stream
// @Summary Live unread message count
// @Description Server-sent "unread" events carrying the current count
// @Tags messages
// @Security BearerAuth
// @Produce text/event-stream
// @Router /messages/unread-count/stream [get]
func (h *MessageHandler) StreamUnreadCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	counts, err := h.messagingUseCase.WatchUnread(ctx, userID)
	if err != nil {
		respondError(c, err, "failed to subscribe to messages")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case count, ok := <-counts:
			if !ok {
				return false
			}
			c.SSEvent("unread", gin.H{"count": count})
			return true
		}
	})
}
