package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// AIMessage is one stored assistant conversation turn.
type AIMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Role      ChatRole  `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChatTurn is a provider-neutral message sent upstream.
type ChatTurn struct {
	Role    ChatRole
	Content string
}
