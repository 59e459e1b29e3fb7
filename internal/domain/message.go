package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ReplyPrefix    = "Re: "
	DefaultSubject = "(no subject)"
	UnknownSender  = "Unknown"
)

// Message is immutable once sent except for the read flag.
type Message struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SenderID    uuid.UUID `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id" db:"recipient_id"`
	ThreadID    uuid.UUID `json:"thread_id" db:"thread_id"`
	Subject     string    `json:"subject" db:"subject"`
	Body        string    `json:"message" db:"body"`
	Read        bool      `json:"read" db:"read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReplySubject prefixes a subject once.
func ReplySubject(subject string) string {
	if strings.HasPrefix(subject, ReplyPrefix) {
		return subject
	}
	return ReplyPrefix + subject
}

type InboxItem struct {
	*Message
	Sender ProfileSummary `json:"sender"`
}

type MessageEventType string

const (
	MessageInserted MessageEventType = "INSERT"
	MessageUpdated  MessageEventType = "UPDATE"
	MessageDeleted  MessageEventType = "DELETE"
)

// MessageEvent is a change notification on the messages table, keyed by recipient.
type MessageEvent struct {
	Type        MessageEventType `json:"type"`
	MessageID   uuid.UUID        `json:"message_id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
}
