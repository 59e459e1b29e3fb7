package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MessagingUseCase struct {
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	events      repository.MessageEventBus
	log         zerolog.Logger
}

func NewMessagingUseCase(
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	events repository.MessageEventBus,
	log zerolog.Logger,
) *MessagingUseCase {
	return &MessagingUseCase{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		events:      events,
		log:         log.With().Str("component", "messaging").Logger(),
	}
}

// SendRequest represents a new message
type SendRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" binding:"required"`
	Subject     string    `json:"subject" binding:"max=200"`
	Message     string    `json:"message" binding:"max=5000"`
}

// ReplyRequest represents a reply to a received message
type ReplyRequest struct {
	Message string `json:"message" binding:"max=5000"`
}

// Send stores one unread message from sender to recipient and starts a new
// thread. A blank body is rejected before anything is written.
func (uc *MessagingUseCase) Send(ctx context.Context, senderID uuid.UUID, req *SendRequest) (*domain.Message, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = domain.DefaultSubject
	}

	id := uuid.New()
	msg := &domain.Message{
		ID:          id,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		ThreadID:    id,
		Subject:     subject,
		Body:        req.Message,
		Read:        false,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	uc.publish(ctx, domain.MessageInserted, msg)
	return msg, nil
}

// Reply answers a message the caller received: sender and recipient swap,
// the subject gets the reply prefix once and the thread is kept.
func (uc *MessagingUseCase) Reply(ctx context.Context, callerID, messageID uuid.UUID, req *ReplyRequest) (*domain.Message, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	original, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if original.RecipientID != callerID {
		return nil, domain.ErrMessageNotFound
	}

	msg := &domain.Message{
		ID:          uuid.New(),
		SenderID:    callerID,
		RecipientID: original.SenderID,
		ThreadID:    original.ThreadID,
		Subject:     domain.ReplySubject(original.Subject),
		Body:        req.Message,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send reply: %w", err)
	}

	uc.publish(ctx, domain.MessageInserted, msg)
	return msg, nil
}

// Inbox lists the caller's received messages newest first. Each sender is
// looked up individually; unknown senders get a placeholder name.
func (uc *MessagingUseCase) Inbox(ctx context.Context, userID uuid.UUID) ([]*domain.InboxItem, error) {
	messages, err := uc.messageRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}

	items := make([]*domain.InboxItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, &domain.InboxItem{
			Message: msg,
			Sender:  uc.senderSummary(ctx, msg.SenderID),
		})
	}
	return items, nil
}

func (uc *MessagingUseCase) senderSummary(ctx context.Context, senderID uuid.UUID) domain.ProfileSummary {
	summary, err := uc.profileRepo.GetSummary(ctx, senderID)
	if err == nil && summary.FullName != "" {
		return *summary
	}
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		uc.log.Warn().Err(err).Str("sender_id", senderID.String()).Msg("sender lookup failed")
	}
	fallback := domain.ProfileSummary{ID: senderID, FullName: domain.UnknownSender}
	if summary != nil {
		fallback.AvatarURL = summary.AvatarURL
		fallback.Role = summary.Role
	}
	return fallback
}

// Thread returns the messages of a thread the caller takes part in.
func (uc *MessagingUseCase) Thread(ctx context.Context, userID, threadID uuid.UUID) ([]*domain.Message, error) {
	messages, err := uc.messageRepo.ListThread(ctx, threadID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	if len(messages) == 0 {
		return nil, domain.ErrMessageNotFound
	}
	return messages, nil
}

// MarkRead flags a received message as read. Repeating it is harmless.
func (uc *MessagingUseCase) MarkRead(ctx context.Context, userID, messageID uuid.UUID) error {
	if err := uc.messageRepo.MarkRead(ctx, messageID, userID); err != nil {
		return err
	}
	uc.publish(ctx, domain.MessageUpdated, &domain.Message{ID: messageID, RecipientID: userID})
	return nil
}

// Delete removes a received message from the caller's inbox.
func (uc *MessagingUseCase) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	if err := uc.messageRepo.Delete(ctx, messageID, userID); err != nil {
		return err
	}
	uc.publish(ctx, domain.MessageDeleted, &domain.Message{ID: messageID, RecipientID: userID})
	return nil
}

func (uc *MessagingUseCase) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return uc.messageRepo.CountUnread(ctx, userID)
}

// WatchUnread emits the unread count once immediately and again after every
// change to the caller's messages, recomputing it from scratch each time.
// The channel closes when ctx is done.
func (uc *MessagingUseCase) WatchUnread(ctx context.Context, userID uuid.UUID) (<-chan int, error) {
	events, closeSub, err := uc.events.Subscribe(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan int, 1)
	go func() {
		defer close(out)
		defer func() {
			if err := closeSub(); err != nil {
				uc.log.Debug().Err(err).Msg("closing unread subscription")
			}
		}()

		emit := func() bool {
			count, err := uc.messageRepo.CountUnread(ctx, userID)
			if err != nil {
				if ctx.Err() == nil {
					uc.log.Warn().Err(err).Str("user_id", userID.String()).Msg("unread count failed")
				}
				return ctx.Err() == nil
			}
			select {
			case out <- count:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok || !emit() {
					return
				}
			}
		}
	}()

	return out, nil
}

// publish is best effort; the row is already stored.
func (uc *MessagingUseCase) publish(ctx context.Context, typ domain.MessageEventType, msg *domain.Message) {
	evt := domain.MessageEvent{Type: typ, MessageID: msg.ID, RecipientID: msg.RecipientID}
	if err := uc.events.Publish(ctx, evt); err != nil {
		uc.log.Warn().Err(err).
			Str("message_id", msg.ID.String()).
			Str("event", string(typ)).
			Msg("failed to publish message event")
	}
}
