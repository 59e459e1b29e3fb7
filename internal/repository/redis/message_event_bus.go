package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type messageEventBus struct {
	client *redis.Client
}

// NewMessageEventBus fans message changes out over one Pub/Sub channel per
// recipient.
func NewMessageEventBus(client *redis.Client) repository.MessageEventBus {
	return &messageEventBus{client: client}
}

func recipientChannel(recipientID uuid.UUID) string {
	return "messages:recipient:" + recipientID.String()
}

func (b *messageEventBus) Publish(ctx context.Context, evt domain.MessageEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal message event: %w", err)
	}
	return b.client.Publish(ctx, recipientChannel(evt.RecipientID), data).Err()
}

func (b *messageEventBus) Subscribe(ctx context.Context, recipientID uuid.UUID) (<-chan domain.MessageEvent, func() error, error) {
	sub := b.client.Subscribe(ctx, recipientChannel(recipientID))
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan domain.MessageEvent, 16)
	go func() {
		defer close(out)
		log := logger.Get()
		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				var evt domain.MessageEvent
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed message event")
					continue
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, sub.Close, nil
}
