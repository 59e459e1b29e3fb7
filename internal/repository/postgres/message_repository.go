package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const messageColumns = `id, sender_id, recipient_id, thread_id, subject, body, read, created_at`

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, recipient_id, thread_id, subject, body, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		msg.ID, msg.SenderID, msg.RecipientID, msg.ThreadID, msg.Subject, msg.Body, msg.Read,
	).Scan(&msg.CreatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var msg domain.Message
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	err := r.db.GetContext(ctx, &msg, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &messages, query, recipientID)
	return messages, err
}

func (r *messageRepository) ListThread(ctx context.Context, threadID, participantID uuid.UUID) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE thread_id = $1 AND (sender_id = $2 OR recipient_id = $2)
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, threadID, participantID)
	return messages, err
}

// MarkRead succeeds for an already read message as long as the caller is
// its recipient.
func (r *messageRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read = true WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrMessageNotFound)
}

func (r *messageRepository) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrMessageNotFound)
}

func (r *messageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
