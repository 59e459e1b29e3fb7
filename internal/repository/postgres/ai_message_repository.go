package postgres

import (
	"context"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type aiMessageRepository struct {
	db *sqlx.DB
}

func NewAIMessageRepository(db *sqlx.DB) repository.AIMessageRepository {
	return &aiMessageRepository{db: db}
}

func (r *aiMessageRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AIMessage, error) {
	messages := []*domain.AIMessage{}
	query := `
		SELECT id, user_id, role, content, created_at
		FROM ai_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	err := r.db.SelectContext(ctx, &messages, query, userID, limit)
	return messages, err
}

// CreateBatch writes all rows with a single statement.
func (r *aiMessageRepository) CreateBatch(ctx context.Context, msgs []*domain.AIMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	query := `
		INSERT INTO ai_messages (id, user_id, role, content, created_at)
		VALUES (:id, :user_id, :role, :content, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, msgs)
	return err
}
