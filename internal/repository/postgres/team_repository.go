package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const teamColumns = `
	id, founder_id, name, description, stage, industry, location, looking_for,
	team_size, website_url, pitch_deck_url, open_roles, equity_offered, type, created_at`

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (id, founder_id, name, description, stage, industry, location,
		                   looking_for, team_size, website_url, pitch_deck_url, open_roles,
		                   equity_offered, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		team.ID, team.FounderID, team.Name, team.Description, team.Stage, team.Industry,
		team.Location, team.LookingFor, team.TeamSize, team.WebsiteURL, team.PitchDeckURL,
		stringArray(team.OpenRoles), team.EquityOffered, team.Type,
	).Scan(&team.CreatedAt)
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	err := r.db.GetContext(ctx, &team, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context, filter repository.TeamFilter) ([]*domain.Team, error) {
	teams := []*domain.Team{}

	query := `SELECT ` + teamColumns + ` FROM teams WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argCount)
		args = append(args, filter.Type)
		argCount++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	err := r.db.SelectContext(ctx, &teams, query, args...)
	return teams, err
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTeamNotFound)
}
