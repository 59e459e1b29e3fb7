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
	"github.com/lib/pq"
)

const profileColumns = `
	id, full_name, avatar_url, email, linkedin_url, github_url, social_media_url,
	location, timezone, role, school, bio, impressive_accomplishment, is_technical,
	experience_level, user_type, availability, hours_per_week,
	skills, interests, languages, responsibility_areas,
	gender, birthdate, has_startup_idea, startup_ideas, has_cofounder,
	fulltime_availability, equity_expectation, hobbies, life_path, additional_info,
	cofounder_idea_preference, cofounder_technical_preference, cofounder_timing_preference,
	cofounder_location_preference, cofounder_location_distance, cofounder_age_preference,
	cofounder_age_min, cofounder_age_max, cofounder_responsibility_areas,
	cofounder_interest_preference, onboarding_step, onboarding_completed,
	created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetSummary(ctx context.Context, id uuid.UUID) (*domain.ProfileSummary, error) {
	var summary domain.ProfileSummary
	query := `SELECT id, full_name, avatar_url, role, email FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &summary, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2, role = $3, school = $4, location = $5,
		    timezone = $6, bio = $7, skills = $8, interests = $9, languages = $10,
		    user_type = $11, experience_level = $12, availability = $13,
		    hours_per_week = $14, linkedin_url = $15, github_url = $16,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $17
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.FullName, profile.AvatarURL, profile.Role, profile.School, profile.Location,
		profile.Timezone, profile.Bio, stringArray(profile.Skills), stringArray(profile.Interests),
		stringArray(profile.Languages), profile.UserType, profile.ExperienceLevel,
		profile.Availability, profile.HoursPerWeek, profile.LinkedinURL, profile.GithubURL,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) List(ctx context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	profiles := []*domain.Profile{}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if len(filter.UserTypes) > 0 {
		types := make([]string, 0, len(filter.UserTypes))
		for _, t := range filter.UserTypes {
			types = append(types, string(t))
		}
		query += fmt.Sprintf(" AND user_type = ANY($%d)", argCount)
		args = append(args, pq.Array(types))
		argCount++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	err := r.db.SelectContext(ctx, &profiles, query, args...)
	return profiles, err
}

func (r *profileRepository) ListEducation(ctx context.Context, userID uuid.UUID) ([]*domain.Education, error) {
	rows := []*domain.Education{}
	query := `
		SELECT id, user_id, school, degree, field_of_study, graduation_year, sort_index, created_at
		FROM education WHERE user_id = $1
		ORDER BY sort_index ASC
	`
	err := r.db.SelectContext(ctx, &rows, query, userID)
	return rows, err
}

func (r *profileRepository) ListEmployment(ctx context.Context, userID uuid.UUID) ([]*domain.Employment, error) {
	rows := []*domain.Employment{}
	query := `
		SELECT id, user_id, employer, position, start_date, end_date, is_current, sort_index, created_at
		FROM employment WHERE user_id = $1
		ORDER BY sort_index ASC
	`
	err := r.db.SelectContext(ctx, &rows, query, userID)
	return rows, err
}
