package postgres

import (
	"context"
	"fmt"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type onboardingRepository struct {
	db *sqlx.DB
}

func NewOnboardingRepository(db *sqlx.DB) repository.OnboardingRepository {
	return &onboardingRepository{db: db}
}

// SaveProgress runs in one transaction. Education and employment are always
// deleted and reinserted so entries removed from the draft disappear.
func (r *onboardingRepository) SaveProgress(ctx context.Context, userID uuid.UUID, draft *domain.OnboardingDraft, step int, completed bool) error {
	birthdate, err := draft.BirthdateValue()
	if err != nil {
		return fmt.Errorf("%w: birthdate: %v", domain.ErrInvalidInput, err)
	}
	employment, err := draft.EmploymentRows(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	education := draft.EducationRows(userID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	prefs := draft.CofounderPreferences

	query := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2, email = $3, linkedin_url = $4, location = $5,
		    bio = $6, impressive_accomplishment = $7, is_technical = $8,
		    gender = $9, birthdate = $10, social_media_url = $11,
		    has_startup_idea = $12, startup_ideas = $13, has_cofounder = $14,
		    fulltime_availability = $15, responsibility_areas = $16, interests = $17,
		    equity_expectation = $18, hobbies = $19, life_path = $20, additional_info = $21,
		    cofounder_idea_preference = $22, cofounder_technical_preference = $23,
		    cofounder_timing_preference = $24, cofounder_location_preference = $25,
		    cofounder_location_distance = $26, cofounder_age_preference = $27,
		    cofounder_age_min = $28, cofounder_age_max = $29,
		    cofounder_responsibility_areas = $30, cofounder_interest_preference = $31,
		    onboarding_step = $32, onboarding_completed = $33,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $34
	`
	res, err := tx.ExecContext(ctx, query,
		draft.FullName, draft.AvatarURL, draft.Email, draft.LinkedinURL, draft.Location,
		draft.Bio, draft.ImpressiveAccomplishment, draft.IsTechnical,
		draft.Gender, birthdate, draft.SocialMediaURL,
		draft.HasStartupIdea, draft.StartupIdeas, draft.HasCofounder,
		draft.FulltimeAvailability, stringArray(draft.ResponsibilityAreas), stringArray(draft.Interests),
		draft.EquityExpectation, draft.Hobbies, draft.LifePath, draft.AdditionalInfo,
		prefs.IdeaPreference, prefs.TechnicalPreference,
		prefs.TimingPreference, prefs.LocationPreference,
		prefs.LocationDistance, prefs.AgePreference,
		prefs.AgeMin, prefs.AgeMax,
		stringArray(prefs.ResponsibilityAreas), prefs.InterestPreference,
		step, completed,
		userID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProfileNotFound
	}

	if err := replaceEducation(ctx, tx, userID, education); err != nil {
		return err
	}
	if err := replaceEmployment(ctx, tx, userID, employment); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceEducation(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, rows []*domain.Education) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM education WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete education: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	query := `
		INSERT INTO education (id, user_id, school, degree, field_of_study, graduation_year, sort_index)
		VALUES (:id, :user_id, :school, :degree, :field_of_study, :graduation_year, :sort_index)
	`
	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("insert education: %w", err)
	}
	return nil
}

func replaceEmployment(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, rows []*domain.Employment) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM employment WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete employment: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	query := `
		INSERT INTO employment (id, user_id, employer, position, start_date, end_date, is_current, sort_index)
		VALUES (:id, :user_id, :employer, :position, :start_date, :end_date, :is_current, :sort_index)
	`
	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("insert employment: %w", err)
	}
	return nil
}

// stringArray keeps NOT NULL array columns from receiving NULL.
func stringArray(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}
