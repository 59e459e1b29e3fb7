package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserType is the audience a profile is looking for.
type UserType string

const (
	UserTypeCompetition UserType = "competition"
	UserTypeStartup     UserType = "startup"
	UserTypeBoth        UserType = "both"
	UserTypeUnset       UserType = ""
)

const NoPreference = "no_preference"

// CofounderPreferences is the co-founder matching block filled in the last
// onboarding step.
type CofounderPreferences struct {
	IdeaPreference      string         `json:"cofounder_idea_preference" db:"cofounder_idea_preference"`
	TechnicalPreference string         `json:"cofounder_technical_preference" db:"cofounder_technical_preference"`
	TimingPreference    string         `json:"cofounder_timing_preference" db:"cofounder_timing_preference"`
	LocationPreference  string         `json:"cofounder_location_preference" db:"cofounder_location_preference"`
	LocationDistance    int            `json:"cofounder_location_distance" db:"cofounder_location_distance"`
	AgePreference       string         `json:"cofounder_age_preference" db:"cofounder_age_preference"`
	AgeMin              int            `json:"cofounder_age_min" db:"cofounder_age_min"`
	AgeMax              int            `json:"cofounder_age_max" db:"cofounder_age_max"`
	ResponsibilityAreas pq.StringArray `json:"cofounder_responsibility_areas" db:"cofounder_responsibility_areas"`
	InterestPreference  string         `json:"cofounder_interest_preference" db:"cofounder_interest_preference"`
}

// DefaultCofounderPreferences returns the values a fresh profile starts with.
func DefaultCofounderPreferences() CofounderPreferences {
	return CofounderPreferences{
		IdeaPreference:      NoPreference,
		TechnicalPreference: NoPreference,
		TimingPreference:    NoPreference,
		LocationPreference:  NoPreference,
		LocationDistance:    50,
		AgePreference:       NoPreference,
		AgeMin:              18,
		AgeMax:              65,
		ResponsibilityAreas: pq.StringArray{},
		InterestPreference:  NoPreference,
	}
}

// Profile is keyed by the owning user's id; exactly one per identity.
type Profile struct {
	ID                       uuid.UUID      `json:"id" db:"id"`
	FullName                 string         `json:"full_name" db:"full_name"`
	AvatarURL                string         `json:"avatar_url" db:"avatar_url"`
	Email                    string         `json:"email" db:"email"`
	LinkedinURL              string         `json:"linkedin_url" db:"linkedin_url"`
	GithubURL                string         `json:"github_url" db:"github_url"`
	SocialMediaURL           string         `json:"social_media_url" db:"social_media_url"`
	Location                 string         `json:"location" db:"location"`
	Timezone                 string         `json:"timezone" db:"timezone"`
	Role                     string         `json:"role" db:"role"`
	School                   string         `json:"school" db:"school"`
	Bio                      string         `json:"bio" db:"bio"`
	ImpressiveAccomplishment string         `json:"impressive_accomplishment" db:"impressive_accomplishment"`
	IsTechnical              bool           `json:"is_technical" db:"is_technical"`
	ExperienceLevel          string         `json:"experience_level" db:"experience_level"`
	UserType                 UserType       `json:"user_type" db:"user_type"`
	Availability             string         `json:"availability" db:"availability"`
	HoursPerWeek             *int           `json:"hours_per_week" db:"hours_per_week"`
	Skills                   pq.StringArray `json:"skills" db:"skills"`
	Interests                pq.StringArray `json:"interests" db:"interests"`
	Languages                pq.StringArray `json:"languages" db:"languages"`
	ResponsibilityAreas      pq.StringArray `json:"responsibility_areas" db:"responsibility_areas"`
	Gender                   string         `json:"gender" db:"gender"`
	Birthdate                *time.Time     `json:"birthdate" db:"birthdate"`
	HasStartupIdea           string         `json:"has_startup_idea" db:"has_startup_idea"`
	StartupIdeas             string         `json:"startup_ideas" db:"startup_ideas"`
	HasCofounder             bool           `json:"has_cofounder" db:"has_cofounder"`
	FulltimeAvailability     string         `json:"fulltime_availability" db:"fulltime_availability"`
	EquityExpectation        string         `json:"equity_expectation" db:"equity_expectation"`
	Hobbies                  string         `json:"hobbies" db:"hobbies"`
	LifePath                 string         `json:"life_path" db:"life_path"`
	AdditionalInfo           string         `json:"additional_info" db:"additional_info"`
	CofounderPreferences
	OnboardingStep      int       `json:"onboarding_step" db:"onboarding_step"`
	OnboardingCompleted bool      `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileSummary is the small projection used next to messages and teams.
type ProfileSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	Role      string    `json:"role" db:"role"`
	Email     string    `json:"email" db:"email"`
}

type Education struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	School         string    `json:"school" db:"school"`
	Degree         string    `json:"degree" db:"degree"`
	FieldOfStudy   string    `json:"field_of_study" db:"field_of_study"`
	GraduationYear *int      `json:"graduation_year" db:"graduation_year"`
	SortIndex      int       `json:"-" db:"sort_index"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type Employment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Employer  string     `json:"employer" db:"employer"`
	Position  string     `json:"position" db:"position"`
	StartDate *time.Time `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date" db:"end_date"`
	IsCurrent bool       `json:"is_current" db:"is_current"`
	SortIndex int        `json:"-" db:"sort_index"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// ProfileDetail is a public profile page: the profile plus its history.
type ProfileDetail struct {
	*Profile
	Education  []*Education  `json:"education"`
	Employment []*Employment `json:"employment"`
}
