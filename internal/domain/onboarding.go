package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	OnboardingFirstStep  = 1
	OnboardingTotalSteps = 7
	dateLayout           = "2006-01-02"
)

var optionalSteps = map[int]bool{3: true, 4: true, 6: true}

// IsOptionalStep reports whether the wizard allows skipping the step.
func IsOptionalStep(step int) bool {
	return optionalSteps[step]
}

type EducationDraft struct {
	School         string `json:"school" validate:"required,max=200"`
	Degree         string `json:"degree" validate:"max=200"`
	FieldOfStudy   string `json:"field_of_study" validate:"max=200"`
	GraduationYear *int   `json:"graduation_year" validate:"omitempty,min=1900,max=2100"`
}

type EmploymentDraft struct {
	Employer  string `json:"employer" validate:"required,max=200"`
	Position  string `json:"position" validate:"max=200"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent bool   `json:"is_current"`
}

// OnboardingDraft is the record the wizard accumulates across its seven steps.
type OnboardingDraft struct {
	// Step 1: basic info
	FullName    string `json:"full_name"`
	AvatarURL   string `json:"avatar_url"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
	Location    string `json:"location"`

	// Step 2: professional background
	Bio                      string `json:"bio"`
	ImpressiveAccomplishment string `json:"impressive_accomplishment"`
	IsTechnical              bool   `json:"is_technical"`

	// Step 3: education & employment
	Education  []EducationDraft  `json:"education"`
	Employment []EmploymentDraft `json:"employment"`

	// Step 4: personal info
	Gender         string `json:"gender"`
	Birthdate      string `json:"birthdate"`
	SocialMediaURL string `json:"social_media_url"`

	// Step 5: startup readiness
	HasStartupIdea       string   `json:"has_startup_idea"`
	StartupIdeas         string   `json:"startup_ideas"`
	HasCofounder         bool     `json:"has_cofounder"`
	FulltimeAvailability string   `json:"fulltime_availability"`
	ResponsibilityAreas  []string `json:"responsibility_areas"`
	Interests            []string `json:"interests"`

	// Step 6: personal & values
	EquityExpectation string `json:"equity_expectation"`
	Hobbies           string `json:"hobbies"`
	LifePath          string `json:"life_path"`
	AdditionalInfo    string `json:"additional_info"`

	// Step 7: co-founder preferences
	CofounderPreferences
}

// NewOnboardingDraft returns an empty draft with the preference defaults.
func NewOnboardingDraft() OnboardingDraft {
	return OnboardingDraft{
		Education:            []EducationDraft{},
		Employment:           []EmploymentDraft{},
		ResponsibilityAreas:  []string{},
		Interests:            []string{},
		CofounderPreferences: DefaultCofounderPreferences(),
	}
}

// DraftFromProfile pre-populates a draft from stored rows. Any of the
// arguments may be empty; missing values fall back to the draft defaults.
func DraftFromProfile(p *Profile, education []*Education, employment []*Employment) OnboardingDraft {
	d := NewOnboardingDraft()
	if p != nil {
		d.FullName = p.FullName
		d.AvatarURL = p.AvatarURL
		d.Email = p.Email
		d.LinkedinURL = p.LinkedinURL
		d.Location = p.Location
		d.Bio = p.Bio
		d.ImpressiveAccomplishment = p.ImpressiveAccomplishment
		d.IsTechnical = p.IsTechnical
		d.Gender = p.Gender
		d.Birthdate = formatDate(p.Birthdate)
		d.SocialMediaURL = p.SocialMediaURL
		d.HasStartupIdea = p.HasStartupIdea
		d.StartupIdeas = p.StartupIdeas
		d.HasCofounder = p.HasCofounder
		d.FulltimeAvailability = p.FulltimeAvailability
		d.ResponsibilityAreas = nonNil(p.ResponsibilityAreas)
		d.Interests = nonNil(p.Interests)
		d.EquityExpectation = p.EquityExpectation
		d.Hobbies = p.Hobbies
		d.LifePath = p.LifePath
		d.AdditionalInfo = p.AdditionalInfo
		d.CofounderPreferences = mergePreferences(p.CofounderPreferences)
	}
	for _, e := range education {
		d.Education = append(d.Education, EducationDraft{
			School:         e.School,
			Degree:         e.Degree,
			FieldOfStudy:   e.FieldOfStudy,
			GraduationYear: e.GraduationYear,
		})
	}
	for _, e := range employment {
		d.Employment = append(d.Employment, EmploymentDraft{
			Employer:  e.Employer,
			Position:  e.Position,
			StartDate: formatDate(e.StartDate),
			EndDate:   formatDate(e.EndDate),
			IsCurrent: e.IsCurrent,
		})
	}
	return d
}

// EducationRows converts the draft list into rows owned by userID.
func (d *OnboardingDraft) EducationRows(userID uuid.UUID) []*Education {
	rows := make([]*Education, 0, len(d.Education))
	for i, e := range d.Education {
		rows = append(rows, &Education{
			ID:             uuid.New(),
			UserID:         userID,
			School:         e.School,
			Degree:         e.Degree,
			FieldOfStudy:   e.FieldOfStudy,
			GraduationYear: e.GraduationYear,
			SortIndex:      i,
		})
	}
	return rows
}

// EmploymentRows converts the draft list into rows owned by userID. The end
// date of a current position is dropped.
func (d *OnboardingDraft) EmploymentRows(userID uuid.UUID) ([]*Employment, error) {
	rows := make([]*Employment, 0, len(d.Employment))
	for i, e := range d.Employment {
		start, err := parseDate(e.StartDate)
		if err != nil {
			return nil, fmt.Errorf("employment start date: %w", err)
		}
		var end *time.Time
		if !e.IsCurrent {
			if end, err = parseDate(e.EndDate); err != nil {
				return nil, fmt.Errorf("employment end date: %w", err)
			}
		}
		rows = append(rows, &Employment{
			ID:        uuid.New(),
			UserID:    userID,
			Employer:  e.Employer,
			Position:  e.Position,
			StartDate: start,
			EndDate:   end,
			IsCurrent: e.IsCurrent,
			SortIndex: i,
		})
	}
	return rows, nil
}

// BirthdateValue returns the parsed birthdate, nil when unset.
func (d *OnboardingDraft) BirthdateValue() (*time.Time, error) {
	return parseDate(d.Birthdate)
}

// OnboardingDraftPatch carries the subset of draft fields a step submits.
// Nil fields are left untouched by Apply.
type OnboardingDraftPatch struct {
	FullName    *string `json:"full_name" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url"`
	Email       *string `json:"email"`
	LinkedinURL *string `json:"linkedin_url"`
	Location    *string `json:"location" validate:"omitempty,max=100"`

	Bio                      *string `json:"bio" validate:"omitempty,max=2000"`
	ImpressiveAccomplishment *string `json:"impressive_accomplishment" validate:"omitempty,max=2000"`
	IsTechnical              *bool   `json:"is_technical"`

	Education  *[]EducationDraft  `json:"education" validate:"omitempty,dive"`
	Employment *[]EmploymentDraft `json:"employment" validate:"omitempty,dive"`

	Gender         *string `json:"gender"`
	Birthdate      *string `json:"birthdate"`
	SocialMediaURL *string `json:"social_media_url"`

	HasStartupIdea       *string   `json:"has_startup_idea"`
	StartupIdeas         *string   `json:"startup_ideas" validate:"omitempty,max=2000"`
	HasCofounder         *bool     `json:"has_cofounder"`
	FulltimeAvailability *string   `json:"fulltime_availability"`
	ResponsibilityAreas  *[]string `json:"responsibility_areas"`
	Interests            *[]string `json:"interests"`

	EquityExpectation *string `json:"equity_expectation"`
	Hobbies           *string `json:"hobbies" validate:"omitempty,max=1000"`
	LifePath          *string `json:"life_path" validate:"omitempty,max=1000"`
	AdditionalInfo    *string `json:"additional_info" validate:"omitempty,max=2000"`

	CofounderIdeaPreference      *string   `json:"cofounder_idea_preference"`
	CofounderTechnicalPreference *string   `json:"cofounder_technical_preference"`
	CofounderTimingPreference    *string   `json:"cofounder_timing_preference"`
	CofounderLocationPreference  *string   `json:"cofounder_location_preference"`
	CofounderLocationDistance    *int      `json:"cofounder_location_distance" validate:"omitempty,min=1,max=1000"`
	CofounderAgePreference       *string   `json:"cofounder_age_preference"`
	CofounderAgeMin              *int      `json:"cofounder_age_min" validate:"omitempty,min=18,max=100"`
	CofounderAgeMax              *int      `json:"cofounder_age_max" validate:"omitempty,min=18,max=100"`
	CofounderResponsibilityAreas *[]string `json:"cofounder_responsibility_areas"`
	CofounderInterestPreference  *string   `json:"cofounder_interest_preference"`
}

var validate = validator.New()

// Validate checks the fields present in the patch.
func (p *OnboardingDraftPatch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for name, v := range map[string]*string{
		"avatar_url":       p.AvatarURL,
		"linkedin_url":     p.LinkedinURL,
		"social_media_url": p.SocialMediaURL,
	} {
		if v != nil && *v != "" {
			if err := validate.Var(*v, "url"); err != nil {
				return fmt.Errorf("%w: %s must be a valid URL", ErrInvalidInput, name)
			}
		}
	}
	if p.Email != nil && *p.Email != "" {
		if err := validate.Var(*p.Email, "email"); err != nil {
			return fmt.Errorf("%w: email must be a valid address", ErrInvalidInput)
		}
	}
	if p.Birthdate != nil {
		if _, err := parseDate(*p.Birthdate); err != nil {
			return fmt.Errorf("%w: birthdate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return nil
}

// Apply merges the non-nil patch fields into the draft and rejects a result
// whose age range is inverted.
func (d *OnboardingDraft) Apply(p *OnboardingDraftPatch) error {
	next := *d
	setString(&next.FullName, p.FullName)
	setString(&next.AvatarURL, p.AvatarURL)
	setString(&next.Email, p.Email)
	setString(&next.LinkedinURL, p.LinkedinURL)
	setString(&next.Location, p.Location)
	setString(&next.Bio, p.Bio)
	setString(&next.ImpressiveAccomplishment, p.ImpressiveAccomplishment)
	setBool(&next.IsTechnical, p.IsTechnical)
	if p.Education != nil {
		next.Education = append([]EducationDraft{}, (*p.Education)...)
	}
	if p.Employment != nil {
		next.Employment = append([]EmploymentDraft{}, (*p.Employment)...)
	}
	setString(&next.Gender, p.Gender)
	setString(&next.Birthdate, p.Birthdate)
	setString(&next.SocialMediaURL, p.SocialMediaURL)
	setString(&next.HasStartupIdea, p.HasStartupIdea)
	setString(&next.StartupIdeas, p.StartupIdeas)
	setBool(&next.HasCofounder, p.HasCofounder)
	setString(&next.FulltimeAvailability, p.FulltimeAvailability)
	setStrings(&next.ResponsibilityAreas, p.ResponsibilityAreas)
	setStrings(&next.Interests, p.Interests)
	setString(&next.EquityExpectation, p.EquityExpectation)
	setString(&next.Hobbies, p.Hobbies)
	setString(&next.LifePath, p.LifePath)
	setString(&next.AdditionalInfo, p.AdditionalInfo)

	prefs := &next.CofounderPreferences
	setString(&prefs.IdeaPreference, p.CofounderIdeaPreference)
	setString(&prefs.TechnicalPreference, p.CofounderTechnicalPreference)
	setString(&prefs.TimingPreference, p.CofounderTimingPreference)
	setString(&prefs.LocationPreference, p.CofounderLocationPreference)
	setInt(&prefs.LocationDistance, p.CofounderLocationDistance)
	setString(&prefs.AgePreference, p.CofounderAgePreference)
	setInt(&prefs.AgeMin, p.CofounderAgeMin)
	setInt(&prefs.AgeMax, p.CofounderAgeMax)
	if p.CofounderResponsibilityAreas != nil {
		prefs.ResponsibilityAreas = pq.StringArray(append([]string{}, (*p.CofounderResponsibilityAreas)...))
	}
	setString(&prefs.InterestPreference, p.CofounderInterestPreference)

	if prefs.AgeMin > prefs.AgeMax {
		return fmt.Errorf("%w: cofounder_age_min must not exceed cofounder_age_max", ErrInvalidInput)
	}
	*d = next
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v != nil {
		*dst = append([]string{}, (*v)...)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}

// mergePreferences keeps defaults for zero values coming from storage.
func mergePreferences(stored CofounderPreferences) CofounderPreferences {
	p := DefaultCofounderPreferences()
	if stored.IdeaPreference != "" {
		p.IdeaPreference = stored.IdeaPreference
	}
	if stored.TechnicalPreference != "" {
		p.TechnicalPreference = stored.TechnicalPreference
	}
	if stored.TimingPreference != "" {
		p.TimingPreference = stored.TimingPreference
	}
	if stored.LocationPreference != "" {
		p.LocationPreference = stored.LocationPreference
	}
	if stored.LocationDistance != 0 {
		p.LocationDistance = stored.LocationDistance
	}
	if stored.AgePreference != "" {
		p.AgePreference = stored.AgePreference
	}
	if stored.AgeMin != 0 {
		p.AgeMin = stored.AgeMin
	}
	if stored.AgeMax != 0 {
		p.AgeMax = stored.AgeMax
	}
	if len(stored.ResponsibilityAreas) > 0 {
		p.ResponsibilityAreas = append(pq.StringArray{}, stored.ResponsibilityAreas...)
	}
	if stored.InterestPreference != "" {
		p.InterestPreference = stored.InterestPreference
	}
	return p
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
