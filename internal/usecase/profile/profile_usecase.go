package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	stateRepo   repository.OnboardingStateRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, stateRepo repository.OnboardingStateRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		stateRepo:   stateRepo,
	}
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	FullName        *string   `json:"full_name" binding:"omitempty,max=100"`
	AvatarURL       *string   `json:"avatar_url" binding:"omitempty,url"`
	Role            *string   `json:"role" binding:"omitempty,max=100"`
	School          *string   `json:"school" binding:"omitempty,max=200"`
	Location        *string   `json:"location" binding:"omitempty,max=100"`
	Timezone        *string   `json:"timezone" binding:"omitempty,max=64"`
	Bio             *string   `json:"bio" binding:"omitempty,max=2000"`
	Skills          *[]string `json:"skills" binding:"omitempty,max=50"`
	Interests       *[]string `json:"interests" binding:"omitempty,max=50"`
	Languages       *[]string `json:"languages" binding:"omitempty,max=20"`
	UserType        *string   `json:"user_type" binding:"omitempty,oneof=competition startup both"`
	ExperienceLevel *string   `json:"experience_level" binding:"omitempty,max=50"`
	Availability    *string   `json:"availability" binding:"omitempty,max=100"`
	HoursPerWeek    *int      `json:"hours_per_week" binding:"omitempty,min=0,max=168"`
	LinkedinURL     *string   `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL       *string   `json:"github_url" binding:"omitempty,url"`
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// GetProfileDetail returns a public profile with its education and
// employment history, newest position first.
func (uc *ProfileUseCase) GetProfileDetail(ctx context.Context, id uuid.UUID) (*domain.ProfileDetail, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	education, err := uc.profileRepo.ListEducation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load education: %w", err)
	}
	employment, err := uc.profileRepo.ListEmployment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load employment: %w", err)
	}
	sortByStartDesc(employment)

	return &domain.ProfileDetail{
		Profile:    profile,
		Education:  education,
		Employment: employment,
	}, nil
}

// UpdateProfile updates user profile
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.School != nil {
		profile.School = *req.School
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Skills != nil {
		profile.Skills = cleanList(*req.Skills)
	}
	if req.Interests != nil {
		profile.Interests = cleanList(*req.Interests)
	}
	if req.Languages != nil {
		profile.Languages = cleanList(*req.Languages)
	}
	if req.UserType != nil {
		profile.UserType = domain.UserType(*req.UserType)
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Availability != nil {
		profile.Availability = *req.Availability
	}
	if req.HoursPerWeek != nil {
		profile.HoursPerWeek = req.HoursPerWeek
	}
	if req.LinkedinURL != nil {
		profile.LinkedinURL = *req.LinkedinURL
	}
	if req.GithubURL != nil {
		profile.GithubURL = *req.GithubURL
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	// A cached onboarding draft still holds the old values and would write
	// them back on the next save.
	if err := uc.stateRepo.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to reset onboarding draft: %w", err)
	}

	return profile, nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order.
func cleanList(in []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func sortByStartDesc(rows []*domain.Employment) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].StartDate, rows[j].StartDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
