package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

type TeamUseCase struct {
	teamRepo    repository.TeamRepository
	profileRepo repository.ProfileRepository
	log         zerolog.Logger
}

func NewTeamUseCase(teamRepo repository.TeamRepository, profileRepo repository.ProfileRepository, log zerolog.Logger) *TeamUseCase {
	return &TeamUseCase{
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// CreateTeamRequest represents team creation request
type CreateTeamRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Description   string   `json:"description" binding:"max=500"`
	Stage         string   `json:"stage" binding:"max=50"`
	Industry      string   `json:"industry" binding:"max=100"`
	Location      string   `json:"location" binding:"max=100"`
	LookingFor    string   `json:"looking_for" binding:"max=300"`
	TeamSize      *int     `json:"team_size" binding:"omitempty,min=1,max=1000"`
	WebsiteURL    string   `json:"website_url" binding:"omitempty,url"`
	PitchDeckURL  string   `json:"pitch_deck_url" binding:"omitempty,url"`
	OpenRoles     []string `json:"open_roles" binding:"max=20,dive,max=100"`
	EquityOffered bool     `json:"equity_offered"`
	Type          string   `json:"type" binding:"required,oneof=startup competition"`
}

// CreateTeam creates a team founded by the caller.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, founderID uuid.UUID, req *CreateTeamRequest) (*domain.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}
	teamType := domain.TeamType(req.Type)
	if !teamType.Valid() {
		return nil, fmt.Errorf("%w: unknown team type", domain.ErrInvalidInput)
	}

	size := 1
	if req.TeamSize != nil {
		size = *req.TeamSize
	}

	team := &domain.Team{
		ID:            uuid.New(),
		FounderID:     founderID,
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		Stage:         req.Stage,
		Industry:      req.Industry,
		Location:      strings.TrimSpace(req.Location),
		LookingFor:    strings.TrimSpace(req.LookingFor),
		TeamSize:      size,
		WebsiteURL:    req.WebsiteURL,
		PitchDeckURL:  req.PitchDeckURL,
		OpenRoles:     dedupeRoles(req.OpenRoles),
		EquityOffered: req.EquityOffered,
		Type:          teamType,
	}

	if err := uc.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// GetTeam returns the team with a summary of its founder. A founder whose
// profile cannot be read is left out.
func (uc *TeamUseCase) GetTeam(ctx context.Context, id uuid.UUID) (*domain.TeamDetail, error) {
	team, err := uc.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.TeamDetail{Team: team}
	founder, err := uc.profileRepo.GetSummary(ctx, team.FounderID)
	switch {
	case err == nil:
		detail.Founder = founder
	case errors.Is(err, domain.ErrProfileNotFound):
	default:
		uc.log.Warn().Err(err).Str("team_id", id.String()).Msg("failed to load team founder")
	}
	return detail, nil
}

// DeleteTeam removes a team; only its founder may do so.
func (uc *TeamUseCase) DeleteTeam(ctx context.Context, callerID, id uuid.UUID) error {
	team, err := uc.teamRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if team.FounderID != callerID {
		return domain.ErrForbidden
	}
	return uc.teamRepo.Delete(ctx, id)
}

func dedupeRoles(roles []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		key := strings.ToLower(r)
		if r == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
