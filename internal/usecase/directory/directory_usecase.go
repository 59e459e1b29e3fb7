package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

type Page string

const (
	PageBrowse      Page = "browse"
	PageCompetition Page = "competition"

	competitionLimit = 20
)

type DirectoryUseCase struct {
	profileRepo repository.ProfileRepository
	teamRepo    repository.TeamRepository
}

func NewDirectoryUseCase(profileRepo repository.ProfileRepository, teamRepo repository.TeamRepository) *DirectoryUseCase {
	return &DirectoryUseCase{
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
	}
}

// BrowseRequest represents the browse query string
type BrowseRequest struct {
	Page     Page   `form:"page" binding:"omitempty,oneof=browse competition"`
	Audience string `form:"audience" binding:"omitempty,oneof=competition startup both"`
	TeamType string `form:"team_type" binding:"omitempty,oneof=startup competition"`
	Query    string `form:"q" binding:"max=200"`
}

type BrowseResponse struct {
	Page           Page              `json:"page"`
	Profiles       []*domain.Profile `json:"profiles"`
	Teams          []*domain.Team    `json:"teams"`
	SampleProfiles bool              `json:"sample_profiles"`
	SampleTeams    bool              `json:"sample_teams"`
}

// AudienceFilter returns the user types shown for an audience. Profiles that
// never picked a type are visible to every audience.
func AudienceFilter(audience domain.UserType) []domain.UserType {
	switch audience {
	case domain.UserTypeCompetition, domain.UserTypeStartup:
		return []domain.UserType{audience, domain.UserTypeBoth, domain.UserTypeUnset}
	default:
		return nil
	}
}

// Browse runs the profile and team reads concurrently. On the generic page an
// empty read is replaced by the sample lists; the competition page shows
// empty as empty.
func (uc *DirectoryUseCase) Browse(ctx context.Context, req *BrowseRequest) (*BrowseResponse, error) {
	page := req.Page
	if page == "" {
		page = PageBrowse
	}

	profileFilter := repository.ProfileFilter{UserTypes: AudienceFilter(domain.UserType(req.Audience))}
	teamFilter := repository.TeamFilter{Type: domain.TeamType(req.TeamType)}
	if page == PageCompetition {
		profileFilter = repository.ProfileFilter{
			UserTypes: AudienceFilter(domain.UserTypeCompetition),
			Limit:     competitionLimit,
		}
		teamFilter = repository.TeamFilter{Type: domain.TeamTypeCompetition, Limit: competitionLimit}
	}

	var profiles []*domain.Profile
	var teams []*domain.Team

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = uc.profileRepo.List(gctx, profileFilter)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		teams, err = uc.teamRepo.List(gctx, teamFilter)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &BrowseResponse{Page: page}
	if page == PageBrowse {
		if len(profiles) == 0 {
			profiles = SampleProfiles()
			resp.SampleProfiles = true
		}
		if len(teams) == 0 {
			teams = SampleTeams()
			resp.SampleTeams = true
		}
	}

	resp.Profiles = FilterProfiles(profiles, req.Query)
	resp.Teams = FilterTeams(teams, req.Query)
	return resp, nil
}

// FilterProfiles keeps profiles whose name, role or any skill contains q,
// ignoring case. An empty q keeps everything.
func FilterProfiles(profiles []*domain.Profile, q string) []*domain.Profile {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]*domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		if q == "" || contains(p.FullName, q) || contains(p.Role, q) || anyContains(p.Skills, q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterTeams keeps teams whose name, description or industry contains q.
func FilterTeams(teams []*domain.Team, q string) []*domain.Team {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]*domain.Team, 0, len(teams))
	for _, t := range teams {
		if q == "" || contains(t.Name, q) || contains(t.Description, q) || contains(t.Industry, q) {
			out = append(out, t)
		}
	}
	return out
}

func contains(s, lowerQ string) bool {
	return strings.Contains(strings.ToLower(s), lowerQ)
}

func anyContains(list []string, lowerQ string) bool {
	for _, s := range list {
		if contains(s, lowerQ) {
			return true
		}
	}
	return false
}
