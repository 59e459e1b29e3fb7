package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TeamType string

const (
	TeamTypeStartup     TeamType = "startup"
	TeamTypeCompetition TeamType = "competition"
)

func (t TeamType) Valid() bool {
	return t == TeamTypeStartup || t == TeamTypeCompetition
}

// Team is read by everyone and written only by its founder.
type Team struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	FounderID     uuid.UUID      `json:"founder_id" db:"founder_id"`
	Name          string         `json:"name" db:"name"`
	Description   string         `json:"description" db:"description"`
	Stage         string         `json:"stage" db:"stage"`
	Industry      string         `json:"industry" db:"industry"`
	Location      string         `json:"location" db:"location"`
	LookingFor    string         `json:"looking_for" db:"looking_for"`
	TeamSize      int            `json:"team_size" db:"team_size"`
	WebsiteURL    string         `json:"website_url" db:"website_url"`
	PitchDeckURL  string         `json:"pitch_deck_url" db:"pitch_deck_url"`
	OpenRoles     pq.StringArray `json:"open_roles" db:"open_roles"`
	EquityOffered bool           `json:"equity_offered" db:"equity_offered"`
	Type          TeamType       `json:"type" db:"type"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

type TeamDetail struct {
	*Team
	Founder *ProfileSummary `json:"founder,omitempty"`
}
