package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	// CreateWithProfile inserts the user and its empty profile atomically.
	CreateWithProfile(ctx context.Context, user *domain.User, fullName string) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// ProfileFilter narrows a profile listing by audience. An empty set of
// UserTypes means no filter.
type ProfileFilter struct {
	UserTypes []domain.UserType
	Limit     int
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*domain.ProfileSummary, error)
	Update(ctx context.Context, profile *domain.Profile) error
	List(ctx context.Context, filter ProfileFilter) ([]*domain.Profile, error)
	ListEducation(ctx context.Context, userID uuid.UUID) ([]*domain.Education, error)
	ListEmployment(ctx context.Context, userID uuid.UUID) ([]*domain.Employment, error)
}

type OnboardingRepository interface {
	// SaveProgress writes every draft field onto the profile, tags it with
	// step/completed and replaces the education and employment rows.
	SaveProgress(ctx context.Context, userID uuid.UUID, draft *domain.OnboardingDraft, step int, completed bool) error
}

type TeamFilter struct {
	Type  domain.TeamType
	Limit int
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	List(ctx context.Context, filter TeamFilter) ([]*domain.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*domain.Message, error)
	ListThread(ctx context.Context, threadID, participantID uuid.UUID) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	Delete(ctx context.Context, id, recipientID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
}

type AIMessageRepository interface {
	// ListRecent returns the newest limit turns, newest first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AIMessage, error)
	CreateBatch(ctx context.Context, msgs []*domain.AIMessage) error
}

type SessionRepository interface {
	Create(ctx context.Context, tokenHash string, session *domain.Session) error
	Get(ctx context.Context, tokenHash string) (*domain.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// OnboardingState is the in-progress wizard kept between requests.
type OnboardingState struct {
	Step      int                    `json:"step"`
	Completed bool                   `json:"completed"`
	Draft     domain.OnboardingDraft `json:"draft"`
}

type OnboardingStateRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*OnboardingState, error)
	Put(ctx context.Context, userID uuid.UUID, state *OnboardingState) error
	// Delete drops the cached state; the next load rebuilds it from the profile.
	Delete(ctx context.Context, userID uuid.UUID) error
	// AcquireSaveLock returns false when another save holds the lock.
	AcquireSaveLock(ctx context.Context, userID uuid.UUID, ttl time.Duration) (bool, error)
	ReleaseSaveLock(ctx context.Context, userID uuid.UUID) error
}

// MessageEventBus is the realtime change feed for the messages table.
type MessageEventBus interface {
	Publish(ctx context.Context, evt domain.MessageEvent) error
	// Subscribe delivers events for one recipient until ctx is done or the
	// returned close func is called.
	Subscribe(ctx context.Context, recipientID uuid.UUID) (<-chan domain.MessageEvent, func() error, error)
}
