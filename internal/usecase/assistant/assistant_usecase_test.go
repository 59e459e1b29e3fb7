package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/infrastructure/llm"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	turns []domain.ChatTurn
	calls int
	done  func()
}

func (f *fakeCompleter) Complete(_ context.Context, turns []domain.ChatTurn) (string, error) {
	f.calls++
	f.turns = turns
	if f.done != nil {
		f.done()
	}
	return f.reply, f.err
}

type fakeProfiles struct {
	repository.ProfileRepository
	profile *domain.Profile
	err     error
}

func (f *fakeProfiles) GetByID(context.Context, uuid.UUID) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return f.profile, nil
}

type fakeAIMessages struct {
	recent   []*domain.AIMessage
	listErr  error
	saved    []*domain.AIMessage
	saveErr  error
	saveCtx  error
	lastList int
}

func (f *fakeAIMessages) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]*domain.AIMessage, error) {
	f.lastList = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.AIMessage, len(f.recent))
	copy(out, f.recent)
	return out, nil
}

func (f *fakeAIMessages) CreateBatch(ctx context.Context, msgs []*domain.AIMessage) error {
	f.saveCtx = ctx.Err()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, msgs...)
	return nil
}

func TestChatPersonalisesFromProfileAndHistory(t *testing.T) {
	hours := 20
	completer := &fakeCompleter{reply: "Welcome back!"}
	profiles := &fakeProfiles{profile: &domain.Profile{
		FullName:     "Ada",
		Skills:       pq.StringArray{"Go", "React"},
		Bio:          "I build developer tools",
		UserType:     domain.UserTypeCompetition,
		HoursPerWeek: &hours,
	}}
	ai := &fakeAIMessages{recent: []*domain.AIMessage{
		{Role: domain.RoleAssistant, Content: "second"},
		{Role: domain.RoleUser, Content: "first"},
	}}
	uc := NewAssistantUseCase(completer, profiles, ai, zerolog.Nop())
	userID := uuid.New()

	resp, err := uc.Chat(context.Background(), &userID, "find me a teammate")
	require.NoError(t, err)
	assert.Equal(t, "Welcome back!", resp.Reply)
	assert.Equal(t, 10, ai.lastList)

	require.Len(t, completer.turns, 4)
	system := completer.turns[0]
	assert.Equal(t, domain.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "Go, React")
	assert.Contains(t, system.Content, "I build developer tools")
	assert.Contains(t, system.Content, "hackathon teammates")
	assert.Contains(t, system.Content, "Hours per week: 20")
	assert.NotContains(t, system.Content, "not logged in")

	assert.Equal(t, "first", completer.turns[1].Content)
	assert.Equal(t, "second", completer.turns[2].Content)
	assert.Equal(t, domain.ChatTurn{Role: domain.RoleUser, Content: "find me a teammate"}, completer.turns[3])

	require.Len(t, ai.saved, 2)
	assert.Equal(t, domain.RoleUser, ai.saved[0].Role)
	assert.Equal(t, "find me a teammate", ai.saved[0].Content)
	assert.Equal(t, domain.RoleAssistant, ai.saved[1].Role)
	assert.Equal(t, "Welcome back!", ai.saved[1].Content)
	assert.True(t, ai.saved[1].CreatedAt.After(ai.saved[0].CreatedAt))
	assert.Equal(t, userID, ai.saved[0].UserID)
}

func TestChatAnonymous(t *testing.T) {
	completer := &fakeCompleter{reply: "Hello!"}
	ai := &fakeAIMessages{}
	uc := NewAssistantUseCase(completer, &fakeProfiles{}, ai, zerolog.Nop())

	resp, err := uc.Chat(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Reply)

	require.Len(t, completer.turns, 2)
	assert.Contains(t, completer.turns[0].Content, "not logged in or has no profile yet")
	assert.NotContains(t, completer.turns[0].Content, "User Profile:")
	assert.Empty(t, ai.saved)
}

func TestChatLoadFailuresDegradeToAnonymousContext(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	ai := &fakeAIMessages{listErr: errors.New("timeout")}
	uc := NewAssistantUseCase(completer, &fakeProfiles{err: errors.New("timeout")}, ai, zerolog.Nop())
	userID := uuid.New()

	_, err := uc.Chat(context.Background(), &userID, "hi")
	require.NoError(t, err)
	require.Len(t, completer.turns, 2)
	assert.Contains(t, completer.turns[0].Content, "not logged in")
	assert.Len(t, ai.saved, 2)
}

func TestChatFallbackReply(t *testing.T) {
	uc := NewAssistantUseCase(&fakeCompleter{reply: "  "}, &fakeProfiles{}, &fakeAIMessages{}, zerolog.Nop())

	resp, err := uc.Chat(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, resp.Reply)
}

func TestChatErrors(t *testing.T) {
	uc := NewAssistantUseCase(&fakeCompleter{}, &fakeProfiles{}, &fakeAIMessages{}, zerolog.Nop())
	_, err := uc.Chat(context.Background(), nil, "")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	uc = NewAssistantUseCase(nil, &fakeProfiles{}, &fakeAIMessages{}, zerolog.Nop())
	_, err = uc.Chat(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	ai := &fakeAIMessages{}
	completer := &fakeCompleter{err: llm.ErrRateLimited}
	uc = NewAssistantUseCase(completer, &fakeProfiles{}, ai, zerolog.Nop())
	userID := uuid.New()
	_, err = uc.Chat(context.Background(), &userID, "hi")
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.Empty(t, ai.saved)
}

func TestChatSaveFailureStillReplies(t *testing.T) {
	ai := &fakeAIMessages{saveErr: errors.New("insert failed")}
	uc := NewAssistantUseCase(&fakeCompleter{reply: "hey"}, &fakeProfiles{}, ai, zerolog.Nop())
	userID := uuid.New()

	resp, err := uc.Chat(context.Background(), &userID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hey", resp.Reply)
}

func TestChatSavesAfterCallerDisconnects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ai := &fakeAIMessages{}
	uc := NewAssistantUseCase(&fakeCompleter{reply: "hey", done: cancel}, &fakeProfiles{}, ai, zerolog.Nop())
	userID := uuid.New()

	resp, err := uc.Chat(ctx, &userID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hey", resp.Reply)
	require.Len(t, ai.saved, 2)
	assert.NoError(t, ai.saveCtx)
}

func TestHistoryIsChronological(t *testing.T) {
	now := time.Now()
	ai := &fakeAIMessages{recent: []*domain.AIMessage{
		{Content: "newest", CreatedAt: now},
		{Content: "oldest", CreatedAt: now.Add(-time.Minute)},
	}}
	uc := NewAssistantUseCase(nil, &fakeProfiles{}, ai, zerolog.Nop())

	rows, err := uc.History(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "oldest", rows[0].Content)
	assert.Equal(t, 50, ai.lastList)
}

func TestProfileSummaryPlaceholders(t *testing.T) {
	summary := ProfileSummary(&domain.Profile{})
	assert.Contains(t, summary, "- Name: Unknown")
	assert.Contains(t, summary, "- Role: Not specified")
	assert.Contains(t, summary, "- Skills: Not specified")
	assert.Contains(t, summary, "(looking for: both)")
	assert.Contains(t, summary, "- Hours per week: Not specified")

	summary = ProfileSummary(&domain.Profile{UserType: domain.UserTypeStartup})
	assert.Contains(t, summary, "- User Type: startup (looking for: co-founders)")
}
