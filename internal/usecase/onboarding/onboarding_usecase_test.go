package onboarding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	repository.ProfileRepository
	profile    *domain.Profile
	education  []*domain.Education
	employment []*domain.Employment
}

func (f *fakeProfiles) GetByID(context.Context, uuid.UUID) (*domain.Profile, error) {
	if f.profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfiles) ListEducation(context.Context, uuid.UUID) ([]*domain.Education, error) {
	return f.education, nil
}

func (f *fakeProfiles) ListEmployment(context.Context, uuid.UUID) ([]*domain.Employment, error) {
	return f.employment, nil
}

type savedProgress struct {
	draft     domain.OnboardingDraft
	step      int
	completed bool
}

type fakeOnboarding struct {
	saves []savedProgress
	err   error
}

func (f *fakeOnboarding) SaveProgress(_ context.Context, _ uuid.UUID, d *domain.OnboardingDraft, step int, completed bool) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, savedProgress{draft: *d, step: step, completed: completed})
	return nil
}

type memState struct {
	mu     sync.Mutex
	states map[uuid.UUID]repository.OnboardingState
	locks  map[uuid.UUID]bool
}

func newMemState() *memState {
	return &memState{states: map[uuid.UUID]repository.OnboardingState{}, locks: map[uuid.UUID]bool{}}
}

func (m *memState) Get(_ context.Context, id uuid.UUID) (*repository.OnboardingState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return &s, nil
}

func (m *memState) Put(_ context.Context, id uuid.UUID, s *repository.OnboardingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = *s
	return nil
}

func (m *memState) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}

func (m *memState) AcquireSaveLock(_ context.Context, id uuid.UUID, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[id] {
		return false, nil
	}
	m.locks[id] = true
	return true, nil
}

func (m *memState) ReleaseSaveLock(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
	return nil
}

func newUseCase(profiles *fakeProfiles, saves *fakeOnboarding, state *memState) *OnboardingUseCase {
	return NewOnboardingUseCase(profiles, saves, state, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestInitialStateForNewUser(t *testing.T) {
	uc := newUseCase(&fakeProfiles{}, &fakeOnboarding{}, newMemState())

	got, err := uc.GetState(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStep)
	assert.Equal(t, 7, got.TotalSteps)
	assert.False(t, got.Completed)
	assert.Equal(t, domain.NoPreference, got.Draft.IdeaPreference)
	assert.Equal(t, 50, got.Draft.LocationDistance)
	assert.Equal(t, 18, got.Draft.AgeMin)
	assert.Equal(t, 65, got.Draft.AgeMax)
	assert.Empty(t, got.Draft.Education)
}

func TestInitialStateResumesFromProfile(t *testing.T) {
	year := 2020
	profiles := &fakeProfiles{
		profile: &domain.Profile{
			FullName:             "Ada",
			Bio:                  "builder",
			OnboardingStep:       4,
			CofounderPreferences: domain.CofounderPreferences{LocationDistance: 120},
		},
		education: []*domain.Education{{School: "MIT", GraduationYear: &year}},
	}
	uc := newUseCase(profiles, &fakeOnboarding{}, newMemState())

	got, err := uc.GetState(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentStep)
	assert.True(t, got.Optional)
	assert.Equal(t, "Ada", got.Draft.FullName)
	assert.Equal(t, 120, got.Draft.LocationDistance)
	assert.Equal(t, domain.NoPreference, got.Draft.AgePreference)
	require.Len(t, got.Draft.Education, 1)
	assert.Equal(t, "MIT", got.Draft.Education[0].School)
}

func TestNextPersistsWholeDraftAndAdvances(t *testing.T) {
	saves := &fakeOnboarding{}
	uc := newUseCase(&fakeProfiles{}, saves, newMemState())
	ctx := context.Background()
	userID := uuid.New()

	got, err := uc.Navigate(ctx, userID, ActionNext, &domain.OnboardingDraftPatch{FullName: strPtr("Ada"), Location: strPtr("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStep)
	require.Len(t, saves.saves, 1)
	assert.Equal(t, 2, saves.saves[0].step)
	assert.False(t, saves.saves[0].completed)
	assert.Equal(t, "Ada", saves.saves[0].draft.FullName)
	assert.Equal(t, "Berlin", saves.saves[0].draft.Location)

	again, err := uc.GetState(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.CurrentStep)
	assert.Equal(t, "Ada", again.Draft.FullName)
}

func TestSaveAfterProfileEditKeepsEdit(t *testing.T) {
	profiles := &fakeProfiles{profile: &domain.Profile{FullName: "Ada", Bio: "old bio", OnboardingStep: 2}}
	saves := &fakeOnboarding{}
	state := newMemState()
	uc := newUseCase(profiles, saves, state)
	ctx := context.Background()
	userID := uuid.New()

	_, err := uc.GetState(ctx, userID)
	require.NoError(t, err)

	// Profile page edit: row updated, cached draft dropped.
	profiles.profile.Bio = "edited via profile page"
	require.NoError(t, state.Delete(ctx, userID))

	_, err = uc.Navigate(ctx, userID, ActionNext, nil)
	require.NoError(t, err)
	require.Len(t, saves.saves, 1)
	assert.Equal(t, "edited via profile page", saves.saves[0].draft.Bio)
	assert.Equal(t, 3, saves.saves[0].step)
}

func TestBackNeverPersistsAndFloorsAtOne(t *testing.T) {
	saves := &fakeOnboarding{}
	uc := newUseCase(&fakeProfiles{}, saves, newMemState())
	ctx := context.Background()
	userID := uuid.New()

	got, err := uc.Navigate(ctx, userID, ActionBack, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStep)

	for i := 0; i < 3; i++ {
		_, err = uc.Navigate(ctx, userID, ActionNext, nil)
		require.NoError(t, err)
	}
	got, err = uc.Navigate(ctx, userID, ActionBack, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStep)
	assert.Len(t, saves.saves, 3)
}

func TestLastStepCompletesAndStays(t *testing.T) {
	saves := &fakeOnboarding{}
	state := newMemState()
	userID := uuid.New()
	require.NoError(t, state.Put(context.Background(), userID, &repository.OnboardingState{Step: 7, Draft: domain.NewOnboardingDraft()}))
	uc := newUseCase(&fakeProfiles{}, saves, state)

	got, err := uc.Navigate(context.Background(), userID, ActionNext, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, got.CurrentStep)
	assert.True(t, got.Completed)
	require.Len(t, saves.saves, 1)
	assert.Equal(t, 7, saves.saves[0].step)
	assert.True(t, saves.saves[0].completed)
}

func TestSkip(t *testing.T) {
	saves := &fakeOnboarding{}
	state := newMemState()
	userID := uuid.New()
	draft := domain.NewOnboardingDraft()
	draft.Gender = "female"
	require.NoError(t, state.Put(context.Background(), userID, &repository.OnboardingState{Step: 2, Draft: draft}))
	uc := newUseCase(&fakeProfiles{}, saves, state)
	ctx := context.Background()

	_, err := uc.Navigate(ctx, userID, ActionSkip, nil)
	assert.ErrorIs(t, err, domain.ErrSkipNotAllowed)
	assert.Empty(t, saves.saves)

	require.NoError(t, state.Put(ctx, userID, &repository.OnboardingState{Step: 4, Draft: draft}))
	got, err := uc.Navigate(ctx, userID, ActionSkip, &domain.OnboardingDraftPatch{Gender: strPtr("male")})
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentStep)
	require.Len(t, saves.saves, 1)
	assert.Equal(t, 5, saves.saves[0].step)
	assert.Equal(t, "female", saves.saves[0].draft.Gender)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	saves := &fakeOnboarding{err: errors.New("connection refused")}
	state := newMemState()
	userID := uuid.New()
	require.NoError(t, state.Put(context.Background(), userID, &repository.OnboardingState{Step: 3, Draft: domain.NewOnboardingDraft()}))
	uc := newUseCase(&fakeProfiles{}, saves, state)

	_, err := uc.Navigate(context.Background(), userID, ActionNext, &domain.OnboardingDraftPatch{FullName: strPtr("Ada")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	got, err := state.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Step)
	assert.Empty(t, got.Draft.FullName)
	assert.False(t, state.locks[userID])
}

func TestConcurrentSaveRejected(t *testing.T) {
	saves := &fakeOnboarding{}
	state := newMemState()
	userID := uuid.New()
	state.locks[userID] = true
	uc := newUseCase(&fakeProfiles{}, saves, state)

	_, err := uc.Navigate(context.Background(), userID, ActionNext, nil)
	assert.ErrorIs(t, err, domain.ErrSaveInProgress)
	assert.Empty(t, saves.saves)
}

func TestUpdateDraftValidates(t *testing.T) {
	uc := newUseCase(&fakeProfiles{}, &fakeOnboarding{}, newMemState())
	ctx := context.Background()
	userID := uuid.New()

	_, err := uc.UpdateDraft(ctx, userID, &domain.OnboardingDraftPatch{LinkedinURL: strPtr("not a url")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	minAge, maxAge := 40, 30
	_, err = uc.UpdateDraft(ctx, userID, &domain.OnboardingDraftPatch{CofounderAgeMin: &minAge, CofounderAgeMax: &maxAge})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.UpdateDraft(ctx, userID, &domain.OnboardingDraftPatch{
		Education: &[]domain.EducationDraft{{School: "ETH"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStep)
	require.Len(t, got.Draft.Education, 1)
	assert.Equal(t, "ETH", got.Draft.Education[0].School)
}
