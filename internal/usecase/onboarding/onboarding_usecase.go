package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const saveLockTTL = 30 * time.Second

type OnboardingUseCase struct {
	profileRepo    repository.ProfileRepository
	onboardingRepo repository.OnboardingRepository
	stateRepo      repository.OnboardingStateRepository
	log            zerolog.Logger
}

func NewOnboardingUseCase(
	profileRepo repository.ProfileRepository,
	onboardingRepo repository.OnboardingRepository,
	stateRepo repository.OnboardingStateRepository,
	log zerolog.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		profileRepo:    profileRepo,
		onboardingRepo: onboardingRepo,
		stateRepo:      stateRepo,
		log:            log.With().Str("component", "onboarding").Logger(),
	}
}

// StateResponse is what every onboarding endpoint returns.
type StateResponse struct {
	CurrentStep int                    `json:"current_step"`
	TotalSteps  int                    `json:"total_steps"`
	Optional    bool                   `json:"optional"`
	Completed   bool                   `json:"completed"`
	Draft       domain.OnboardingDraft `json:"draft"`
}

func newStateResponse(state *repository.OnboardingState) *StateResponse {
	return &StateResponse{
		CurrentStep: state.Step,
		TotalSteps:  domain.OnboardingTotalSteps,
		Optional:    domain.IsOptionalStep(state.Step),
		Completed:   state.Completed,
		Draft:       state.Draft,
	}
}

// GetState returns the wizard as the user left it, rebuilding it from the
// stored profile when no draft is cached.
func (uc *OnboardingUseCase) GetState(ctx context.Context, userID uuid.UUID) (*StateResponse, error) {
	state, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	uc.cache(ctx, userID, state)
	return newStateResponse(state), nil
}

// UpdateDraft merges patch into the draft without persisting the profile.
func (uc *OnboardingUseCase) UpdateDraft(ctx context.Context, userID uuid.UUID, patch *domain.OnboardingDraftPatch) (*StateResponse, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	state, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := state.Draft.Apply(patch); err != nil {
		return nil, err
	}
	if err := uc.stateRepo.Put(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	return newStateResponse(state), nil
}

// Navigate performs next, back or skip. For next a patch with the current
// step's fields may be supplied and is applied before saving; skip keeps
// whatever the draft already holds. A failed save leaves the state as it was.
func (uc *OnboardingUseCase) Navigate(ctx context.Context, userID uuid.UUID, action Action, patch *domain.OnboardingDraftPatch) (*StateResponse, error) {
	state, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	tr, err := Plan(state.Step, action)
	if err != nil {
		return nil, err
	}

	draft := state.Draft
	if patch != nil && action == ActionNext {
		if err := patch.Validate(); err != nil {
			return nil, err
		}
		if err := draft.Apply(patch); err != nil {
			return nil, err
		}
	}

	if tr.Persist {
		if err := uc.save(ctx, userID, &draft, tr); err != nil {
			return nil, err
		}
	}

	state.Step = tr.NextStep
	state.Completed = state.Completed || tr.Completed
	state.Draft = draft
	uc.cache(ctx, userID, state)

	return newStateResponse(state), nil
}

func (uc *OnboardingUseCase) save(ctx context.Context, userID uuid.UUID, draft *domain.OnboardingDraft, tr Transition) error {
	ok, err := uc.stateRepo.AcquireSaveLock(ctx, userID, saveLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire save lock: %w", err)
	}
	if !ok {
		return domain.ErrSaveInProgress
	}
	defer func() {
		if err := uc.stateRepo.ReleaseSaveLock(context.WithoutCancel(ctx), userID); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to release save lock")
		}
	}()

	if err := uc.onboardingRepo.SaveProgress(ctx, userID, draft, tr.PersistStep, tr.Completed); err != nil {
		uc.log.Error().Err(err).
			Str("user_id", userID.String()).
			Int("step", tr.PersistStep).
			Msg("failed to save onboarding progress")
		return err
	}
	return nil
}

func (uc *OnboardingUseCase) load(ctx context.Context, userID uuid.UUID) (*repository.OnboardingState, error) {
	state, err := uc.stateRepo.Get(ctx, userID)
	if err == nil {
		state.Step = clampStep(state.Step)
		return state, nil
	}
	if !errors.Is(err, domain.ErrDraftNotFound) {
		uc.log.Warn().Err(err).Str("user_id", userID.String()).Msg("draft cache unavailable, rebuilding from profile")
	}
	return uc.rebuild(ctx, userID)
}

func (uc *OnboardingUseCase) rebuild(ctx context.Context, userID uuid.UUID) (*repository.OnboardingState, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	state := &repository.OnboardingState{Step: domain.OnboardingFirstStep}
	if profile == nil {
		state.Draft = domain.NewOnboardingDraft()
		return state, nil
	}

	education, err := uc.profileRepo.ListEducation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load education: %w", err)
	}
	employment, err := uc.profileRepo.ListEmployment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employment: %w", err)
	}

	if profile.OnboardingStep > 0 {
		state.Step = clampStep(profile.OnboardingStep)
	}
	state.Completed = profile.OnboardingCompleted
	state.Draft = domain.DraftFromProfile(profile, education, employment)
	return state, nil
}

// cache stores the state; Postgres remains the source of truth so a failure
// is only logged.
func (uc *OnboardingUseCase) cache(ctx context.Context, userID uuid.UUID, state *repository.OnboardingState) {
	if err := uc.stateRepo.Put(ctx, userID, state); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to cache onboarding state")
	}
}
