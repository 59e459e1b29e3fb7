package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type onboardingStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOnboardingStateRepository(client *redis.Client, ttl time.Duration) repository.OnboardingStateRepository {
	return &onboardingStateRepository{client: client, ttl: ttl}
}

func stateKey(userID uuid.UUID) string {
	return "onboarding:state:" + userID.String()
}

func saveLockKey(userID uuid.UUID) string {
	return "onboarding:saving:" + userID.String()
}

func (r *onboardingStateRepository) Get(ctx context.Context, userID uuid.UUID) (*repository.OnboardingState, error) {
	data, err := r.client.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}
	var state repository.OnboardingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal onboarding state: %w", err)
	}
	return &state, nil
}

// Put refreshes the TTL on every write.
func (r *onboardingStateRepository) Put(ctx context.Context, userID uuid.UUID, state *repository.OnboardingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal onboarding state: %w", err)
	}
	return r.client.Set(ctx, stateKey(userID), data, r.ttl).Err()
}

func (r *onboardingStateRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, stateKey(userID)).Err()
}

func (r *onboardingStateRepository) AcquireSaveLock(ctx context.Context, userID uuid.UUID, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, saveLockKey(userID), 1, ttl).Result()
}

func (r *onboardingStateRepository) ReleaseSaveLock(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, saveLockKey(userID)).Err()
}
