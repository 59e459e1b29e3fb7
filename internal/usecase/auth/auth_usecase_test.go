package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdugdh24/cofound-backend/internal/domain"
	redisrepo "github.com/gdugdh24/cofound-backend/internal/repository/redis"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memUsers struct {
	mu       sync.Mutex
	byEmail  map[string]*domain.User
	profiles map[uuid.UUID]string
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*domain.User{}, profiles: map[uuid.UUID]string{}}
}

func (m *memUsers) CreateWithProfile(_ context.Context, user *domain.User, fullName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	m.profiles[user.ID] = fullName
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestUseCase(t *testing.T) (*AuthUseCase, *memUsers) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := newMemUsers()
	return NewAuthUseCase(users, redisrepo.NewSessionRepository(client), testSecret, time.Hour), users
}

func TestSignUpCreatesProfileAndSession(t *testing.T) {
	uc, users := newTestUseCase(t)
	ctx := context.Background()

	resp, err := uc.SignUp(ctx, &SignUpRequest{Email: "Ada@Example.com", Password: "secret1", FullName: " Ada "})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, "Ada", users.profiles[resp.User.ID])

	userID, err := uc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	_, err = uc.SignUp(ctx, &SignUpRequest{Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignIn(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.SignUp(ctx, &SignUpRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := uc.SignIn(ctx, &SignInRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = uc.SignIn(ctx, &SignInRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.SignIn(ctx, &SignInRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignOutInvalidatesToken(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	resp, err := uc.SignUp(ctx, &SignUpRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, uc.SignOut(ctx, resp.Token))
	_, err = uc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	uc, _ := newTestUseCase(t)
	other := NewAuthUseCase(newMemUsers(), uc.sessionRepo, "another-secret-another-secret-xx", time.Hour)

	resp, err := other.SignUp(context.Background(), &SignUpRequest{Email: "eve@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.VerifyToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.VerifyToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
