package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")

	ErrProfileNotFound = errors.New("profile not found")
	ErrTeamNotFound    = errors.New("team not found")

	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyMessage    = errors.New("message body is empty")

	ErrSkipNotAllowed = errors.New("step cannot be skipped")
	ErrSaveInProgress = errors.New("onboarding save already in progress")
	ErrDraftNotFound  = errors.New("onboarding draft not found")
)
