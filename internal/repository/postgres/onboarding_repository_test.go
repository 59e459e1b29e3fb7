package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestSaveProgressReplacesHistoryInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)
	userID := uuid.New()

	draft := domain.NewOnboardingDraft()
	draft.FullName = "Ada"
	draft.Education = []domain.EducationDraft{{School: "MIT"}, {School: "ETH"}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM education").WithArgs(userID.String()).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO education").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM employment").WithArgs(userID.String()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveProgress(context.Background(), userID, &draft, 4, false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveProgressDeletesEvenWhenListsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)
	userID := uuid.New()
	draft := domain.NewOnboardingDraft()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM education").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM employment").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveProgress(context.Background(), userID, &draft, 7, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveProgressRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)
	userID := uuid.New()

	draft := domain.NewOnboardingDraft()
	draft.Employment = []domain.EmploymentDraft{{Employer: "Acme", StartDate: "2020-01-01", IsCurrent: true}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM education").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM employment").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO employment").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.SaveProgress(context.Background(), userID, &draft, 4, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveProgressUnknownProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)
	draft := domain.NewOnboardingDraft()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE profiles").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SaveProgress(context.Background(), uuid.New(), &draft, 2, false)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveProgressRejectsBadBirthdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOnboardingRepository(db)
	draft := domain.NewOnboardingDraft()
	draft.Birthdate = "31/12/1990"

	err := repo.SaveProgress(context.Background(), uuid.New(), &draft, 5, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}
