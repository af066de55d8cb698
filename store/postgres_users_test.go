package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"skill-exchange/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newUserStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPostgresUserStore(mockDB), mock
}

func TestUserStoreCreate(t *testing.T) {
	s, mock := newUserStore(t)
	user := models.User{ID: "u-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, s.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateDuplicate(t *testing.T) {
	s, mock := newUserStore(t)
	mock.ExpectExec("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

	err := s.Create(context.Background(), models.User{ID: "u-1"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserStoreCreateOtherError(t *testing.T) {
	s, mock := newUserStore(t)
	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db down"))

	err := s.Create(context.Background(), models.User{ID: "u-1"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestUserStoreFindByEmail(t *testing.T) {
	s, mock := newUserStore(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(email) = lower($1)")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow("u-1", "Ada", "ada@example.com", "hash", now))

	user, found, err := s.FindByEmail(context.Background(), "ada@example.com")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestUserStoreFindByIDMissing(t *testing.T) {
	s, mock := newUserStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("u-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

	_, found, err := s.FindByID(context.Background(), "u-9")
	assert.NoError(t, err)
	assert.False(t, found)
}
