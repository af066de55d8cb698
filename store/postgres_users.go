package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skill-exchange/models"
)

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)",
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return translateWriteError("insert user", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return s.findOne(ctx, "SELECT id, name, email, password_hash, created_at FROM users WHERE lower(email) = lower($1)", email)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	return s.findOne(ctx, "SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1", id)
}

func (s *PostgresUserStore) findOne(ctx context.Context, query, arg string) (models.User, bool, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("find user: %w", err)
	}
	return u, true, nil
}
