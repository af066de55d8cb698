package db

import (
	"context"
	"database/sql"
	"fmt"

	"skill-exchange/config"
	"skill-exchange/logging"

	_ "github.com/lib/pq" // Postgres driver
)

var (
	DB     *sql.DB
	openDB = sql.Open
)

func Connect(cfg config.DatabaseConfig) error {
	if cfg.Engine != "postgres" {
		return fmt.Errorf("unsupported database engine: %s", cfg.Engine)
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Name, cfg.SSLMode)

	var err error
	DB, err = openDB("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to the database: %w", err)
	}

	logging.Logger().Info("Successfully connected to the Postgres database")
	return nil
}

// schema is applied on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email))`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		contact TEXT NOT NULL CHECK (contact ~ '^[0-9]{10}$'),
		skills_offered TEXT[] NOT NULL DEFAULT '{}',
		skills_wanted TEXT[] NOT NULL DEFAULT '{}',
		native_language TEXT NOT NULL DEFAULT '',
		learning_languages TEXT[] NOT NULL DEFAULT '{}',
		tutoring_subjects TEXT[] NOT NULL DEFAULT '{}',
		tutoring_needs TEXT[] NOT NULL DEFAULT '{}',
		bio TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS profiles_email_key ON profiles (lower(email))`,
}

// Migrate creates the users and profiles tables when missing.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, statement := range schema {
		if _, err := conn.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
