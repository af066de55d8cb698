package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skill-exchange/models"

	"github.com/lib/pq"
)

const profileColumns = `id, user_id, name, email, contact, skills_offered, skills_wanted, native_language,
	learning_languages, tutoring_subjects, tutoring_needs, bio, created_at, updated_at`

type PostgresProfileStore struct {
	db *sql.DB
}

func NewPostgresProfileStore(db *sql.DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

func (s *PostgresProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func (s *PostgresProfileStore) FindByID(ctx context.Context, id string) (models.Profile, bool, error) {
	return s.findOne(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
}

func (s *PostgresProfileStore) FindByEmail(ctx context.Context, email string) (models.Profile, bool, error) {
	return s.findOne(ctx, "SELECT "+profileColumns+" FROM profiles WHERE lower(email) = lower($1)", email)
}

func (s *PostgresProfileStore) FindByOwner(ctx context.Context, userID string) (models.Profile, bool, error) {
	return s.findOne(ctx, "SELECT "+profileColumns+" FROM profiles WHERE user_id = $1", userID)
}

func (s *PostgresProfileStore) Insert(ctx context.Context, p models.Profile) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.UserID, p.Name, p.Email, p.Contact,
		textArray(p.SkillsOffered), textArray(p.SkillsWanted), p.NativeLanguage,
		textArray(p.LearningLanguages), textArray(p.TutoringSubjects), textArray(p.TutoringNeeds),
		p.Bio, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return translateWriteError("insert profile", err)
	}
	return nil
}

// Update replaces every mutable column in one statement. The owner and
// creation time are left alone.
func (s *PostgresProfileStore) Update(ctx context.Context, p models.Profile) (bool, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE profiles SET name = $2, email = $3, contact = $4,
		skills_offered = $5, skills_wanted = $6, native_language = $7, learning_languages = $8,
		tutoring_subjects = $9, tutoring_needs = $10, bio = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Name, p.Email, p.Contact,
		textArray(p.SkillsOffered), textArray(p.SkillsWanted), p.NativeLanguage,
		textArray(p.LearningLanguages), textArray(p.TutoringSubjects), textArray(p.TutoringNeeds),
		p.Bio, p.UpdatedAt)
	if err != nil {
		return false, translateWriteError("update profile", err)
	}
	return affected(result)
}

func (s *PostgresProfileStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}
	return affected(result)
}

func (s *PostgresProfileStore) findOne(ctx context.Context, query string, arg string) (models.Profile, bool, error) {
	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, fmt.Errorf("find profile: %w", err)
	}
	return profile, true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Contact,
		(*pq.StringArray)(&p.SkillsOffered), (*pq.StringArray)(&p.SkillsWanted), &p.NativeLanguage,
		(*pq.StringArray)(&p.LearningLanguages), (*pq.StringArray)(&p.TutoringSubjects), (*pq.StringArray)(&p.TutoringNeeds),
		&p.Bio, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func textArray(items []string) pq.StringArray {
	if items == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(items)
}

func affected(result sql.Result) (bool, error) {
	count, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func translateWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
