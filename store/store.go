package store

import (
	"context"
	"errors"
	"time"

	"skill-exchange/models"
)

// ErrDuplicate is returned when a write collides with a unique email or owner.
var ErrDuplicate = errors.New("duplicate record")

type ProfileStore interface {
	List(ctx context.Context) ([]models.Profile, error)
	FindByID(ctx context.Context, id string) (models.Profile, bool, error)
	FindByEmail(ctx context.Context, email string) (models.Profile, bool, error)
	FindByOwner(ctx context.Context, userID string) (models.Profile, bool, error)
	Insert(ctx context.Context, profile models.Profile) error
	Update(ctx context.Context, profile models.Profile) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
	FindByID(ctx context.Context, id string) (models.User, bool, error)
}

// RevocationStore remembers revoked token ids until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}
