package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-exchange/logging"
	"skill-exchange/models"
	"skill-exchange/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	newID = uuid.NewString
	now   = func() time.Time { return time.Now().UTC() }
)

// ProfileService enforces the profile invariants on top of a ProfileStore:
// one profile per user, one profile per email, owner-only writes.
type ProfileService struct {
	profiles store.ProfileStore
}

func NewProfileService(profiles store.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *ProfileService) FindByEmail(ctx context.Context, email string) (models.Profile, bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return models.Profile{}, false, nil
	}
	return s.profiles.FindByEmail(ctx, email)
}

func (s *ProfileService) FindByOwner(ctx context.Context, userID string) (models.Profile, bool, error) {
	return s.profiles.FindByOwner(ctx, userID)
}

func (s *ProfileService) Create(ctx context.Context, userID string, input models.ProfileInput) (models.Profile, error) {
	input = normalizeProfileInput(input)
	if err := validateProfileInput(input); err != nil {
		return models.Profile{}, err
	}

	if _, found, err := s.profiles.FindByOwner(ctx, userID); err != nil {
		return models.Profile{}, err
	} else if found {
		return models.Profile{}, fmt.Errorf("user already has a profile: %w", ErrConflict)
	}
	if _, found, err := s.profiles.FindByEmail(ctx, input.Email); err != nil {
		return models.Profile{}, err
	} else if found {
		return models.Profile{}, fmt.Errorf("profile with this email already exists: %w", ErrConflict)
	}

	createdAt := now()
	profile := applyInput(models.Profile{
		ID:        newID(),
		UserID:    userID,
		CreatedAt: createdAt,
	}, input)
	profile.UpdatedAt = createdAt

	if err := s.profiles.Insert(ctx, profile); err != nil {
		return models.Profile{}, translateStoreError(err)
	}
	logging.FromContext(ctx).Info("created profile", zap.String("profile_id", profile.ID), zap.String("email", profile.Email))
	return profile, nil
}

// Replace overwrites every mutable field of the profile id owned by userID.
func (s *ProfileService) Replace(ctx context.Context, userID, id string, input models.ProfileInput) (models.Profile, error) {
	existing, err := s.owned(ctx, userID, id)
	if err != nil {
		return models.Profile{}, err
	}

	input = normalizeProfileInput(input)
	if err := validateProfileInput(input); err != nil {
		return models.Profile{}, err
	}

	if other, found, err := s.profiles.FindByEmail(ctx, input.Email); err != nil {
		return models.Profile{}, err
	} else if found && other.ID != existing.ID {
		return models.Profile{}, fmt.Errorf("email already exists: %w", ErrConflict)
	}

	updated := applyInput(existing, input)
	updated.UpdatedAt = now()

	found, err := s.profiles.Update(ctx, updated)
	if err != nil {
		return models.Profile{}, translateStoreError(err)
	}
	if !found {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	logging.FromContext(ctx).Info("updated profile", zap.String("profile_id", updated.ID), zap.String("email", updated.Email))
	return updated, nil
}

func (s *ProfileService) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	found, err := s.profiles.Delete(ctx, existing.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	logging.FromContext(ctx).Info("deleted profile", zap.String("profile_id", existing.ID), zap.String("email", existing.Email))
	return nil
}

func (s *ProfileService) owned(ctx context.Context, userID, id string) (models.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	profile, found, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}
	if !found {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if profile.UserID != userID {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, ErrForbidden)
	}
	return profile, nil
}

func applyInput(p models.Profile, in models.ProfileInput) models.Profile {
	p.Name = in.Name
	p.Email = in.Email
	p.Contact = in.Contact
	p.SkillsOffered = in.SkillsOffered
	p.SkillsWanted = in.SkillsWanted
	p.NativeLanguage = in.NativeLanguage
	p.LearningLanguages = in.LearningLanguages
	p.TutoringSubjects = in.TutoringSubjects
	p.TutoringNeeds = in.TutoringNeeds
	p.Bio = in.Bio
	return p
}

func translateStoreError(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return fmt.Errorf("%v: %w", err, ErrConflict)
	}
	return err
}
