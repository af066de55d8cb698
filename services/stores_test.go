package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"skill-exchange/models"
	"skill-exchange/store"
)

type memProfileStore struct {
	mu       sync.Mutex
	profiles []models.Profile
	err      error
}

func (s *memProfileStore) List(context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Profile(nil), s.profiles...), nil
}

func (s *memProfileStore) find(match func(models.Profile) bool) (models.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.Profile{}, false, s.err
	}
	for _, p := range s.profiles {
		if match(p) {
			return p, true, nil
		}
	}
	return models.Profile{}, false, nil
}

func (s *memProfileStore) FindByID(_ context.Context, id string) (models.Profile, bool, error) {
	return s.find(func(p models.Profile) bool { return p.ID == id })
}

func (s *memProfileStore) FindByEmail(_ context.Context, email string) (models.Profile, bool, error) {
	return s.find(func(p models.Profile) bool { return strings.EqualFold(p.Email, email) })
}

func (s *memProfileStore) FindByOwner(_ context.Context, userID string) (models.Profile, bool, error) {
	return s.find(func(p models.Profile) bool { return p.UserID == userID })
}

func (s *memProfileStore) Insert(_ context.Context, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.UserID == profile.UserID || strings.EqualFold(p.Email, profile.Email) {
			return store.ErrDuplicate
		}
	}
	s.profiles = append(s.profiles, profile)
	return nil
}

func (s *memProfileStore) Update(_ context.Context, profile models.Profile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.ID == profile.ID {
			s.profiles[i] = profile
			return true, nil
		}
	}
	return false, nil
}

func (s *memProfileStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memUserStore struct {
	mu    sync.Mutex
	users []models.User
	err   error
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrDuplicate
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.User{}, false, s.err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *memUserStore) FindByID(_ context.Context, id string) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: make(map[string]time.Duration)}
}

func (s *memRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = ttl
	return nil
}

func (s *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func (s *memRevocations) Close() error {
	return nil
}

var errBoom = errors.New("boom")

func validInput(name, email string) models.ProfileInput {
	return models.ProfileInput{
		Name:    name,
		Email:   email,
		Contact: "9876543210",
		Bio:     "hello",
	}
}
