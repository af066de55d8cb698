package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-exchange/models"
	"skill-exchange/store"

	"github.com/stretchr/testify/assert"
)

const (
	profileA       = "6f1c2b1e-3d4a-4c5b-9e8f-0a1b2c3d4e5f"
	profileB       = "7a2d3c4f-5e6b-4a7c-8d9e-1f2a3b4c5d6e"
	missingProfile = "00000000-0000-4000-8000-000000000000"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	originalNow := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = originalNow })
}

func sequentialIDs(t *testing.T, ids ...string) {
	t.Helper()
	originalNewID := newID
	next := 0
	newID = func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}
	t.Cleanup(func() { newID = originalNewID })
}

func TestProfileServiceCreateNormalizesInput(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(t, created)
	sequentialIDs(t, "profile-1")

	profiles := &memProfileStore{}
	service := NewProfileService(profiles)

	input := models.ProfileInput{
		Name:              "  Asha ",
		Email:             " Asha@Example.COM ",
		Contact:           " 9876543210 ",
		SkillsOffered:     models.StringList{" Go ", " ", ""},
		SkillsWanted:      models.StringList{"Photography"},
		NativeLanguage:    " Hindi ",
		LearningLanguages: models.StringList{"Telugu"},
		TutoringNeeds:     models.StringList{"Physics", "  "},
		Bio:               " hi ",
	}

	profile, err := service.Create(context.Background(), "user-1", input)
	assert.NoError(t, err)
	assert.Equal(t, "profile-1", profile.ID)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "asha@example.com", profile.Email)
	assert.Equal(t, "9876543210", profile.Contact)
	assert.Equal(t, []string{"Go"}, profile.SkillsOffered)
	assert.Equal(t, "Hindi", profile.NativeLanguage)
	assert.Equal(t, []string{"Physics"}, profile.TutoringNeeds)
	assert.Equal(t, []string{}, profile.TutoringSubjects)
	assert.Equal(t, "hi", profile.Bio)
	assert.Equal(t, created, profile.CreatedAt)
	assert.Equal(t, created, profile.UpdatedAt)

	stored, found, err := profiles.FindByID(context.Background(), "profile-1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, profile, stored)
}

func TestProfileServiceCreateValidation(t *testing.T) {
	service := NewProfileService(&memProfileStore{})

	cases := []struct {
		name  string
		input models.ProfileInput
		field string
	}{
		{name: "missing name", input: models.ProfileInput{Email: "a@b.co", Contact: "1234567890", Bio: "x"}, field: "name"},
		{name: "blank email", input: models.ProfileInput{Name: "A", Email: "  ", Contact: "1234567890", Bio: "x"}, field: "email"},
		{name: "missing contact", input: models.ProfileInput{Name: "A", Email: "a@b.co", Bio: "x"}, field: "contact"},
		{name: "missing bio", input: models.ProfileInput{Name: "A", Email: "a@b.co", Contact: "1234567890"}, field: "bio"},
		{name: "bad email", input: models.ProfileInput{Name: "A", Email: "a@b", Contact: "1234567890", Bio: "x"}, field: "email"},
		{name: "short contact", input: models.ProfileInput{Name: "A", Email: "a@b.co", Contact: "12345", Bio: "x"}, field: "contact"},
		{name: "letters in contact", input: models.ProfileInput{Name: "A", Email: "a@b.co", Contact: "12345abcde", Bio: "x"}, field: "contact"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "user-1", tc.input)
			var validationErr *ValidationError
			if assert.True(t, errors.As(err, &validationErr)) {
				assert.Equal(t, tc.field, validationErr.Field)
			}
		})
	}
}

func TestProfileServiceCreateConflicts(t *testing.T) {
	profiles := &memProfileStore{profiles: []models.Profile{
		{ID: profileA, UserID: "user-1", Email: "taken@example.com"},
	}}
	service := NewProfileService(profiles)

	_, err := service.Create(context.Background(), "user-1", validInput("A", "fresh@example.com"))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = service.Create(context.Background(), "user-2", validInput("B", "TAKEN@example.com"))
	assert.ErrorIs(t, err, ErrConflict)

	assert.Len(t, profiles.profiles, 1)
}

type racingProfileStore struct {
	memProfileStore
}

func (s *racingProfileStore) Insert(context.Context, models.Profile) error {
	return store.ErrDuplicate
}

func TestProfileServiceCreateMapsDuplicateToConflict(t *testing.T) {
	service := NewProfileService(&racingProfileStore{})

	_, err := service.Create(context.Background(), "user-1", validInput("A", "a@example.com"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProfileServiceCreateStoreError(t *testing.T) {
	service := NewProfileService(&memProfileStore{err: errBoom})

	_, err := service.Create(context.Background(), "user-1", validInput("A", "a@example.com"))
	assert.ErrorIs(t, err, errBoom)
}

func TestProfileServiceReplace(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	fixedClock(t, updated)

	profiles := &memProfileStore{profiles: []models.Profile{
		{ID: profileA, UserID: "user-1", Name: "A", Email: "a@example.com", SkillsOffered: []string{"Go"}, CreatedAt: created},
		{ID: profileB, UserID: "user-2", Name: "B", Email: "b@example.com", CreatedAt: created},
	}}
	service := NewProfileService(profiles)
	ctx := context.Background()

	_, err := service.Replace(ctx, "user-1", missingProfile, validInput("A", "a@example.com"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Replace(ctx, "user-1", profileB, validInput("B", "b@example.com"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.Replace(ctx, "user-1", profileA, validInput("A", "B@example.com"))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = service.Replace(ctx, "user-1", profileA, models.ProfileInput{Name: "A"})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	input := validInput("Alice", "A@example.com")
	input.SkillsWanted = models.StringList{"Guitar"}
	profile, err := service.Replace(ctx, "user-1", profileA, input)
	assert.NoError(t, err)
	assert.Equal(t, profileA, profile.ID)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, []string{}, profile.SkillsOffered)
	assert.Equal(t, []string{"Guitar"}, profile.SkillsWanted)
	assert.Equal(t, created, profile.CreatedAt)
	assert.Equal(t, updated, profile.UpdatedAt)

	stored, _, _ := profiles.FindByID(ctx, profileB)
	assert.Equal(t, "B", stored.Name)
}

func TestProfileServiceDelete(t *testing.T) {
	profiles := &memProfileStore{profiles: []models.Profile{
		{ID: profileA, UserID: "user-1", Email: "a@example.com"},
		{ID: profileB, UserID: "user-2", Email: "b@example.com"},
	}}
	service := NewProfileService(profiles)
	ctx := context.Background()

	assert.ErrorIs(t, service.Delete(ctx, "user-1", missingProfile), ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "user-1", profileB), ErrForbidden)
	assert.NoError(t, service.Delete(ctx, "user-1", profileA))

	_, found, _ := profiles.FindByID(ctx, profileA)
	assert.False(t, found)
	_, found, _ = profiles.FindByID(ctx, profileB)
	assert.True(t, found)
}

func TestProfileServiceLookups(t *testing.T) {
	profiles := &memProfileStore{profiles: []models.Profile{
		{ID: profileA, UserID: "user-1", Email: "a@example.com"},
	}}
	service := NewProfileService(profiles)
	ctx := context.Background()

	profile, found, err := service.FindByEmail(ctx, "  A@Example.com ")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, profileA, profile.ID)

	_, found, err = service.FindByEmail(ctx, "   ")
	assert.NoError(t, err)
	assert.False(t, found)

	profile, found, err = service.FindByOwner(ctx, "user-1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, profileA, profile.ID)

	all, err := service.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

type countingProfileStore struct {
	memProfileStore
	lookups int
}

func (s *countingProfileStore) FindByID(ctx context.Context, id string) (models.Profile, bool, error) {
	s.lookups++
	return s.memProfileStore.FindByID(ctx, id)
}

func TestProfileServiceMalformedIDIsNotFound(t *testing.T) {
	profiles := &countingProfileStore{}
	service := NewProfileService(profiles)
	ctx := context.Background()

	_, err := service.Replace(ctx, "user-1", "abc", validInput("A", "a@example.com"))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, service.Delete(ctx, "user-1", "abc"), ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "user-1", ""), ErrNotFound)
	assert.Equal(t, 0, profiles.lookups)
}
