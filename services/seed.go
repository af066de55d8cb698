package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"skill-exchange/logging"
	"skill-exchange/models"
	"skill-exchange/store"

	"go.uber.org/zap"
)

var randRead = rand.Read

// SampleProfiles are inserted on first start so a fresh install has
// someone to match against.
var SampleProfiles = []models.ProfileInput{
	{
		Name:              "Akshara",
		Email:             "akshara@example.com",
		Contact:           "1234567891",
		SkillsOffered:     models.StringList{"Web Development", "Graphic Design", "SEO Optimization"},
		SkillsWanted:      models.StringList{"Social Media Management", "Photography"},
		NativeLanguage:    "Hindi",
		LearningLanguages: models.StringList{"Telugu", "Japanese"},
		TutoringSubjects:  models.StringList{"Mathematics", "HTML & CSS", "OOPs"},
		TutoringNeeds:     models.StringList{"Java Programming", "Computational Biology"},
		Bio:               "I'm Akshara, a web developer with a passion for design.",
	},
	{
		Name:              "Rupasri",
		Email:             "chalasanirupasri234@gmail.com",
		Contact:           "1234567890",
		SkillsOffered:     models.StringList{"animation"},
		SkillsWanted:      models.StringList{"social media management"},
		NativeLanguage:    "telugu",
		LearningLanguages: models.StringList{"french", "hindi"},
		TutoringSubjects:  models.StringList{"java programming", "HTML and CSS"},
		TutoringNeeds:     models.StringList{"animation"},
		Bio:               "I am Rupasri, pursuing my 3rd year in CSE at Mahindra University.",
	},
	{
		Name:              "Mokshi",
		Email:             "mokshi@example.com",
		Contact:           "1234567892",
		SkillsOffered:     models.StringList{"Animation", "Content Writing"},
		SkillsWanted:      models.StringList{"Web Development", "Copywriting", "Data Analysis"},
		NativeLanguage:    "Telugu",
		LearningLanguages: models.StringList{"Hindi", "Mandarin"},
		TutoringSubjects:  models.StringList{"Discrete Maths", "Computational Biology"},
		TutoringNeeds:     models.StringList{"Software Engineering", "Mathematics", "Machine Learning"},
		Bio:               "Mokshi here, I love creating animations and writing content.",
	},
	{
		Name:              "Pushpak",
		Email:             "pushpak@example.com",
		Contact:           "1234567893",
		SkillsOffered:     models.StringList{"Social Media Management", "Copywriting"},
		SkillsWanted:      models.StringList{"Animation", "Illustration"},
		NativeLanguage:    "Telugu",
		LearningLanguages: models.StringList{"German", "Korean"},
		TutoringSubjects:  models.StringList{"Software Engineering", "Chemistry"},
		TutoringNeeds:     models.StringList{"Python", "Discrete Maths"},
		Bio:               "I'm Pushpak, skilled in social media and copywriting.",
	},
	{
		Name:              "apurupa",
		Email:             "apurupa@example.com",
		Contact:           "1234567894",
		SkillsOffered:     models.StringList{"Photography", "Writing"},
		SkillsWanted:      models.StringList{"Animation", "Design"},
		NativeLanguage:    "Telugu",
		LearningLanguages: models.StringList{"Japanese", "Korean"},
		TutoringSubjects:  models.StringList{"Physics", "English"},
		TutoringNeeds:     models.StringList{"Math", "Science"},
		Bio:               "I'm apurupa, passionate about photography.",
	},
}

// Seeder inserts sample profiles whose emails are not taken yet, neither by
// a profile nor by a registered user. Every sample gets its own new user so
// the one-profile-per-user rule holds.
type Seeder struct {
	identity *IdentityService
	users    store.UserStore
	profiles *ProfileService
	password string
}

func NewSeeder(identity *IdentityService, users store.UserStore, profiles *ProfileService, password string) *Seeder {
	return &Seeder{identity: identity, users: users, profiles: profiles, password: password}
}

// Seed returns the number of profiles it created. Running it twice is a no-op.
func (s *Seeder) Seed(ctx context.Context, samples []models.ProfileInput) (int, error) {
	logger := logging.FromContext(ctx)
	created := 0
	for _, sample := range samples {
		if _, found, err := s.profiles.FindByEmail(ctx, sample.Email); err != nil {
			return created, err
		} else if found {
			continue
		}

		if _, found, err := s.users.FindByEmail(ctx, NormalizeEmail(sample.Email)); err != nil {
			return created, err
		} else if found {
			logger.Warn("skipping sample profile, email belongs to a registered user", zap.String("email", sample.Email))
			continue
		}

		user, err := s.newOwner(ctx, sample)
		if err != nil {
			return created, fmt.Errorf("seed user %s: %w", sample.Email, err)
		}

		if _, err := s.profiles.Create(ctx, user.ID, sample); err != nil {
			if errors.Is(err, ErrConflict) {
				logger.Warn("skipping sample profile", zap.String("email", sample.Email), zap.Error(err))
				continue
			}
			return created, fmt.Errorf("seed profile %s: %w", sample.Email, err)
		}
		created++
	}
	if created > 0 {
		logger.Info("seeded sample profiles", zap.Int("count", created))
	}
	return created, nil
}

func (s *Seeder) newOwner(ctx context.Context, sample models.ProfileInput) (models.User, error) {
	password := s.password
	if password == "" {
		var err error
		if password, err = randomPassword(); err != nil {
			return models.User{}, err
		}
	}
	return s.identity.Register(ctx, sample.Name, sample.Email, password)
}

func randomPassword() (string, error) {
	buffer := make([]byte, 16)
	if _, err := randRead(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
