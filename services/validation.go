package services

import (
	"regexp"
	"strings"

	"skill-exchange/models"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPattern = regexp.MustCompile(`^\d{10}$`)
)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeProfileInput returns the trimmed, cleaned form of every field.
func normalizeProfileInput(in models.ProfileInput) models.ProfileInput {
	return models.ProfileInput{
		Name:              strings.TrimSpace(in.Name),
		Email:             NormalizeEmail(in.Email),
		Contact:           strings.TrimSpace(in.Contact),
		SkillsOffered:     models.CleanList(in.SkillsOffered),
		SkillsWanted:      models.CleanList(in.SkillsWanted),
		NativeLanguage:    strings.TrimSpace(in.NativeLanguage),
		LearningLanguages: models.CleanList(in.LearningLanguages),
		TutoringSubjects:  models.CleanList(in.TutoringSubjects),
		TutoringNeeds:     models.CleanList(in.TutoringNeeds),
		Bio:               strings.TrimSpace(in.Bio),
	}
}

func validateProfileInput(in models.ProfileInput) error {
	switch {
	case in.Name == "":
		return invalid("name", "is required")
	case in.Email == "":
		return invalid("email", "is required")
	case in.Contact == "":
		return invalid("contact", "is required")
	case in.Bio == "":
		return invalid("bio", "is required")
	case !emailPattern.MatchString(in.Email):
		return invalid("email", "must be a valid email address")
	case !contactPattern.MatchString(in.Contact):
		return invalid("contact", "must be exactly 10 digits")
	}
	return nil
}
