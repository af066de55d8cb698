package models

import "time"

// Profile is a user's exchange listing. UserID is set at creation and never
// changes; list fields hold trimmed, non-empty entries.
type Profile struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Contact           string    `json:"contact,omitempty"`
	SkillsOffered     []string  `json:"skillsOffered"`
	SkillsWanted      []string  `json:"skillsWanted"`
	NativeLanguage    string    `json:"nativeLanguage"`
	LearningLanguages []string  `json:"learningLanguages"`
	TutoringSubjects  []string  `json:"tutoringSubjects"`
	TutoringNeeds     []string  `json:"tutoringNeeds"`
	Bio               string    `json:"bio"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProfileInput is the writable part of a profile as submitted by its owner.
type ProfileInput struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Contact           string     `json:"contact"`
	SkillsOffered     StringList `json:"skillsOffered"`
	SkillsWanted      StringList `json:"skillsWanted"`
	NativeLanguage    string     `json:"nativeLanguage"`
	LearningLanguages StringList `json:"learningLanguages"`
	TutoringSubjects  StringList `json:"tutoringSubjects"`
	TutoringNeeds     StringList `json:"tutoringNeeds"`
	Bio               string     `json:"bio"`
}
