package match

import (
	"strings"

	"skill-exchange/models"
)

// Selector picks the values of one profile field.
type Selector func(models.Profile) []string

// Domain is one kind of exchange. A symmetric domain matches when either
// side wants what the other offers; an asymmetric one only looks at what the
// viewer wants.
type Domain struct {
	Name      string
	Wanted    Selector
	Offered   Selector
	Symmetric bool
}

var (
	Skills = Domain{
		Name:      "skills",
		Wanted:    func(p models.Profile) []string { return p.SkillsWanted },
		Offered:   func(p models.Profile) []string { return p.SkillsOffered },
		Symmetric: true,
	}

	// Languages pairs a learner with native speakers. There is no reciprocal
	// check on what the candidate is learning.
	Languages = Domain{
		Name:    "languages",
		Wanted:  func(p models.Profile) []string { return p.LearningLanguages },
		Offered: func(p models.Profile) []string { return Single(p.NativeLanguage) },
	}

	Tutoring = Domain{
		Name:      "tutoring",
		Wanted:    func(p models.Profile) []string { return p.TutoringNeeds },
		Offered:   func(p models.Profile) []string { return p.TutoringSubjects },
		Symmetric: true,
	}
)

// Domains lists every domain in display order.
func Domains() []Domain {
	return []Domain{Skills, Languages, Tutoring}
}

// DomainByName looks a domain up case-insensitively.
func DomainByName(name string) (Domain, bool) {
	for _, d := range Domains() {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, true
		}
	}
	return Domain{}, false
}

// Matches reports whether candidate is a match for viewer in this domain.
func (d Domain) Matches(viewer, candidate models.Profile) bool {
	if HasOverlap(d.Wanted(viewer), d.Offered(candidate)) {
		return true
	}
	return d.Symmetric && HasOverlap(d.Wanted(candidate), d.Offered(viewer))
}
