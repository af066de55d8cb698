package match

import "skill-exchange/models"

// Card is one profile as seen by the current user.
type Card struct {
	Profile models.Profile
	Match   bool
	Self    bool
}

// RevealsContact reports whether the card may show the profile's contact.
func (c Card) RevealsContact() bool {
	return c.Match || c.Self
}

// Board is the evaluated list of cards for one domain.
type Board struct {
	Domain string
	Cards  []Card
}

// Matches counts the matched cards.
func (b Board) Matches() int {
	count := 0
	for _, card := range b.Cards {
		if card.Match {
			count++
		}
	}
	return count
}

// Evaluate compares the current user's profile against every other profile.
// Cards keep the input order and the current user's own card comes last,
// never marked as a match. Without a profile for currentUserID the board is
// empty.
func Evaluate(profiles []models.Profile, currentUserID string, d Domain) Board {
	board := Board{Domain: d.Name, Cards: []Card{}}

	current, ok := findOwned(profiles, currentUserID)
	if !ok {
		return board
	}

	for _, candidate := range profiles {
		if candidate.ID == current.ID || candidate.UserID == current.UserID {
			continue
		}
		board.Cards = append(board.Cards, Card{
			Profile: candidate,
			Match:   d.Matches(current, candidate),
		})
	}
	board.Cards = append(board.Cards, Card{Profile: current, Self: true})
	return board
}

// EvaluateAll evaluates every domain, keyed by domain name.
func EvaluateAll(profiles []models.Profile, currentUserID string) map[string]Board {
	boards := make(map[string]Board, len(Domains()))
	for _, d := range Domains() {
		boards[d.Name] = Evaluate(profiles, currentUserID, d)
	}
	return boards
}

func findOwned(profiles []models.Profile, userID string) (models.Profile, bool) {
	if userID == "" {
		return models.Profile{}, false
	}
	for _, p := range profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return models.Profile{}, false
}
