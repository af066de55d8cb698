package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"skill-exchange/logging"
	"skill-exchange/match"
	"skill-exchange/middleware"
	"skill-exchange/models"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "skill-exchange/handlers"

// ProfileLister loads the profiles a board is computed from.
type ProfileLister interface {
	List(ctx context.Context) ([]models.Profile, error)
}

type MatchHandler struct {
	profiles ProfileLister
	matches  metric.Int64Counter
}

type cardResponse struct {
	Profile models.Profile `json:"profile"`
	Match   bool           `json:"match"`
	Self    bool           `json:"self"`
}

type boardResponse struct {
	Domain  string         `json:"domain"`
	Matches int            `json:"matches"`
	Cards   []cardResponse `json:"cards"`
}

func NewMatchHandler(profiles ProfileLister) *MatchHandler {
	counter, err := otel.Meter(meterName).Int64Counter(
		"skill_exchange.matches",
		metric.WithDescription("Matched cards served, by domain"),
	)
	if err != nil {
		logging.Logger().Warn("match counter unavailable", zap.Error(err))
	}
	return &MatchHandler{profiles: profiles, matches: counter}
}

// BoardsHandler returns the boards of every domain keyed by domain name.
func (h *MatchHandler) BoardsHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	userID, err := currentUser(r)
	if err != nil {
		return err
	}

	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		return err
	}

	boards := match.EvaluateAll(profiles, userID)
	response := make(map[string]boardResponse, len(boards))
	for name, board := range boards {
		h.record(r.Context(), board)
		response[name] = toBoardResponse(board)
	}
	return json.NewEncoder(w).Encode(response)
}

func (h *MatchHandler) BoardHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	userID, err := currentUser(r)
	if err != nil {
		return err
	}

	domain, ok := match.DomainByName(mux.Vars(r)["domain"])
	if !ok {
		return middleware.NewAppError(http.StatusNotFound, "Unknown match domain", nil)
	}

	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		return err
	}

	board := match.Evaluate(profiles, userID, domain)
	h.record(r.Context(), board)
	return json.NewEncoder(w).Encode(toBoardResponse(board))
}

func (h *MatchHandler) record(ctx context.Context, board match.Board) {
	if h.matches == nil {
		return
	}
	h.matches.Add(ctx, int64(board.Matches()), metric.WithAttributes(attribute.String("domain", board.Domain)))
}

// toBoardResponse hides the contact number on cards that are neither a match
// nor the caller's own.
func toBoardResponse(board match.Board) boardResponse {
	cards := make([]cardResponse, 0, len(board.Cards))
	for _, card := range board.Cards {
		profile := card.Profile
		if !card.RevealsContact() {
			profile.Contact = ""
		}
		cards = append(cards, cardResponse{Profile: profile, Match: card.Match, Self: card.Self})
	}
	return boardResponse{Domain: board.Domain, Matches: board.Matches(), Cards: cards}
}
