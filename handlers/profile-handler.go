package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"skill-exchange/middleware"
	"skill-exchange/models"

	"github.com/gorilla/mux"
)

// ProfileService is the part of services.ProfileService the profile routes use.
type ProfileService interface {
	List(ctx context.Context) ([]models.Profile, error)
	FindByEmail(ctx context.Context, email string) (models.Profile, bool, error)
	FindByOwner(ctx context.Context, userID string) (models.Profile, bool, error)
	Create(ctx context.Context, userID string, input models.ProfileInput) (models.Profile, error)
	Replace(ctx context.Context, userID, id string, input models.ProfileInput) (models.Profile, error)
	Delete(ctx context.Context, userID, id string) error
}

type ProfileHandler struct {
	profiles ProfileService
}

func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// ListHandler returns every profile, or with ?email= a list holding at most
// the one profile registered under that email.
func (h *ProfileHandler) ListHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query()
	if query.Has("email") {
		profile, found, err := h.profiles.FindByEmail(r.Context(), query.Get("email"))
		if err != nil {
			return err
		}
		result := []models.Profile{}
		if found {
			result = append(result, profile)
		}
		return json.NewEncoder(w).Encode(result)
	}

	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return json.NewEncoder(w).Encode(profiles)
}

func (h *ProfileHandler) MeHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	userID, err := currentUser(r)
	if err != nil {
		return err
	}

	profile, found, err := h.profiles.FindByOwner(r.Context(), userID)
	if err != nil {
		return err
	}
	if !found {
		return middleware.NewAppError(http.StatusNotFound, "Profile not found", nil)
	}
	return json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) CreateHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	userID, err := currentUser(r)
	if err != nil {
		return err
	}

	input, err := decodeProfileInput(r)
	if err != nil {
		return err
	}

	profile, err := h.profiles.Create(r.Context(), userID, input)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) ReplaceHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	userID, err := currentUser(r)
	if err != nil {
		return err
	}

	input, err := decodeProfileInput(r)
	if err != nil {
		return err
	}

	profile, err := h.profiles.Replace(r.Context(), userID, mux.Vars(r)["id"], input)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	userID, err := currentUser(r)
	if err != nil {
		return err
	}

	if err := h.profiles.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(JSONResponse{"message": "Profile deleted successfully"})
}

func decodeProfileInput(r *http.Request) (models.ProfileInput, error) {
	var input models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return models.ProfileInput{}, middleware.NewAppError(http.StatusBadRequest, "Invalid request payload: "+err.Error(), err)
	}
	return input, nil
}
