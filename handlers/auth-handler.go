package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skill-exchange/config"
	"skill-exchange/middleware"
	"skill-exchange/models"
	"skill-exchange/services"
	"skill-exchange/utils"
)

type JSONResponse map[string]interface{}

// IdentityService is the part of services.IdentityService the auth routes use.
type IdentityService interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (services.Session, error)
	Resolve(ctx context.Context, token string) (*utils.Claims, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	cfg      config.Config
	identity IdentityService
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(cfg config.Config, identity IdentityService) *AuthHandler {
	return &AuthHandler{cfg: cfg, identity: identity}
}

func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return middleware.NewAppError(http.StatusBadRequest, "Invalid request payload", err)
	}

	user, err := h.identity.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return middleware.NewAppError(http.StatusConflict, "User already exists", err)
		}
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(JSONResponse{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return middleware.NewAppError(http.StatusBadRequest, "Invalid request payload", err)
	}

	session, err := h.identity.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}

	setCookie(w, h.cfg, h.cfg.Auth.CookieName, session.Token, session.ExpiresIn)
	return json.NewEncoder(w).Encode(JSONResponse{
		"message":    "Login successful",
		"token":      session.Token,
		"name":       session.Name,
		"token_type": "Bearer",
		"expires_in": int(session.ExpiresIn.Seconds()),
	})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")

	if token := middleware.TokenFromRequest(r, h.cfg.Auth.CookieName); token != "" {
		if err := h.identity.Logout(r.Context(), token); err != nil {
			return err
		}
	}

	clearCookie(w, h.cfg, h.cfg.Auth.CookieName)
	return json.NewEncoder(w).Encode(JSONResponse{"message": "Logged out successfully"})
}

func (h *AuthHandler) AuthenticateHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return middleware.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
	}
	return json.NewEncoder(w).Encode(JSONResponse{
		"userId": claims.UserID,
		"email":  claims.Email,
		"name":   claims.Name,
	})
}

func setCookie(w http.ResponseWriter, cfg config.Config, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cfg.Cookie.Path,
		Domain:   cfg.Cookie.Domain,
		HttpOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
		MaxAge:   int(ttl.Seconds()),
	})
}

func clearCookie(w http.ResponseWriter, cfg config.Config, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     cfg.Cookie.Path,
		Domain:   cfg.Cookie.Domain,
		HttpOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// currentUser returns the caller's user id or a 401.
func currentUser(r *http.Request) (string, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		return "", middleware.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
	}
	return claims.UserID, nil
}
