package routes

import (
	"net/http"

	"skill-exchange/config"
	"skill-exchange/handlers"
	"skill-exchange/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Profiles *handlers.ProfileHandler
	Matches  *handlers.MatchHandler
	Health   *handlers.HealthHandler
	Resolver middleware.TokenResolver
}

func SetupRoutes(cfg config.Config, h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	router.HandleFunc("/health", middleware.ErrorHandler(h.Health.ServeHealth)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", middleware.ErrorHandler(h.Auth.SignupHandler)).Methods(http.MethodPost)
	auth.HandleFunc("/login", middleware.ErrorHandler(h.Auth.LoginHandler)).Methods(http.MethodPost)
	auth.HandleFunc("/logout", middleware.ErrorHandler(h.Auth.LogoutHandler)).Methods(http.MethodPost)

	requireAuth := middleware.AuthMiddleware(h.Resolver, cfg.Auth.CookieName)
	protected := api.NewRoute().Subrouter()
	protected.Use(requireAuth)

	protected.HandleFunc("/auth/authenticate", middleware.ErrorHandler(h.Auth.AuthenticateHandler)).Methods(http.MethodGet)

	protected.HandleFunc("/profiles", middleware.ErrorHandler(h.Profiles.ListHandler)).Methods(http.MethodGet)
	protected.HandleFunc("/profiles/me", middleware.ErrorHandler(h.Profiles.MeHandler)).Methods(http.MethodGet)
	protected.HandleFunc("/profiles", middleware.ErrorHandler(h.Profiles.CreateHandler)).Methods(http.MethodPost)
	protected.HandleFunc("/profiles/{id}", middleware.ErrorHandler(h.Profiles.ReplaceHandler)).Methods(http.MethodPut)
	protected.HandleFunc("/profiles/{id}", middleware.ErrorHandler(h.Profiles.DeleteHandler)).Methods(http.MethodDelete)

	protected.HandleFunc("/matches", middleware.ErrorHandler(h.Matches.BoardsHandler)).Methods(http.MethodGet)
	protected.HandleFunc("/matches/{domain}", middleware.ErrorHandler(h.Matches.BoardHandler)).Methods(http.MethodGet)

	return router
}
