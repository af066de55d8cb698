package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"skill-exchange/middleware"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) ServeHealth(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			return middleware.NewAppError(http.StatusServiceUnavailable, "Database unavailable", err)
		}
	}
	return json.NewEncoder(w).Encode(JSONResponse{"status": "ok"})
}
