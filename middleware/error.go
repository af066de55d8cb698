package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"skill-exchange/logging"
	"skill-exchange/services"

	"go.uber.org/zap"
)

type AppHandler func(http.ResponseWriter, *http.Request) error

type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

type errorResponse struct {
	Error string `json:"error"`
}

type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.wroteHeader {
		rw.status = statusCode
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func ErrorHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if recovered := recover(); recovered != nil {
				logging.FromContext(r.Context()).Error("panic recovered",
					zap.Any("panic", recovered),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				if !rw.wroteHeader {
					writeErrorResponse(rw, http.StatusInternalServerError, "Internal server error")
				}
			}
		}()

		if err := handler(rw, r); err != nil {
			handleError(rw, r, err)
		}
	}
}

// ToAppError maps domain errors from the services package onto HTTP
// statuses. Anything unrecognised is a 500.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return NewAppError(http.StatusBadRequest, validationErr.Error(), err)
	case errors.Is(err, services.ErrConflict):
		return NewAppError(http.StatusConflict, "Resource already exists", err)
	case errors.Is(err, services.ErrNotFound):
		return NewAppError(http.StatusNotFound, "Not found", err)
	case errors.Is(err, services.ErrForbidden):
		return NewAppError(http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, services.ErrInvalidToken):
		return NewAppError(http.StatusUnauthorized, "Invalid or expired token", err)
	}
	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}

func handleError(w *responseWriter, r *http.Request, err error) {
	appErr := ToAppError(err)

	if appErr.Status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", appErr.Status),
			zap.Error(err),
		)
	}

	if w.wroteHeader {
		return
	}

	writeErrorResponse(w, appErr.Status, appErr.Message)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
