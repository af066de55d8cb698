package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"skill-exchange/logging"
	"skill-exchange/services"
	"skill-exchange/utils"

	"go.uber.org/zap"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// TokenResolver turns a raw bearer token into the acting user's claims.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*utils.Claims, error)
}

func AuthMiddleware(resolver TokenResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r, cookieName)
			if token == "" {
				writeErrorResponse(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrInvalidToken) {
					writeErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				logging.FromContext(r.Context()).Error("token resolution failed", zap.Error(err))
				writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

func ContextWithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// TokenFromRequest prefers the auth cookie and falls back to the
// Authorization header.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return ""
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
