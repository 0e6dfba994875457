// Package auth provides password hashing, token issuance and verification,
// the bearer authentication middleware and the authorization policy.
package auth

import (
	"context"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// ClaimsContextKey is the context key for storing the verified token claims.
const ClaimsContextKey ContextKey = "auth_claims"

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>"
// header value. The scheme is case sensitive and exactly two fields are
// required.
func ExtractBearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != constants.BearerScheme {
		return "", false
	}
	return fields[1], true
}

// Authenticate returns a middleware that verifies the bearer token of each
// request and stores its claims in the request context. Any failure is
// answered with 401 and a generic body; the reason is only logged.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := ExtractBearerToken(r.Header.Get(constants.HeaderAuthorization))
			if !ok {
				rejectUnauthorized(w, r, "missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				rejectUnauthorized(w, r, err.Error())
				return
			}

			log.Debug().
				Int64(constants.LogFieldUserID, claims.ID).
				Str(constants.LogFieldRole, claims.Role.String()).
				Str(constants.LogFieldRequestID, chimiddleware.GetReqID(r.Context())).
				Str("path", r.URL.Path).
				Msg("User authenticated")

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	log.Info().
		Str("reason", reason).
		Str(constants.LogFieldRequestID, chimiddleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Authentication failed")

	utils.Unauthorized(w)
}

// RequireAdmin returns a middleware that answers 403 with message unless the
// authenticated caller is an admin. It must run after Authenticate.
func RequireAdmin(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r)
			if !ok {
				utils.Unauthorized(w)
				return
			}
			if !CanAccessAllUsers(claims) {
				utils.Forbidden(w, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext extracts the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// GetClaims extracts the verified claims from the request context.
func GetClaims(r *http.Request) (*Claims, bool) {
	return ClaimsFromContext(r.Context())
}
