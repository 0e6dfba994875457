package middleware

import (
	"errors"
	"net/http"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
)

// Token verification outcomes reported to the metrics.
const (
	outcomeValid            = "valid"
	outcomeExpired          = "expired"
	outcomeInvalidSignature = "invalid_signature"
	outcomeMalformed        = "malformed"
)

// JWTAuth is a middleware that requires a valid bearer token. Each
// verification is counted by outcome when metrics is non-nil.
func JWTAuth(verifier auth.TokenVerifier, metrics *Metrics) func(http.Handler) http.Handler {
	return auth.Authenticate(&instrumentedVerifier{next: verifier, metrics: metrics})
}

type instrumentedVerifier struct {
	next    auth.TokenVerifier
	metrics *Metrics
}

func (v *instrumentedVerifier) Verify(tokenString string) (*auth.Claims, error) {
	claims, err := v.next.Verify(tokenString)
	v.metrics.ObserveAuth(verificationOutcome(err))
	return claims, err
}

func verificationOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeValid
	case errors.Is(err, auth.ErrExpired):
		return outcomeExpired
	case errors.Is(err, auth.ErrInvalidSignature):
		return outcomeInvalidSignature
	default:
		return outcomeMalformed
	}
}
