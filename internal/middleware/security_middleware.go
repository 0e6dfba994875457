// Package middleware provides the HTTP middleware of the TaskTracker API:
// panic recovery, security headers, CORS, rate limiting, request logging,
// Prometheus instrumentation and the instrumented bearer authentication.
package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils/ratelimit"
)

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			w.Header().Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			w.Header().Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)
			w.Header().Set(constants.HeaderCacheControl, constants.CacheControlNoStore)

			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests and adds the CORS headers for allowed
// origins. A "*" entry allows every origin; credentials are never combined
// with the wildcard.
func CORS(cfg config.CORSSettings) func(http.Handler) http.Handler {
	wildcard := utils.ContainsString(cfg.AllowedOrigins, constants.DefaultCORSOrigin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case utils.ContainsString(cfg.AllowedOrigins, origin):
				w.Header().Set(constants.HeaderAccessControlAllowOrigin, origin)
				w.Header().Add(constants.HeaderVary, constants.HeaderOrigin)
				if cfg.AllowCredentials {
					w.Header().Set(constants.HeaderAccessControlAllowCreds, "true")
				}
			case wildcard:
				w.Header().Set(constants.HeaderAccessControlAllowOrigin, constants.DefaultCORSOrigin)
			default:
				// Unknown origin: no CORS headers, the browser blocks the response
				next.ServeHTTP(w, r)
				return
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(constants.HeaderAccessControlAllowMethod, constants.CORSAllowMethods)
			w.Header().Set(constants.HeaderAccessControlAllowHeader, constants.CORSAllowHeaders)
			w.Header().Set(constants.HeaderAccessControlMaxAge, constants.CORSMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// RateLimit is middleware that limits the rate of requests per client IP
// within category. A failing limiter lets the request through.
func RateLimit(checker ratelimit.Checker, category string, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			decision, err := checker.Allow(r.Context(), clientIP, category)
			if err != nil {
				log.Warn().
					Err(err).
					Str("category", category).
					Msg("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			if decision.Limit > 0 {
				w.Header().Set(constants.HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
				w.Header().Set(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
			}

			if !decision.Allowed {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("category", category).
					Msg("Rate limit exceeded")

				metrics.ObserveRateLimited(category)

				w.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(decision)))
				utils.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds rounds the wait up to whole seconds, between one
// second and one rate limit window.
func retryAfterSeconds(d ratelimit.Decision) int {
	if d.RetryAfter > constants.RateLimitWindow {
		return int(constants.RateLimitWindow.Seconds())
	}
	seconds := int(math.Ceil(d.RetryAfter.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

// getClientIP returns the client address. chi's RealIP middleware has
// already replaced RemoteAddr with the forwarded address when present.
func getClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If there's no port in the address, use it as is
		return r.RemoteAddr
	}
	return ip
}
