// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines header names and fixed header values used by
// the HTTP layer.
package constants

// Header names.
const (
	HeaderContentType              = "Content-Type"
	HeaderAuthorization            = "Authorization"
	HeaderRetryAfter               = "Retry-After"
	HeaderRateLimitLimit           = "X-RateLimit-Limit"
	HeaderRateLimitRemaining       = "X-RateLimit-Remaining"
	HeaderCacheControl             = "Cache-Control"
	HeaderXContentTypeOptions      = "X-Content-Type-Options"
	HeaderXFrameOptions            = "X-Frame-Options"
	HeaderReferrerPolicy           = "Referrer-Policy"
	HeaderContentSecurityPolicy    = "Content-Security-Policy"
	HeaderAccessControlAllowOrigin = "Access-Control-Allow-Origin"
	HeaderAccessControlAllowCreds  = "Access-Control-Allow-Credentials"
	HeaderAccessControlAllowMethod = "Access-Control-Allow-Methods"
	HeaderAccessControlAllowHeader = "Access-Control-Allow-Headers"
	HeaderAccessControlMaxAge      = "Access-Control-Max-Age"
	HeaderOrigin                   = "Origin"
	HeaderVary                     = "Vary"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
)

// Security header values.
const (
	FrameOptionsDeny           = "DENY"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'none'; frame-ancestors 'none'"
	CacheControlNoStore        = "no-store"
)

// CORS values.
const (
	CORSAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	CORSAllowHeaders = "Accept, Authorization, Content-Type, X-Request-ID"
	CORSMaxAge       = "300"
)
