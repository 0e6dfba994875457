package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/models"
)

// Token verification errors
var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token has expired")
	ErrMalformed        = errors.New("token is malformed")
)

// Identity is the subject a token is issued for.
type Identity struct {
	ID       int64
	Username string
	Role     models.Role
}

// Claims represents the claims in a JWT token
type Claims struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role.IsAdmin()
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService creates a TokenService from the JWT settings. A zero
// expiry selects the one day default.
func NewTokenService(cfg *config.JWTSettings) *TokenService {
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = constants.DefaultJWTExpiry
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = constants.DefaultJWTIssuer
	}

	return &TokenService{
		secret: []byte(cfg.Secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
		// Expiry is checked against s.now after the signature is verified
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{constants.JWTSigningAlgorithm}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *s
	clone.now = now
	return &clone
}

// Issue signs a token for the identity valid from now until now plus the
// configured expiry.
func (s *TokenService) Issue(identity Identity) (string, error) {
	if !identity.Role.IsValid() {
		return "", fmt.Errorf("cannot issue token: %w", models.ErrInvalidRole)
	}

	now := s.now()
	claims := Claims{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// The error is one of ErrInvalidSignature, ErrExpired or ErrMalformed,
// possibly wrapped.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	if claims.ExpiresAt == nil || claims.ID == 0 || !claims.Role.IsValid() {
		return nil, ErrMalformed
	}
	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}

	return claims, nil
}

// classifyParseError maps jwt library errors onto the package errors.
func classifyParseError(err error) error {
	var vErr *jwt.ValidationError
	if errors.As(err, &vErr) {
		switch {
		case vErr.Errors&jwt.ValidationErrorMalformed != 0:
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
