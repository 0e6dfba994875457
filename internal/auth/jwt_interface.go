package auth

// TokenVerifier verifies bearer tokens. *TokenService implements it.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// TokenIssuer issues tokens for authenticated identities.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}
