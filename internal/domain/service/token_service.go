package service

import (
	"time"

	"nirogya/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a session token.
type Claims struct {
	ProviderID uuid.UUID
	Kind       entity.ProviderKind
	jwt.RegisteredClaims
}

// TokenService defines the interface for minting and verifying session tokens.
// Tokens are stateless: the only way to invalidate one is expiry.
type TokenService interface {
	// Generate mints a signed session token bound to the given provider.
	Generate(providerID uuid.UUID, kind entity.ProviderKind) (string, error)

	// Validate checks a token's signature and expiry and returns its claims.
	// Malformed, expired, and badly signed tokens all fail the same way.
	Validate(tokenString string) (*Claims, error)

	// TokenDuration returns the configured session token lifetime.
	TokenDuration() time.Duration
}
