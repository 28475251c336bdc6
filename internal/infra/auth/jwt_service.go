// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"nirogya/config"
	"nirogya/internal/domain/entity"
	"nirogya/internal/domain/service"
)

const claimKind = "kind"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing session tokens.
	tokenTTL time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt session secret must be provided")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret:   cfg.SecretKey.Session,
		tokenTTL: ttl,
	}, nil
}

// Generate mints a signed session token bound to the given provider account.
func (s *jwtService) Generate(providerID uuid.UUID, kind entity.ProviderKind) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     providerID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
		claimKind: kind.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate checks a token's signature and expiry and extracts its claims.
// All failure modes (malformed, expired, bad signature) collapse into one error.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token is invalid or expired")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token is invalid or expired")
	}

	subject, err := mapClaims.GetSubject()
	if err != nil {
		return nil, errors.New("token is invalid or expired")
	}
	providerID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.New("token is invalid or expired")
	}

	kindStr, _ := mapClaims[claimKind].(string)
	kind, valid := entity.KindFromString(kindStr)
	if !valid {
		return nil, errors.New("token is invalid or expired")
	}

	return &service.Claims{
		ProviderID: providerID,
		Kind:       kind,
	}, nil
}

// TokenDuration returns the configured session token lifetime.
func (s *jwtService) TokenDuration() time.Duration {
	return s.tokenTTL
}
