package middleware

import (
	"strings"

	deliverycontext "nirogya/internal/delivery/context"
	"nirogya/internal/domain/entity"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/domain/repository"
	"nirogya/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for session token authentication.
type AuthMiddleware struct {
	tokenSvc     service.TokenService
	providerRepo repository.ProviderRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, providerRepo repository.ProviderRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, providerRepo: providerRepo}
}

// Authenticate validates the Bearer session token, re-reads the account it
// names, and attaches the (redacted) provider to the request context.
// A token whose account has vanished fails with 404, not 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "authorization header must carry a Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return errors.Wrap(domainerrors.ErrInvalidToken, "token is invalid or expired")
		}

		provider, err := m.providerRepo.FindByID(c.Request().Context(), claims.ProviderID)
		if err != nil {
			if errors.Is(err, repository.ErrProviderNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account no longer exists")
			}

			return errors.Wrap(err, "failed to load account for session")
		}

		c.Set(deliverycontext.KeyProvider, provider.Redacted())

		return next(c)
	}
}

// RequireOrganization only admits clinic and hospital accounts.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireOrganization(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		provider := CurrentProvider(c)
		if provider == nil {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account on request")
		}
		if !provider.Kind.IsOrganization() {
			return errors.Wrap(domainerrors.ErrForbidden, "only clinic and hospital accounts may manage doctors")
		}

		return next(c)
	}
}

// CurrentProvider returns the authenticated provider set by Authenticate,
// or nil when the request is anonymous.
func CurrentProvider(c echo.Context) *entity.Provider {
	provider, _ := c.Get(deliverycontext.KeyProvider).(*entity.Provider)

	return provider
}
