package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "nirogya/internal/delivery/context"
	"nirogya/internal/domain/entity"
	"nirogya/internal/domain/repository"
	"nirogya/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenService struct {
	claims *service.Claims
	err    error
}

func (s *stubTokenService) Generate(uuid.UUID, entity.ProviderKind) (string, error) {
	return "stub-token", nil
}

func (s *stubTokenService) Validate(string) (*service.Claims, error) {
	return s.claims, s.err
}

func (s *stubTokenService) TokenDuration() time.Duration {
	return 24 * time.Hour
}

type stubRepo struct {
	provider *entity.Provider
	err      error
}

func (r *stubRepo) Create(context.Context, *entity.Provider) error { return nil }

func (r *stubRepo) FindByID(context.Context, uuid.UUID) (*entity.Provider, error) {
	return r.provider, r.err
}

func (r *stubRepo) FindByEmail(context.Context, entity.ProviderKind, string) (*entity.Provider, error) {
	return nil, repository.ErrProviderNotFound
}

func (r *stubRepo) FindByOrganization(context.Context, uuid.UUID) ([]*entity.Provider, error) {
	return nil, nil
}

func (r *stubRepo) Search(context.Context, repository.SearchQuery) ([]*entity.Provider, error) {
	return nil, nil
}

func newGuardedEcho(m *AuthMiddleware, extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError

	middlewares := append([]echo.MiddlewareFunc{m.Authenticate}, extra...)
	e.GET("/protected", func(c echo.Context) error {
		provider := CurrentProvider(c)

		return c.JSON(http.StatusOK, map[string]string{"id": provider.ID.String()})
	}, middlewares...)

	return e
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	provider := &entity.Provider{ID: uuid.New(), Kind: entity.KindClinic, PasswordHash: "hash"}
	claims := &service.Claims{ProviderID: provider.ID, Kind: provider.Kind}

	t.Run("missing header renders 401 UNAUTHENTICATED", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&stubTokenService{claims: claims}, &stubRepo{provider: provider})
		e := newGuardedEcho(m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
	})

	t.Run("non-bearer header renders 401", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&stubTokenService{claims: claims}, &stubRepo{provider: provider})
		e := newGuardedEcho(m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token renders 401 INVALID_TOKEN", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&stubTokenService{err: errors.New("expired")}, &stubRepo{provider: provider})
		e := newGuardedEcho(m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
	})

	t.Run("vanished account renders 404", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&stubTokenService{claims: claims}, &stubRepo{err: repository.ErrProviderNotFound})
		e := newGuardedEcho(m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "ACCOUNT_NOT_FOUND")
	})

	t.Run("valid token attaches the redacted provider", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&stubTokenService{claims: claims}, &stubRepo{provider: provider})
		e := echo.New()
		e.GET("/protected", func(c echo.Context) error {
			attached := CurrentProvider(c)
			require.NotNil(t, attached)
			assert.Equal(t, provider.ID, attached.ID)
			assert.Empty(t, attached.PasswordHash)
			assert.NotNil(t, c.Get(deliverycontext.KeyProvider))

			return c.NoContent(http.StatusOK)
		}, m.Authenticate)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthMiddleware_RequireOrganization(t *testing.T) {
	t.Parallel()

	t.Run("doctor accounts are rejected", func(t *testing.T) {
		t.Parallel()

		doctor := &entity.Provider{ID: uuid.New(), Kind: entity.KindDoctor}
		claims := &service.Claims{ProviderID: doctor.ID, Kind: doctor.Kind}
		m := NewAuthMiddleware(&stubTokenService{claims: claims}, &stubRepo{provider: doctor})
		e := newGuardedEcho(m, m.RequireOrganization)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("hospital accounts pass", func(t *testing.T) {
		t.Parallel()

		hospital := &entity.Provider{ID: uuid.New(), Kind: entity.KindHospital}
		claims := &service.Claims{ProviderID: hospital.ID, Kind: hospital.Kind}
		m := NewAuthMiddleware(&stubTokenService{claims: claims}, &stubRepo{provider: hospital})
		e := newGuardedEcho(m, m.RequireOrganization)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
