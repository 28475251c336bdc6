package handler

import (
	"log/slog"
	"net/http"

	"nirogya/internal/delivery/http/response"
	"nirogya/internal/domain/service"
	"nirogya/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProviderHandler serves public provider profiles and their QR codes.
type ProviderHandler struct {
	uc        usecase.DirectoryUsecase
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewProviderHandler is the constructor for ProviderHandler, injected by Fx.
func NewProviderHandler(uc usecase.DirectoryUsecase, qrService service.QRCodeService, logger *slog.Logger) *ProviderHandler {
	return &ProviderHandler{
		uc:        uc,
		qrService: qrService,
		logger:    logger,
	}
}

// GetProfile returns a single provider's public profile.
func (h *ProviderHandler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid provider id")
	}

	provider, err := h.uc.GetProvider(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, provider, "")
}

// GetProfileQR returns a PNG QR code referencing the provider's profile.
// The provider must exist; the QR encodes its ID for the mobile client.
func (h *ProviderHandler) GetProfileQR(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid provider id")
	}

	if _, err := h.uc.GetProvider(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrService.GenerateProfileQR(id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
