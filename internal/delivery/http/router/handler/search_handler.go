package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"nirogya/internal/delivery/http/response"
	"nirogya/internal/domain/entity"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// SearchHandler holds dependencies for the patient-facing search handlers.
type SearchHandler struct {
	uc     usecase.DirectoryUsecase
	logger *slog.Logger
}

// NewSearchHandler is the constructor for SearchHandler, injected by Fx.
func NewSearchHandler(uc usecase.DirectoryUsecase, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		uc:     uc,
		logger: logger,
	}
}

// searchItem flattens a provider with its optional distance from the caller.
type searchItem struct {
	*entity.Provider
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type searchPayload struct {
	Results []searchItem `json:"results"`
	Total   int          `json:"total"`
}

// Doctors searches doctor accounts by name and specialty.
func (h *SearchHandler) Doctors(c echo.Context) error {
	return h.search(c, entity.KindDoctor)
}

// Hospitals searches hospital accounts by name.
func (h *SearchHandler) Hospitals(c echo.Context) error {
	return h.search(c, entity.KindHospital)
}

// Clinics searches clinic accounts by name.
func (h *SearchHandler) Clinics(c echo.Context) error {
	return h.search(c, entity.KindClinic)
}

// Specialty lists doctors practicing the given specialty.
func (h *SearchHandler) Specialty(c echo.Context) error {
	if c.QueryParam("specialty") == "" {
		return response.BadRequest(c, "MISSING_FIELDS", "specialty query parameter is required")
	}

	return h.search(c, entity.KindDoctor)
}

func (h *SearchHandler) search(c echo.Context, kind entity.ProviderKind) error {
	origin, err := parseOrigin(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Search(c.Request().Context(), &usecase.SearchInput{
		Kind:      kind,
		Name:      c.QueryParam("name"),
		Specialty: c.QueryParam("specialty"),
		Origin:    origin,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]searchItem, 0, len(output.Results))
	for _, result := range output.Results {
		items = append(items, searchItem{Provider: result.Provider, DistanceKm: result.DistanceKm})
	}

	return response.Success(c, http.StatusOK, searchPayload{Results: items, Total: output.Total}, "")
}

// parseOrigin reads the optional lat/lng query parameters. Both must be
// present and finite to produce an origin; both absent means no ranking.
// ParseFloat accepts "NaN" and "Inf", which would poison every ranked
// distance, so the finiteness check mirrors registration's.
func parseOrigin(c echo.Context) (*orb.Point, error) {
	latParam, lngParam := c.QueryParam("lat"), c.QueryParam("lng")
	if latParam == "" && lngParam == "" {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(latParam, 64)
	lng, lngErr := strconv.ParseFloat(lngParam, 64)
	if latErr != nil || lngErr != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidCoordinates, "lat and lng must both be numeric")
	}

	origin := entity.Location{Latitude: lat, Longitude: lng}
	if !origin.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCoordinates, "lat and lng must be finite")
	}

	point := origin.Point()

	return &point, nil
}
