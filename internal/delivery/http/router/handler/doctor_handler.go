package handler

import (
	"log/slog"
	"net/http"

	"nirogya/internal/delivery/http/middleware"
	"nirogya/internal/delivery/http/response"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DoctorHandler holds dependencies for doctor management handlers.
type DoctorHandler struct {
	authUC      usecase.AuthUsecase
	directoryUC usecase.DirectoryUsecase
	logger      *slog.Logger
}

// NewDoctorHandler is the constructor for DoctorHandler, injected by Fx.
func NewDoctorHandler(authUC usecase.AuthUsecase, directoryUC usecase.DirectoryUsecase, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{
		authUC:      authUC,
		directoryUC: directoryUC,
		logger:      logger,
	}
}

type addDoctorRequest struct {
	Name            string   `json:"name" form:"name"`
	Email           string   `json:"email" form:"email"`
	Phone           string   `json:"phone" form:"phone"`
	UserID          string   `json:"userId" form:"userId"`
	Password        string   `json:"password" form:"password"`
	ConfirmPassword string   `json:"confirmPassword" form:"confirmPassword"`
	Degrees         []string `json:"degrees" form:"degrees"`
	Specialties     []string `json:"specialties" form:"specialties"`
	ExperienceYears int      `json:"experienceYears" form:"experienceYears"`
	ConsultationFee float64  `json:"consultationFees" form:"consultationFees"`
	AvailableDays   []string `json:"availableDays" form:"availableDays"`
	TimeSlotStart   string   `json:"timeSlotStart" form:"timeSlotStart"`
	TimeSlotEnd     string   `json:"timeSlotEnd" form:"timeSlotEnd"`
}

// AddDoctor creates a doctor account under the authenticated organization.
func (h *DoctorHandler) AddDoctor(c echo.Context) error {
	organization := middleware.CurrentProvider(c)
	if organization == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account on request")
	}

	var req addDoctorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid doctor input")
	}

	summary, err := h.authUC.AddDoctor(c.Request().Context(), organization, &usecase.AddDoctorInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		LoginID:         req.UserID,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Degrees:         req.Degrees,
		Specialties:     req.Specialties,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		AvailableDays:   req.AvailableDays,
		TimeSlotStart:   req.TimeSlotStart,
		TimeSlotEnd:     req.TimeSlotEnd,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, summary, "Doctor added successfully")
}

// DoctorsByOrganization lists the doctors linked to an organization.
func (h *DoctorHandler) DoctorsByOrganization(c echo.Context) error {
	organizationID, err := uuid.Parse(c.Param("organizationId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid organization id")
	}

	doctors, err := h.directoryUC.DoctorsByOrganization(c.Request().Context(), organizationID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, doctors, "")
}
