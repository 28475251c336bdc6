// Package handler contains the HTTP handlers for the application.
package handler

import (
	"io"
	"log/slog"
	"net/http"

	"nirogya/internal/delivery/http/response"
	"nirogya/internal/domain/entity"
	"nirogya/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxImageBytes caps the accepted profile image size.
const maxImageBytes = 5 << 20

// AuthHandler holds dependencies for registration and login handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	Latitude  string `json:"latitude" form:"latitude"`
	Longitude string `json:"longitude" form:"longitude"`
	Phone     string `json:"phone" form:"phone"`
	Address   string `json:"address" form:"address"`
	City      string `json:"city" form:"city"`
	State     string `json:"state" form:"state"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// authPayload is the data section of a successful register/login response.
type authPayload struct {
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expiresIn"` // Token lifetime in seconds.
	Provider  *entity.Provider `json:"provider"`
}

func newAuthPayload(output *usecase.AuthOutput) authPayload {
	return authPayload{
		Token:     output.Token,
		ExpiresIn: int64(output.ExpiresIn.Seconds()),
		Provider:  output.Provider,
	}
}

// RegisterClinic handles the clinic registration request.
func (h *AuthHandler) RegisterClinic(c echo.Context) error {
	return h.register(c, entity.KindClinic)
}

// RegisterHospital handles the hospital registration request.
func (h *AuthHandler) RegisterHospital(c echo.Context) error {
	return h.register(c, entity.KindHospital)
}

func (h *AuthHandler) register(c echo.Context, kind entity.ProviderKind) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	image, err := readImage(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Could not read uploaded image")
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Kind:        kind,
		DisplayName: req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newAuthPayload(output), "Registered successfully")
}

// LoginClinic handles the clinic login request.
func (h *AuthHandler) LoginClinic(c echo.Context) error {
	return h.login(c, entity.KindClinic)
}

// LoginHospital handles the hospital login request.
func (h *AuthHandler) LoginHospital(c echo.Context) error {
	return h.login(c, entity.KindHospital)
}

func (h *AuthHandler) login(c echo.Context, kind entity.ProviderKind) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Kind:     kind,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthPayload(output), "Login successful")
}

// readImage extracts the optional multipart image field. A JSON request, or a
// form without the field, yields nil without error.
func readImage(c echo.Context) (*usecase.ImagePayload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Absent field or non-multipart request.
		return nil, nil
	}
	if fileHeader.Size > maxImageBytes {
		return nil, errors.New("image exceeds the size limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded image")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded image")
	}

	return &usecase.ImagePayload{Filename: fileHeader.Filename, Data: data}, nil
}
