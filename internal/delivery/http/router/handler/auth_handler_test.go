package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpmiddleware "nirogya/internal/delivery/http/middleware"
	"nirogya/internal/domain/entity"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubAuthUsecase returns canned results and records the inputs it saw.
type stubAuthUsecase struct {
	registerOut   *usecase.AuthOutput
	registerErr   error
	lastRegister  *usecase.RegisterInput
	loginOut      *usecase.AuthOutput
	loginErr      error
	addDoctorOut  *usecase.DoctorSummary
	addDoctorErr  error
	lastAddDoctor *usecase.AddDoctorInput
}

func (s *stubAuthUsecase) Register(_ context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	s.lastRegister = input

	return s.registerOut, s.registerErr
}

func (s *stubAuthUsecase) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.loginOut, s.loginErr
}

func (s *stubAuthUsecase) AddDoctor(_ context.Context, _ *entity.Provider, input *usecase.AddDoctorInput) (*usecase.DoctorSummary, error) {
	s.lastAddDoctor = input

	return s.addDoctorOut, s.addDoctorErr
}

// newTestEcho builds an Echo instance with the production error handler so
// handler tests observe the real response envelope.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(testLogger()).HandleHTTPError

	return e
}

func sampleAuthOutput() *usecase.AuthOutput {
	return &usecase.AuthOutput{
		Token:     "session-token",
		ExpiresIn: 24 * time.Hour,
		Provider:  &entity.Provider{
			ID:          uuid.New(),
			Kind:        entity.KindClinic,
			Email:       "contact@citycare.example",
			DisplayName: "City Care Clinic",
		},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthHandler_RegisterClinic(t *testing.T) {
	t.Parallel()

	t.Run("json registration returns 201 with token", func(t *testing.T) {
		t.Parallel()

		stub := &stubAuthUsecase{registerOut: sampleAuthOutput()}
		h := NewAuthHandler(stub, testLogger())
		e := newTestEcho()
		e.POST("/api/clinics/register", h.RegisterClinic)

		payload := `{"name":"City Care Clinic","email":"contact@citycare.example","password":"s3cret","latitude":"28.6139","longitude":"77.2090"}`
		req := httptest.NewRequest(http.MethodPost, "/api/clinics/register", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "session-token", data["token"])
		assert.InDelta(t, 86400, data["expiresIn"].(float64), 0)

		require.NotNil(t, stub.lastRegister)
		assert.Equal(t, entity.KindClinic, stub.lastRegister.Kind)
		assert.Equal(t, "28.6139", stub.lastRegister.Latitude)
		assert.Nil(t, stub.lastRegister.Image)
	})

	t.Run("multipart registration forwards the image", func(t *testing.T) {
		t.Parallel()

		stub := &stubAuthUsecase{registerOut: sampleAuthOutput()}
		h := NewAuthHandler(stub, testLogger())
		e := newTestEcho()
		e.POST("/api/clinics/register", h.RegisterClinic)

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("name", "City Care Clinic"))
		require.NoError(t, writer.WriteField("email", "contact@citycare.example"))
		require.NoError(t, writer.WriteField("password", "s3cret"))
		part, err := writer.CreateFormFile("image", "front.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte{0xFF, 0xD8, 0xFF})
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/clinics/register", &buf)
		req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, stub.lastRegister.Image)
		assert.Equal(t, "front.jpg", stub.lastRegister.Image.Filename)
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, stub.lastRegister.Image.Data)
	})

	t.Run("duplicate account renders the error envelope", func(t *testing.T) {
		t.Parallel()

		stub := &stubAuthUsecase{registerErr: domainerrors.ErrDuplicateAccount}
		h := NewAuthHandler(stub, testLogger())
		e := newTestEcho()
		e.POST("/api/clinics/register", h.RegisterClinic)

		req := httptest.NewRequest(http.MethodPost, "/api/clinics/register", strings.NewReader(`{"name":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "DUPLICATE_ACCOUNT", errInfo["code"])
	})
}

func TestAuthHandler_LoginHospital(t *testing.T) {
	t.Parallel()

	t.Run("valid login returns 200", func(t *testing.T) {
		t.Parallel()

		stub := &stubAuthUsecase{loginOut: sampleAuthOutput()}
		h := NewAuthHandler(stub, testLogger())
		e := newTestEcho()
		e.POST("/api/hospitals/login", h.LoginHospital)

		req := httptest.NewRequest(http.MethodPost, "/api/hospitals/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad credentials render 401", func(t *testing.T) {
		t.Parallel()

		stub := &stubAuthUsecase{loginErr: domainerrors.ErrInvalidCredentials}
		h := NewAuthHandler(stub, testLogger())
		e := newTestEcho()
		e.POST("/api/hospitals/login", h.LoginHospital)

		req := httptest.NewRequest(http.MethodPost, "/api/hospitals/login", strings.NewReader(`{"email":"a@b.c","password":"bad"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "INVALID_CREDENTIALS", errInfo["code"])
	})
}

func TestErrorEnvelope_Opaque500(t *testing.T) {
	t.Parallel()

	stub := &stubAuthUsecase{loginErr: assert.AnError}
	h := NewAuthHandler(stub, testLogger())
	e := newTestEcho()
	e.POST("/api/hospitals/login", h.LoginHospital)

	req := httptest.NewRequest(http.MethodPost, "/api/hospitals/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// The underlying cause never reaches the client.
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	body := decodeBody(t, rec)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "INTERNAL_ERROR", errInfo["code"])
}
