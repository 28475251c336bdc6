// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "nirogya/internal/delivery/context"
	"nirogya/internal/domain/entity"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/domain/repository"
	"nirogya/internal/domain/service"
	"nirogya/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	providerRepo repository.ProviderRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	assetStore   service.AssetStore
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	ProviderRepo repository.ProviderRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	AssetStore   service.AssetStore `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		providerRepo: params.ProviderRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		assetStore:   params.AssetStore,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete clinic/hospital registration process.
// Checks run in a fixed order: required fields, duplicate email, coordinate
// parsing, then the optional image upload before anything persists.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.Any("kind", input.Kind), slog.String("email", input.Email))

	if input.DisplayName == "" || input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "registration requires name, email and password")
	}

	if _, err := srv.providerRepo.FindByEmail(ctx, input.Kind, input.Email); err == nil {
		srv.log(ctx).Warn("Registration rejected, email taken", slog.Any("kind", input.Kind), slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrDuplicateAccount, "email already registered")
	} else if !errors.Is(err, repository.ErrProviderNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing account")
	}

	location, err := parseLocation(input.Latitude, input.Longitude)
	if err != nil {
		return nil, err
	}

	// Upload the image before persisting anything; its failure is fatal for
	// the whole registration, there is no partial-record fallback.
	imageURL := ""
	if input.Image != nil {
		imageURL, err = srv.uploadImage(ctx, input)
		if err != nil {
			return nil, err
		}
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("kind", input.Kind), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	provider := &entity.Provider{
		Kind:         input.Kind,
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
		Phone:        input.Phone,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Location:     location,
		ImageURL:     imageURL,
	}

	if err := srv.providerRepo.Create(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// A concurrent registration won the race; the unique constraint is
			// the authoritative check.
			return nil, errors.Wrap(domainerrors.ErrDuplicateAccount, "email already registered")
		}
		srv.log(ctx).Error("Failed to create provider", slog.Any("kind", input.Kind), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create provider during registration")
	}

	token, err := srv.tokenService.Generate(provider.ID, provider.Kind)
	if err != nil {
		srv.log(ctx).Error("Failed to mint session token", slog.Any("providerID", provider.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("kind", input.Kind), slog.Any("providerID", provider.ID))

	return &usecase.AuthOutput{
		Token:     token,
		ExpiresIn: srv.tokenService.TokenDuration(),
		Provider:  provider.Redacted(),
	}, nil
}

func (srv *authService) uploadImage(ctx context.Context, input *usecase.RegisterInput) (string, error) {
	if srv.assetStore == nil {
		srv.log(ctx).Error("Image submitted but no asset store is configured")

		return "", errors.Wrap(domainerrors.ErrUpstreamFailure, "asset store unavailable")
	}

	folder := input.Kind.String() + "s"
	imageURL, err := srv.assetStore.UploadImage(ctx, folder, input.Image.Filename, input.Image.Data)
	if err != nil {
		srv.log(ctx).Error("Image upload failed", slog.Any("kind", input.Kind), slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrUpstreamFailure, "image upload failed")
	}

	return imageURL, nil
}

// Login orchestrates the provider login process. An unknown email and a wrong
// password produce the same error, so account existence is never revealed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.Any("kind", input.Kind), slog.String("email", input.Email))

	if input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "email and password are required")
	}

	provider, err := srv.providerRepo.FindByEmail(ctx, input.Kind, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(input.Password, provider.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Generate(provider.ID, provider.Kind)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("Login successful", slog.Any("providerID", provider.ID))

	return &usecase.AuthOutput{
		Token:     token,
		ExpiresIn: srv.tokenService.TokenDuration(),
		Provider:  provider.Redacted(),
	}, nil
}

// AddDoctor creates a doctor account linked to the calling organization. The
// doctor inherits the organization's location so proximity search covers it.
func (srv *authService) AddDoctor(ctx context.Context, organization *entity.Provider, input *usecase.AddDoctorInput) (*usecase.DoctorSummary, error) {
	srv.log(ctx).Info("Adding doctor", slog.Any("organizationID", organization.ID))

	if input.Password != input.ConfirmPassword {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "passwords don't match")
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "doctor requires name, email and password")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	orgID := organization.ID
	doctor := &entity.Provider{
		Kind:         entity.KindDoctor,
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.Name,
		Phone:        input.Phone,
		Address:      organization.Address,
		City:         organization.City,
		State:        organization.State,
		Location:     organization.Location,
		DoctorProfile: &entity.DoctorProfile{
			OrganizationID:  &orgID,
			LoginID:         input.LoginID,
			Degrees:         input.Degrees,
			Specialties:     input.Specialties,
			ExperienceYears: input.ExperienceYears,
			ConsultationFee: input.ConsultationFee,
			AvailableDays:   input.AvailableDays,
			TimeSlot: entity.TimeSlot{
				Start: input.TimeSlotStart,
				End:   input.TimeSlotEnd,
			},
		},
	}

	if err := srv.providerRepo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.Wrap(domainerrors.ErrDuplicateAccount, "doctor email already registered")
		}

		return nil, errors.Wrap(err, "failed to create doctor")
	}

	srv.log(ctx).Debug("Doctor added", slog.Any("doctorID", doctor.ID), slog.Any("organizationID", organization.ID))

	return &usecase.DoctorSummary{
		ID:      doctor.ID.String(),
		Name:    doctor.DisplayName,
		Email:   doctor.Email,
		LoginID: doctor.DoctorProfile.LoginID,
	}, nil
}

// parseLocation turns the raw form strings into a validated Location.
// Both fields empty means no location; anything else must parse to finite floats.
func parseLocation(latitude, longitude string) (*entity.Location, error) {
	latitude, longitude = strings.TrimSpace(latitude), strings.TrimSpace(longitude)
	if latitude == "" && longitude == "" {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(latitude, 64)
	lng, lngErr := strconv.ParseFloat(longitude, 64)
	if latErr != nil || lngErr != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidCoordinates, "latitude and longitude must be numeric")
	}

	location := entity.Location{Latitude: lat, Longitude: lng}
	if !location.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCoordinates, "latitude and longitude must be finite")
	}

	return &location, nil
}
