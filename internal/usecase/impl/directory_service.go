package impl

import (
	"context"
	"log/slog"

	deliverycontext "nirogya/internal/delivery/context"
	"nirogya/internal/domain/entity"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/domain/repository"
	"nirogya/internal/geo"
	"nirogya/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// directoryService implements the DirectoryUsecase interface.
type directoryService struct {
	providerRepo repository.ProviderRepository
	logger       *slog.Logger
}

// DirectoryServiceParams holds dependencies for directoryService, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	ProviderRepo repository.ProviderRepository
	Logger       *slog.Logger
}

// NewDirectoryService is the constructor for directoryService.
func NewDirectoryService(params DirectoryServiceParams) usecase.DirectoryUsecase {
	return &directoryService{
		providerRepo: params.ProviderRepo,
		logger:       params.Logger,
	}
}

func (srv *directoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// DoctorsByOrganization lists the doctors an organization has added.
func (srv *directoryService) DoctorsByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Provider, error) {
	doctors, err := srv.providerRepo.FindByOrganization(ctx, organizationID)
	if err != nil {
		srv.log(ctx).Error("Failed to list organization doctors", slog.Any("organizationID", organizationID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list organization doctors")
	}

	for i, doctor := range doctors {
		doctors[i] = doctor.Redacted()
	}

	return doctors, nil
}

// Search matches providers by name and specialty, then optionally ranks the
// matches by distance from the caller's origin. Matching happens in storage;
// ranking happens here so providers without coordinates still appear, last.
func (srv *directoryService) Search(ctx context.Context, input *usecase.SearchInput) (*usecase.SearchOutput, error) {
	providers, err := srv.providerRepo.Search(ctx, repository.SearchQuery{
		Kind:      input.Kind,
		Name:      input.Name,
		Specialty: input.Specialty,
	})
	if err != nil {
		srv.log(ctx).Error("Directory search failed", slog.Any("kind", input.Kind), slog.Any("error", err))

		return nil, errors.Wrap(err, "directory search failed")
	}

	results := make([]usecase.SearchResult, 0, len(providers))
	if input.Origin == nil {
		for _, provider := range providers {
			results = append(results, usecase.SearchResult{Provider: provider.Redacted()})
		}
	} else {
		ranked := geo.RankByDistance(*input.Origin, providers, func(p *entity.Provider) *orb.Point {
			if p.Location == nil {
				return nil
			}
			point := p.Location.Point()

			return &point
		})
		for _, entry := range ranked {
			result := usecase.SearchResult{Provider: entry.Item.Redacted()}
			if entry.HasDistance {
				km := entry.DistanceKm
				result.DistanceKm = &km
			}
			results = append(results, result)
		}
	}

	srv.log(ctx).Debug("Directory search completed", slog.Any("kind", input.Kind), slog.Int("total", len(results)))

	return &usecase.SearchOutput{Results: results, Total: len(results)}, nil
}

// GetProvider returns a single provider's public profile.
func (srv *directoryService) GetProvider(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	provider, err := srv.providerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "provider not found")
		}

		return nil, errors.Wrap(err, "failed to load provider")
	}

	return provider.Redacted(), nil
}
