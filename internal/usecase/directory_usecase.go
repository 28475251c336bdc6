package usecase

import (
	"context"

	"nirogya/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// SearchInput describes a directory lookup.
type SearchInput struct {
	Kind      entity.ProviderKind
	Name      string     // Case-insensitive substring match on display name.
	Specialty string     // Doctor specialty tag; ANDed with Name when both set.
	Origin    *orb.Point // When present, results are ranked by proximity.
}

// SearchResult pairs a redacted provider with its distance from the origin,
// when one could be computed.
type SearchResult struct {
	Provider   *entity.Provider
	DistanceKm *float64
}

// SearchOutput returns the matches plus the total count. No pagination.
type SearchOutput struct {
	Results []SearchResult
	Total   int
}

// DirectoryUsecase defines read-only provider lookups for the patient-facing search.
type DirectoryUsecase interface {
	// DoctorsByOrganization returns all doctors linked to an organization, in
	// storage order; an empty list, not an error, when none match.
	DoctorsByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Provider, error)

	// Search runs a free-text/specialty lookup over one provider kind,
	// optionally ranking results by distance from an origin coordinate.
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)

	// GetProvider returns a single redacted provider profile.
	GetProvider(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
}
