// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"nirogya/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for provider persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrProviderNotFound is returned when a provider account is not found.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrDuplicateEmail is returned when the (kind, email) unique constraint is violated.
	ErrDuplicateEmail = errors.New("email already registered for this provider kind")
)

// ProviderRepository defines the standard operations for provider persistence.
// The application layer depends on this interface, not the concrete implementation.
type ProviderRepository interface {
	// Create persists a new provider account. The store enforces email
	// uniqueness per kind; violations surface as ErrDuplicateEmail.
	Create(ctx context.Context, provider *entity.Provider) error

	// FindByID retrieves a single provider by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)

	// FindByEmail retrieves a provider of the given kind by its login email.
	FindByEmail(ctx context.Context, kind entity.ProviderKind, email string) (*entity.Provider, error)

	// FindByOrganization retrieves all doctors linked to the given organization,
	// in storage order. Returns an empty slice, not an error, when none match.
	FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Provider, error)

	// Search retrieves providers of the given kind matching the query.
	// Name matching is a case-insensitive substring match; a non-empty
	// specialty narrows the result further (both conditions must hold).
	Search(ctx context.Context, query SearchQuery) ([]*entity.Provider, error)
}

// SearchQuery describes a directory lookup over a single provider kind.
type SearchQuery struct {
	Kind      entity.ProviderKind
	Name      string // Substring match on display name; empty matches all.
	Specialty string // Doctor specialty tag; empty means no specialty filter.
}
