// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"strings"

	"nirogya/internal/domain/entity"
	domainerrors "nirogya/internal/domain/errors"
	"nirogya/internal/domain/repository"
	"nirogya/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// providerRepository implements the repository.ProviderRepository interface using GORM.
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository is the constructor for providerRepository.
// It returns the repository as a repository.ProviderRepository interface, adhering to dependency inversion.
func NewProviderRepository(db *gorm.DB) repository.ProviderRepository {
	return &providerRepository{db: db}
}

// Create persists a new provider account. The (kind, email) unique index makes
// the insert the authoritative duplicate check; the usecase's earlier lookup
// only exists to fail fast.
func (repo *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	providerM := fromProviderDomain(provider)

	if err := repo.db.WithContext(ctx).Create(providerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required provider information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create provider")
	}

	provider.ID = providerM.ID
	provider.CreatedAt = providerM.CreatedAt
	provider.UpdatedAt = providerM.UpdatedAt

	return nil
}

// FindByID retrieves a single provider by its unique ID.
func (repo *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	var providerM model.ProviderModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&providerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider by id")
	}

	return toProviderDomain(&providerM), nil
}

// FindByEmail retrieves a provider of the given kind by its login email.
func (repo *providerRepository) FindByEmail(ctx context.Context, kind entity.ProviderKind, email string) (*entity.Provider, error) {
	var providerM model.ProviderModel
	err := repo.db.WithContext(ctx).
		Where("kind = ? AND email = ?", kind.String(), email).
		First(&providerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider by email")
	}

	return toProviderDomain(&providerM), nil
}

// FindByOrganization retrieves all doctors linked to an organization, in
// storage order. Order is not a contract callers may depend on.
func (repo *providerRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Provider, error) {
	var models []model.ProviderModel
	err := repo.db.WithContext(ctx).
		Where("kind = ? AND organization_id = ?", entity.KindDoctor.String(), organizationID).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find doctors by organization")
	}

	return toProviderDomainSlice(models), nil
}

// Search retrieves providers of one kind by case-insensitive name substring,
// optionally narrowed by a doctor specialty tag (both conditions must hold).
func (repo *providerRepository) Search(ctx context.Context, query repository.SearchQuery) ([]*entity.Provider, error) {
	tx := repo.db.WithContext(ctx).
		Where("kind = ?", query.Kind.String())

	if query.Name != "" {
		tx = tx.Where("display_name ILIKE ?", "%"+escapeLike(query.Name)+"%")
	}
	if query.Specialty != "" {
		// Specialties are stored as a JSON array of strings; @> is containment.
		tag, err := json.Marshal([]string{query.Specialty})
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode specialty filter")
		}
		tx = tx.Where("specialties::jsonb @> ?::jsonb", string(tag))
	}

	var models []model.ProviderModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search providers")
	}

	return toProviderDomainSlice(models), nil
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toProviderDomain converts a GORM ProviderModel to a domain Provider entity.
func toProviderDomain(data *model.ProviderModel) *entity.Provider {
	if data == nil {
		return nil
	}

	provider := &entity.Provider{
		ID:           data.ID,
		Kind:         entity.ProviderKind(data.Kind),
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		DisplayName:  data.DisplayName,
		Phone:        data.Phone,
		Address:      data.Address,
		City:         data.City,
		State:        data.State,
		ImageURL:     data.ImageURL,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Latitude != nil && data.Longitude != nil {
		provider.Location = &entity.Location{
			Latitude:  *data.Latitude,
			Longitude: *data.Longitude,
		}
	}

	if provider.Kind == entity.KindDoctor {
		provider.DoctorProfile = &entity.DoctorProfile{
			OrganizationID:  data.OrganizationID,
			LoginID:         data.LoginID,
			Degrees:         data.Degrees,
			Specialties:     data.Specialties,
			ExperienceYears: data.ExperienceYears,
			ConsultationFee: data.ConsultationFee,
			AvailableDays:   data.AvailableDays,
			TimeSlot: entity.TimeSlot{
				Start: data.TimeSlotStart,
				End:   data.TimeSlotEnd,
			},
		}
	}

	return provider
}

func toProviderDomainSlice(models []model.ProviderModel) []*entity.Provider {
	providers := make([]*entity.Provider, 0, len(models))
	for i := range models {
		providers = append(providers, toProviderDomain(&models[i]))
	}

	return providers
}

// fromProviderDomain converts a domain Provider entity to a GORM ProviderModel for persistence.
func fromProviderDomain(data *entity.Provider) *model.ProviderModel {
	if data == nil {
		return nil
	}

	providerM := &model.ProviderModel{
		ID:           data.ID,
		Kind:         data.Kind.String(),
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		DisplayName:  data.DisplayName,
		Phone:        data.Phone,
		Address:      data.Address,
		City:         data.City,
		State:        data.State,
		ImageURL:     data.ImageURL,
	}

	if data.Location != nil {
		lat, lng := data.Location.Latitude, data.Location.Longitude
		providerM.Latitude = &lat
		providerM.Longitude = &lng
	}

	if profile := data.DoctorProfile; profile != nil {
		providerM.OrganizationID = profile.OrganizationID
		providerM.LoginID = profile.LoginID
		providerM.Degrees = profile.Degrees
		providerM.Specialties = profile.Specialties
		providerM.ExperienceYears = profile.ExperienceYears
		providerM.ConsultationFee = profile.ConsultationFee
		providerM.AvailableDays = profile.AvailableDays
		providerM.TimeSlotStart = profile.TimeSlot.Start
		providerM.TimeSlotEnd = profile.TimeSlot.End
	}

	return providerM
}
