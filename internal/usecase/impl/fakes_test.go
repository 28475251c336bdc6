package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"nirogya/internal/domain/entity"
	"nirogya/internal/domain/repository"
	"nirogya/internal/domain/service"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProviderRepo is an in-memory ProviderRepository for usecase tests.
type fakeProviderRepo struct {
	mu        sync.Mutex
	providers []*entity.Provider
	createErr error
	findErr   error
}

func (r *fakeProviderRepo) Create(_ context.Context, provider *entity.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.providers {
		if existing.Kind == provider.Kind && existing.Email == provider.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	provider.CreatedAt = time.Now()
	provider.UpdatedAt = provider.CreatedAt
	r.providers = append(r.providers, provider)

	return nil
}

func (r *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, p := range r.providers {
		if p.ID == id {
			clone := *p

			return &clone, nil
		}
	}

	return nil, repository.ErrProviderNotFound
}

func (r *fakeProviderRepo) FindByEmail(_ context.Context, kind entity.ProviderKind, email string) (*entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, p := range r.providers {
		if p.Kind == kind && p.Email == email {
			clone := *p

			return &clone, nil
		}
	}

	return nil, repository.ErrProviderNotFound
}

func (r *fakeProviderRepo) FindByOrganization(_ context.Context, organizationID uuid.UUID) ([]*entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	var doctors []*entity.Provider
	for _, p := range r.providers {
		if p.Kind != entity.KindDoctor || p.DoctorProfile == nil || p.DoctorProfile.OrganizationID == nil {
			continue
		}
		if *p.DoctorProfile.OrganizationID == organizationID {
			clone := *p
			doctors = append(doctors, &clone)
		}
	}

	return doctors, nil
}

func (r *fakeProviderRepo) Search(_ context.Context, query repository.SearchQuery) ([]*entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	var matches []*entity.Provider
	for _, p := range r.providers {
		if p.Kind != query.Kind {
			continue
		}
		if query.Name != "" && !strings.Contains(strings.ToLower(p.DisplayName), strings.ToLower(query.Name)) {
			continue
		}
		if query.Specialty != "" {
			if p.DoctorProfile == nil || !containsString(p.DoctorProfile.Specialties, query.Specialty) {
				continue
			}
		}
		clone := *p
		matches = append(matches, &clone)
	}

	return matches, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}

	return false
}

// fakeHasher is a trivially reversible PasswordHasher for tests.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService mints deterministic tokens for tests. Validate only
// recognizes tokens minted for providers listed in known.
type fakeTokenService struct {
	generateErr error
	known       []*entity.Provider
}

func (t *fakeTokenService) Generate(providerID uuid.UUID, kind entity.ProviderKind) (string, error) {
	if t.generateErr != nil {
		return "", t.generateErr
	}

	return "token-" + kind.String() + "-" + providerID.String(), nil
}

func (t *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	for _, p := range t.known {
		if tokenString == "token-"+p.Kind.String()+"-"+p.ID.String() {
			return &service.Claims{ProviderID: p.ID, Kind: p.Kind}, nil
		}
	}

	return nil, errors.New("token is invalid or expired")
}

func (t *fakeTokenService) TokenDuration() time.Duration {
	return 24 * time.Hour
}

// fakeAssetStore records uploads and returns a predictable URL.
type fakeAssetStore struct {
	uploadErr error
	uploads   []string
}

func (s *fakeAssetStore) UploadImage(_ context.Context, folder, filename string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	key := folder + "/" + filename
	s.uploads = append(s.uploads, key)

	return "https://assets.test/" + key, nil
}
