// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"nirogya/internal/domain/entity"
)

// --- Input DTOs ---

// ImagePayload carries an optional profile image submitted with a registration.
type ImagePayload struct {
	Filename string
	Data     []byte
}

// RegisterInput defines the data required to register a clinic or hospital.
// Latitude and Longitude arrive as the raw form strings; parsing them is part
// of the registration's validation contract.
type RegisterInput struct {
	Kind        entity.ProviderKind
	DisplayName string
	Email       string
	Password    string
	Latitude    string
	Longitude   string
	Phone       string
	Address     string
	City        string
	State       string
	Image       *ImagePayload
}

// LoginInput defines the data required for a provider to log in.
type LoginInput struct {
	Kind     entity.ProviderKind
	Email    string
	Password string
}

// AddDoctorInput defines the data an organization submits to add a doctor.
type AddDoctorInput struct {
	Name            string
	Email           string
	Phone           string
	LoginID         string
	Password        string
	ConfirmPassword string
	Degrees         []string
	Specialties     []string
	ExperienceYears int
	ConsultationFee float64
	AvailableDays   []string
	TimeSlotStart   string
	TimeSlotEnd     string
}

// --- Output DTOs ---

// AuthOutput returns the minted session token plus a redacted account view.
// ExpiresIn is the token's lifetime so clients can renew before expiry.
type AuthOutput struct {
	Token     string
	ExpiresIn time.Duration
	Provider  *entity.Provider
}

// DoctorSummary is the redacted view returned after adding a doctor.
type DoctorSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	LoginID string `json:"userId,omitempty"`
}

// AuthUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (API handlers) depends on.
type AuthUsecase interface {
	// Register creates a clinic or hospital account. All-or-nothing: either a
	// single valid account appears together with a token, or nothing persists.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates an existing account and mints a session token.
	// Unknown email and wrong password fail identically.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// AddDoctor creates a doctor account linked to the calling organization.
	AddDoctor(ctx context.Context, organization *entity.Provider, input *AddDoctorInput) (*DoctorSummary, error)
}
