// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the core entity in the directory, representing a registered
// clinic, hospital, or doctor account. The three kinds share the same base
// record; kind-specific data lives in the optional DoctorProfile.
type Provider struct {
	ID            uuid.UUID      `json:"id"`                      // The Global Unique Identifier for the provider account.
	Kind          ProviderKind   `json:"kind"`                    // Tagged variant: clinic, hospital, or doctor.
	Email         string         `json:"email"`                   // Login identifier, unique per kind.
	PasswordHash  string         `json:"-"`                       // bcrypt hash of the login password. Never serialized.
	DisplayName   string         `json:"name"`                    // Clinic/hospital/doctor name, free text.
	Phone         string         `json:"phone,omitempty"`         // Contact phone number.
	Address       string         `json:"address,omitempty"`       // Street address, free text.
	City          string         `json:"city,omitempty"`          // City of the provider.
	State         string         `json:"state,omitempty"`         // State or region of the provider.
	Location      *Location      `json:"location,omitempty"`      // Geographic coordinates. Nil when not provided.
	ImageURL      string         `json:"image,omitempty"`         // Optional profile image URL, set by the asset upload step.
	DoctorProfile *DoctorProfile `json:"doctorProfile,omitempty"` // Doctor-specific data. Nil unless Kind is doctor.
	CreatedAt     time.Time      `json:"createdAt"`               // Timestamp of when this account was created.
	UpdatedAt     time.Time      `json:"updatedAt"`               // Timestamp of the last modification.
}

// DoctorProfile holds data specific to the doctor kind.
type DoctorProfile struct {
	OrganizationID  *uuid.UUID `json:"organizationId,omitempty"` // Weak reference to the owning clinic/hospital. Lookup only, no cascading ownership.
	LoginID         string     `json:"userId,omitempty"`         // Organization-assigned login identifier for the doctor.
	Degrees         []string   `json:"degrees,omitempty"`        // Medical degrees, e.g. "MBBS", "MD".
	Specialties     []string   `json:"specialties,omitempty"`    // Practice specialties, e.g. "Cardiology".
	ExperienceYears int        `json:"experienceYears"`          // Years of practice.
	ConsultationFee float64    `json:"consultationFees"`         // Consultation fee in the local currency.
	AvailableDays   []string   `json:"availableDays,omitempty"`  // Weekdays the doctor is available.
	TimeSlot        TimeSlot   `json:"timeSlots"`                // Daily consultation window.
}

// TimeSlot is a daily availability window in "HH:MM" wall-clock form.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Redacted returns a copy safe for API responses: the password hash is stripped.
func (p *Provider) Redacted() *Provider {
	if p == nil {
		return nil
	}
	clone := *p
	clone.PasswordHash = ""

	return &clone
}
