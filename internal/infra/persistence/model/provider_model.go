package model

import (
	"time"

	"github.com/google/uuid"
)

// ProviderModel mirrors the 'providers' table. One row per account; the three
// provider kinds share the table, discriminated by Kind. The composite unique
// index on (kind, email) is the store-level guard against two concurrent
// registrations with the same email.
type ProviderModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind         string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_providers_kind_email;index"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_providers_kind_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	DisplayName  string    `gorm:"type:varchar(100);not null"`
	Phone        string    `gorm:"type:varchar(30)"`
	Address      string    `gorm:"type:text"`
	City         string    `gorm:"type:varchar(100)"`
	State        string    `gorm:"type:varchar(100)"`
	Latitude     *float64  `gorm:"type:decimal(10,8)"`
	Longitude    *float64  `gorm:"type:decimal(11,8)"`
	ImageURL     string    `gorm:"type:text"`

	// Doctor-only columns; null for clinics and hospitals.
	OrganizationID  *uuid.UUID `gorm:"type:uuid;index"`
	LoginID         string     `gorm:"type:varchar(100)"`
	Degrees         []string   `gorm:"serializer:json"`
	Specialties     []string   `gorm:"serializer:json"`
	ExperienceYears int
	ConsultationFee float64
	AvailableDays   []string `gorm:"serializer:json"`
	TimeSlotStart   string   `gorm:"type:varchar(10)"`
	TimeSlotEnd     string   `gorm:"type:varchar(10)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProviderModel) TableName() string {
	return "providers"
}
