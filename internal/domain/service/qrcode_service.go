package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for profile QR code generation and parsing.
type QRCodeService interface {
	// GenerateProfileQR generates a PNG QR code referencing a provider's public profile.
	GenerateProfileQR(providerID uuid.UUID) ([]byte, error)

	// ParseProfileQR parses QR code data and returns the referenced provider ID.
	ParseProfileQR(qrData string) (uuid.UUID, error)
}
