package qrcode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRCodeService_GenerateProfileQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	providerID := uuid.New()

	png, err := svc.GenerateProfileQR(providerID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "expected PNG output")
}

func TestQRCodeService_ParseProfileQR_RoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	providerID := uuid.New()

	payload, err := json.Marshal(QRCodeData{ProviderID: providerID.String(), Type: "profile"})
	require.NoError(t, err)

	parsed, err := svc.ParseProfileQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, providerID, parsed)
}

func TestQRCodeService_ParseProfileQR_Invalid(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.ParseProfileQR("not-json")
	assert.Error(t, err)

	wrongType, _ := json.Marshal(QRCodeData{ProviderID: uuid.New().String(), Type: "subscription"})
	_, err = svc.ParseProfileQR(string(wrongType))
	assert.Error(t, err)

	badID, _ := json.Marshal(QRCodeData{ProviderID: "nope", Type: "profile"})
	_, err = svc.ParseProfileQR(string(badID))
	assert.Error(t, err)
}
