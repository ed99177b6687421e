package qrcode

import (
	"encoding/json"
	"testing"

	"agriconnect/config"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		level string
		want  qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.level))
		})
	}
}

func TestNewQRCodeService_Defaults(t *testing.T) {
	svc := NewQRCodeService(&config.Config{}).(*qrcodeService)
	assert.Equal(t, defaultSize, svc.size)
	assert.Equal(t, qrcode.Medium, svc.errorCorrectionLevel)
}

func TestGenerateDeliveryQR(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}})

	png, err := svc.GenerateDeliveryQR("ORD12345678", "123456")
	require.NoError(t, err)
	require.Greater(t, len(png), 4)
	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])

	_, err = svc.GenerateDeliveryQR("", "123456")
	assert.Error(t, err)
}

func TestParseDeliveryQR(t *testing.T) {
	svc := NewQRCodeService(nil)

	valid, err := json.Marshal(map[string]string{"order_number": "ORD1", "otp": "654321", "type": "delivery"})
	require.NoError(t, err)

	data, err := svc.ParseDeliveryQR(string(valid))
	require.NoError(t, err)
	assert.Equal(t, "ORD1", data.OrderNumber)
	assert.Equal(t, "654321", data.OTP)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "invalid"},
		{name: "wrong type", payload: `{"order_number":"ORD1","otp":"1","type":"subscription"}`},
		{name: "missing otp", payload: `{"order_number":"ORD1","type":"delivery"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseDeliveryQR(tt.payload)
			assert.Error(t, err)
		})
	}
}
