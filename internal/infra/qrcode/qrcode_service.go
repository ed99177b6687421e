package qrcode

import (
	"encoding/json"
	"strings"

	"agriconnect/config"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	deliveryQRType = "delivery"
	defaultSize    = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, "M"
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateDeliveryQR renders the order number and OTP the courier scans at hand-over.
func (s *qrcodeService) GenerateDeliveryQR(orderNumber, otp string) ([]byte, error) {
	if orderNumber == "" || otp == "" {
		return nil, errors.New("order number and otp are required")
	}

	payload, err := json.Marshal(service.DeliveryQRData{
		OrderNumber: orderNumber,
		OTP:         otp,
		Type:        deliveryQRType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(payload), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseDeliveryQR decodes a scanned payload and rejects other QR types.
func (s *qrcodeService) ParseDeliveryQR(qrData string) (*service.DeliveryQRData, error) {
	var data service.DeliveryQRData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != deliveryQRType {
		return nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.OrderNumber == "" || data.OTP == "" {
		return nil, errors.New("QR code is missing order number or otp")
	}

	return &data, nil
}
