package service

// DeliveryQRData is encoded into the delivery confirmation QR code.
type DeliveryQRData struct {
	OrderNumber string `json:"order_number"`
	OTP         string `json:"otp"`
	Type        string `json:"type"`
}

// QRCodeService renders and reads delivery QR codes.
type QRCodeService interface {
	// GenerateDeliveryQR renders a PNG QR code for an order hand-over.
	GenerateDeliveryQR(orderNumber, otp string) ([]byte, error)

	// ParseDeliveryQR decodes the payload scanned from a delivery QR code.
	ParseDeliveryQR(qrData string) (*DeliveryQRData, error)
}
