package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"
	"agriconnect/internal/util"
)

const defaultRazorpayURL = "https://api.razorpay.com/v1"

type razorpayGateway struct {
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	httpClient *http.Client
}

// NewRazorpayGateway creates a gateway speaking the Razorpay orders API.
func NewRazorpayGateway(baseURL, keyID, keySecret, currency string) service.PaymentGateway {
	if baseURL == "" {
		baseURL = defaultRazorpayURL
	}
	if currency == "" {
		currency = defaultCurrency
	}

	return &razorpayGateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amount int64) (*service.GatewayOrder, error) {
	receipt, err := util.PrefixedCode("rcpt_", 10)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: g.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "razorpay request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, errors.Errorf("razorpay returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var order service.GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, errors.Wrap(err, "failed to decode razorpay order")
	}

	return &order, nil
}

// VerifyPayment checks the checkout signature: hex(HMAC-SHA256(order_id|payment_id, key_secret)).
func (g *razorpayGateway) VerifyPayment(_ context.Context, payload service.PaymentVerification) (bool, error) {
	if payload.OrderID == "" || payload.PaymentID == "" || payload.Signature == "" {
		return false, nil
	}

	expected := Signature(g.keySecret, payload.OrderID, payload.PaymentID)

	return hmac.Equal([]byte(expected), []byte(payload.Signature)), nil
}

// Signature computes the checkout signature for an order and payment id pair.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))

	return hex.EncodeToString(mac.Sum(nil))
}
