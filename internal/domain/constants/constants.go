package constants

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)

// Payment gateways
const (
	PaymentProviderDummy    = "dummy"
	PaymentProviderRazorpay = "razorpay"
)

// Catalog defaults for farmer-listed products
const (
	DefaultProductImage    = "https://via.placeholder.com/150"
	DefaultProductLocation = "Local Farm"
	DefaultProductUnit     = "kg"
)

// NoPincodeGroup labels orders without a delivery pincode on the dashboard.
const NoPincodeGroup = "No Pincode"

// RefundMessage is attached when a prepaid order is cancelled.
const RefundMessage = "Refund will be processed within 2 business days."

// Event types published after commit
const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)
