package entity

// Admin notification types
const (
	AdminNotificationNewFarmer = "new_farmer"
	AdminNotificationSoilTest  = "soil_test"
)

// AdminNotification is an entry in the field admin inbox.
type AdminNotification struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
	BookingID string `json:"booking_id,omitempty"`
	TestType  string `json:"test_type,omitempty"`
}
