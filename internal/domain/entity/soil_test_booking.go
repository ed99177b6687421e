package entity

import "time"

// SoilTestStatus is the state of a soil test booking.
type SoilTestStatus string

const (
	SoilTestPending   SoilTestStatus = "pending"
	SoilTestConfirmed SoilTestStatus = "confirmed"
	SoilTestCompleted SoilTestStatus = "completed"
	SoilTestCancelled SoilTestStatus = "cancelled"
)

// IsValid checks if the status is one of the known values.
func (s SoilTestStatus) IsValid() bool {
	switch s {
	case SoilTestPending, SoilTestConfirmed, SoilTestCompleted, SoilTestCancelled:
		return true
	default:
		return false
	}
}

// SoilTestBooking is a farmer's request for a field soil test.
type SoilTestBooking struct {
	ID            uint
	BookingID     string
	Username      string
	FarmLocation  string
	FarmSize      string
	ContactNumber string
	PreferredDate string
	TestType      string
	Status        SoilTestStatus
	CreatedAt     time.Time
	// FarmerName is filled on admin listings only.
	FarmerName string
}
