package model

import "time"

// SoilTestBookingModel mirrors the 'soil_test_bookings' table.
type SoilTestBookingModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	BookingID     string `gorm:"type:varchar(32);uniqueIndex;not null"`
	Username      string `gorm:"type:varchar(100);index;not null"`
	FarmLocation  string `gorm:"type:text"`
	FarmSize      string `gorm:"type:varchar(100)"`
	ContactNumber string `gorm:"type:varchar(20)"`
	PreferredDate string `gorm:"type:varchar(32)"`
	TestType      string `gorm:"type:varchar(100)"`
	Status        string `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SoilTestBookingModel) TableName() string {
	return "soil_test_bookings"
}

// CustomerFeedbackModel mirrors the 'customer_feedback' table.
type CustomerFeedbackModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"type:varchar(255);not null"`
	Email      string `gorm:"type:varchar(255);not null"`
	Phone      string `gorm:"type:varchar(20)"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Message    string `gorm:"type:text"`
	PageSource string `gorm:"type:varchar(100);default:unknown"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerFeedbackModel) TableName() string {
	return "customer_feedback"
}
