package model

import "time"

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	OrderNumber   string `gorm:"type:varchar(32);uniqueIndex;not null"`
	Username      string `gorm:"type:varchar(100);index;not null"`
	Name          string `gorm:"type:varchar(255)"`
	Address       string `gorm:"type:text"`
	Pincode       string `gorm:"type:varchar(10);index"`
	Phone         string `gorm:"type:varchar(20)"`
	TotalAmount   float64
	Status        string `gorm:"type:varchar(20);not null;default:pending"`
	PaymentMethod string `gorm:"type:varchar(20)"`
	PaymentID     string `gorm:"type:varchar(100)"`
	OTP           string `gorm:"column:otp;type:varchar(10)"`
	CreatedAt     time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	OrderID     uint   `gorm:"index;not null"`
	ProductID   string `gorm:"type:varchar(64);index"`
	ProductName string `gorm:"type:varchar(255)"`
	Quantity    int
	Price       float64
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// FarmerOrderNotificationModel mirrors the 'farmer_order_notifications' table.
type FarmerOrderNotificationModel struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	FarmerUsername   string `gorm:"type:varchar(100);index;not null"`
	OrderID          uint   `gorm:"index;not null"`
	ProductID        string `gorm:"type:varchar(64)"`
	ProductName      string `gorm:"type:varchar(255)"`
	Quantity         int
	Price            float64
	CustomerUsername string `gorm:"type:varchar(100)"`
	CustomerName     string `gorm:"type:varchar(255)"`
	Status           string `gorm:"type:varchar(20)"`
	ReadStatus       bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (FarmerOrderNotificationModel) TableName() string {
	return "farmer_order_notifications"
}
