package entity

import "time"

// FarmerNotification tells a farmer that one of their products was ordered.
type FarmerNotification struct {
	ID               uint
	FarmerUsername   string
	OrderID          uint
	ProductID        string
	ProductName      string
	Quantity         int
	Price            float64
	CustomerUsername string
	CustomerName     string
	Status           OrderStatus
	Read             bool
	CreatedAt        time.Time
}
