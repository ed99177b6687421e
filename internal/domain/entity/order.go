package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal is true once an order can no longer change.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Payment methods
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "Online"
)

// Order is a placed purchase with a snapshot of the delivery details at placement time.
type Order struct {
	ID            uint
	OrderNumber   string
	Username      string
	Name          string
	Address       string
	Pincode       string
	Phone         string
	TotalAmount   float64
	Status        OrderStatus
	PaymentMethod string
	PaymentID     string
	OTP           string
	CreatedAt     time.Time
	Items         []*OrderItem
}

// IsPrepaid reports whether money was collected up front.
func (o *Order) IsPrepaid() bool {
	return o.PaymentMethod == PaymentMethodOnline
}

// OrderItem is one line of an order. ProductID refers to a catalog entry and is not enforced.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   string
	ProductName string
	Quantity    int
	Price       float64
}

// OrderSummary is an order with its line count, as listed on a profile.
type OrderSummary struct {
	Order     *Order
	ItemCount int
}

// CartItem is one entry of a client-side cart.
type CartItem struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
}

// EffectiveQuantity treats a missing quantity as one unit.
func (c CartItem) EffectiveQuantity() int {
	if c.Quantity <= 0 {
		return 1
	}

	return c.Quantity
}

// CartTotal sums price times quantity over the cart.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.EffectiveQuantity())
	}

	return total
}
