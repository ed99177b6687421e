// Package entity contains the core business objects of the marketplace.
package entity

import (
	"regexp"
	"time"
)

// LoginType is chosen at signup and decides which storefront pages a user lands on.
type LoginType string

const (
	LoginTypeCustomer LoginType = "customer"
	LoginTypeFarmer   LoginType = "farmer"
)

// ParseLoginType maps free-form signup input onto a known login type, defaulting to customer.
func ParseLoginType(s string) LoginType {
	if LoginType(s) == LoginTypeFarmer {
		return LoginTypeFarmer
	}

	return LoginTypeCustomer
}

var (
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
)

// User is an account that can log in. Credentials only; contact data lives in UserDetails.
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserDetails is the delivery and contact profile keyed by username.
type UserDetails struct {
	ID        uint
	Username  string
	Name      string
	Address   string
	Pincode   string
	Phone     string
	LoginType LoginType
}

// IsFarmer reports whether the account sells on the marketplace.
func (d *UserDetails) IsFarmer() bool {
	return d != nil && d.LoginType == LoginTypeFarmer
}

// HasDeliveryDetails reports whether an order can be shipped to this profile.
func (d *UserDetails) HasDeliveryDetails() bool {
	return d != nil && d.Name != "" && d.Address != "" && d.Phone != "" && d.Pincode != ""
}

// DisplayName falls back to the username when no name was given.
func (d *UserDetails) DisplayName() string {
	if d == nil {
		return ""
	}
	if d.Name != "" {
		return d.Name
	}

	return d.Username
}

// IsValidPincode checks for a six digit postal code.
func IsValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}

// IsValidPhone checks for a ten digit phone number.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
