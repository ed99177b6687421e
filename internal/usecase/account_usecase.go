// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"agriconnect/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to open a marketplace account.
type SignupInput struct {
	Name      string
	Username  string
	Password  string
	Address   string
	Phone     string
	Pincode   string
	LoginType entity.LoginType
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// UpdateDetailsInput replaces the contact details of an account.
type UpdateDetailsInput struct {
	Name    string
	Address string
	Pincode string
	Phone   string
}

// --- Output DTOs ---

// AuthOutput is returned by signup and login. Redirect is the landing page for the role.
type AuthOutput struct {
	Principal   entity.Principal
	LoginType   entity.LoginType
	Details     *entity.UserDetails
	AccessToken string
	ExpiresIn   time.Duration
	Redirect    string
}

// ProfileOutput is the account page: details, order history and statistics.
type ProfileOutput struct {
	Details         *entity.UserDetails
	Orders          []*entity.OrderSummary
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	TotalSpent      float64
	// MemberSince is the earliest order time, zero when there are no orders.
	MemberSince time.Time
	SoilTests   []*entity.SoilTestBooking
}

// AccountUsecase defines account and profile operations.
type AccountUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	// Me returns the contact details of the caller. Console accounts get a synthetic profile.
	Me(ctx context.Context, principal *entity.Principal) (*entity.UserDetails, error)
	UpdateDetails(ctx context.Context, username string, input *UpdateDetailsInput) error
	Profile(ctx context.Context, principal *entity.Principal) (*ProfileOutput, error)
}
