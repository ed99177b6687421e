// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no account has the username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserDetailsNotFound is returned when an account has no details row.
	ErrUserDetailsNotFound = errors.New("user details not found")
)

// UserRepository persists accounts and their contact details.
type UserRepository interface {
	// FindByUsername retrieves the credentials of an account.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new account. A taken username yields ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// FindDetails retrieves the contact details of an account.
	FindDetails(ctx context.Context, username string) (*entity.UserDetails, error)

	// FindDetailsByUsernames loads details for many accounts at once, keyed by username.
	// Unknown usernames are simply absent from the result.
	FindDetailsByUsernames(ctx context.Context, usernames []string) (map[string]*entity.UserDetails, error)

	// CreateDetails persists the details row created at signup.
	CreateDetails(ctx context.Context, details *entity.UserDetails) error

	// UpdateContact replaces name, address, pincode and phone.
	UpdateContact(ctx context.Context, details *entity.UserDetails) error
}
