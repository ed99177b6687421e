// Package service defines interfaces for core, stateless domain logic and
// for the outside systems the marketplace talks to.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool
}
