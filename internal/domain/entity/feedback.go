package entity

import "time"

// DefaultPageSource is recorded when the client did not say where feedback came from.
const DefaultPageSource = "unknown"

// Feedback is a free-form site review, possibly anonymous.
type Feedback struct {
	ID         uint
	Name       string
	Email      string
	Phone      string
	Rating     int
	Message    string
	PageSource string
	CreatedAt  time.Time
}
