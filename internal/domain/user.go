package domain

import "time"

// User is the domain model for an account that can authenticate.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
