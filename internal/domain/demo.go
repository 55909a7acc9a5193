package domain

import "time"

// Demo is the placeholder resource exposed under /api/v1/demos.
type Demo struct {
	ID        int64
	CreatedAt time.Time
}
