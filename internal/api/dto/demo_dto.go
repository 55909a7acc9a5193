package dto

import "time"

// DemoResponse is the wire form of a demo record.
type DemoResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
