package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn    EventType = "user_logged_in"
	EventTokenRefreshed  EventType = "token_refreshed"
	EventTokenRevoked    EventType = "token_revoked"
	EventPasswordChanged EventType = "password_changed"
	EventPasswordReset   EventType = "password_reset"
)

// Event represents an auth lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TokenRevokedPayload payload.
type TokenRevokedPayload struct {
	JTI  string `json:"jti"`
	Kind string `json:"kind"`
}

// PasswordResetPayload payload.
type PasswordResetPayload struct {
	TargetUsername string `json:"target_username"`
}
