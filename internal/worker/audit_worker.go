package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/events"
)

// AuditWorker writes auth lifecycle events to the log stream so logins,
// revocations and password changes leave a trail.
type AuditWorker struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditWorker creates the worker.
func NewAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) *AuditWorker {
	return &AuditWorker{dispatcher: dispatcher, logger: logger}
}

// Start subscribes the audit handler to every auth event type.
func (w *AuditWorker) Start() {
	if w.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserLoggedIn,
		events.EventTokenRefreshed,
		events.EventTokenRevoked,
		events.EventPasswordChanged,
		events.EventPasswordReset,
	} {
		w.dispatcher.Subscribe(eventType, w.handle)
	}
}

func (w *AuditWorker) handle(_ context.Context, event events.Event) error {
	w.logger.Info("auth event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Int64("user_id", event.UserID),
		zap.String("username", event.Username),
		zap.Any("payload", event.Payload),
	)
	return nil
}
