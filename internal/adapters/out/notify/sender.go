// Package notify provides the fire-and-forget notification sender. The real
// customer-facing channels (email, push) live outside this service; this
// adapter records the event in the structured log where operators watch it.
package notify

import (
	"context"
	"log/slog"
)

// LogNotificationSender implements ports.NotificationSender on the
// structured log.
type LogNotificationSender struct {
	logger *slog.Logger
}

// NewLogNotificationSender creates a sender writing to logger.
func NewLogNotificationSender(logger *slog.Logger) *LogNotificationSender {
	return &LogNotificationSender{
		logger: logger.With("component", "notifications"),
	}
}

// Notify records one notification event.
func (s *LogNotificationSender) Notify(ctx context.Context, subject, message string) {
	s.logger.InfoContext(ctx, "notification", "subject", subject, "message", message)
}
