// Package notify implements the notification publisher port. The current
// implementation writes structured log lines; push or queue delivery plugs in
// behind the same port.
package notify

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// SlogPublisher publishes transition messages as structured log records.
// Useful in development and as the default until a real delivery channel is
// configured.
type SlogPublisher struct {
	logger *slog.Logger
}

// NewSlogPublisher creates a log-backed publisher.
func NewSlogPublisher(logger *slog.Logger) *SlogPublisher {
	return &SlogPublisher{
		logger: logger.With("component", "notifications"),
	}
}

func (p *SlogPublisher) Publish(ctx context.Context, recipient tracking.Role,
	trackingID kernel.UUID, message string) error {
	p.logger.InfoContext(ctx, "notification",
		"recipient", recipient.String(),
		"tracking_id", trackingID.String(),
		"message", message)
	return nil
}
