package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// NotificationPublisher delivers transition messages to the parties affected
// by a lifecycle change. Publishing happens after the mutation is committed,
// so implementations must tolerate at-least-once delivery.
type NotificationPublisher interface {
	// Publish sends a message about the given tracking record to a recipient
	// role. Implementations decide the actual channel (push, log, queue).
	Publish(ctx context.Context, recipient tracking.Role, trackingID kernel.UUID, message string) error
}
