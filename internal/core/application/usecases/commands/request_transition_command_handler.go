package commands

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/metrics"
)

// RequestTransitionCommandHandler handles lifecycle transition requests.
// Resolves the requested action against the transition policy, commits the
// state change through the race-safe pipeline and publishes the resulting
// message to the merchant and the customer.
type RequestTransitionCommandHandler struct {
	committer Committer
	policy    tracking.TransitionPolicy
	publisher ports.NotificationPublisher
	clock     ports.Clock
	logger    *slog.Logger
}

// NewRequestTransitionCommandHandler creates a handler for transition requests.
func NewRequestTransitionCommandHandler(committer Committer, policy tracking.TransitionPolicy,
	publisher ports.NotificationPublisher, clock ports.Clock,
	logger *slog.Logger) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		committer: committer,
		policy:    policy,
		publisher: publisher,
		clock:     clock,
		logger:    logger.With("component", "request_transition"),
	}
}

// Handle processes the transition request. Policy resolution and the state
// change commit atomically; a replayed operation id returns success without
// repeating the transition or its notifications.
func (h *RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, replayed, err := h.committer.Commit(ctx, cmd.TrackingID(), cmd.OperationID(),
		cmd.ExpectedVersion(), func(t *tracking.DeliveryTracking) (string, error) {
			from := t.Status()
			target, resolveErr := h.policy.Resolve(from, cmd.Action(), cmd.Role())
			if resolveErr != nil {
				return "", resolveErr
			}

			if applyErr := t.ApplyTransition(target, cmd.Trigger(), h.clock.Now()); applyErr != nil {
				return "", applyErr
			}

			return tracking.TransitionMessage(from, target), nil
		})
	if err != nil {
		return err
	}
	if replayed {
		h.logger.InfoContext(ctx, "transition replayed",
			"tracking_id", cmd.TrackingID().String(),
			"operation_id", cmd.OperationID().String())
		return nil
	}

	metrics.TransitionsTotal.WithLabelValues(cmd.Trigger().String(), t.Status().String()).Inc()
	h.logger.InfoContext(ctx, "transition committed",
		"tracking_id", t.ID().String(),
		"status", t.Status().String(),
		"version", t.Version(),
		"trigger", cmd.Trigger().String())

	h.notify(ctx, t)
	return nil
}

// notify is best effort: the state change is already durable, so delivery
// problems are logged and surfaced through metrics rather than failing the
// request.
func (h *RequestTransitionCommandHandler) notify(ctx context.Context, t *tracking.DeliveryTracking) {
	for _, recipient := range []tracking.Role{tracking.RoleCustomer, tracking.RoleMerchant} {
		if err := h.publisher.Publish(ctx, recipient, t.ID(), t.LastMessage()); err != nil {
			h.logger.WarnContext(ctx, "notification publish failed",
				"tracking_id", t.ID().String(),
				"recipient", recipient.String(),
				"error", err)
			continue
		}

		metrics.NotificationsTotal.WithLabelValues(recipient.String()).Inc()
	}
}
