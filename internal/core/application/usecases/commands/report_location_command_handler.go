package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/metrics"
)

// DefaultAutoTransitionDebounce is the minimum spacing between automatic
// transitions fired for the same record. GPS fixes arrive every few seconds;
// without the window a courier idling on a geofence edge could hammer the
// mutation pipeline.
const DefaultAutoTransitionDebounce = 15 * time.Second

// ReportLocationCommandHandler handles courier position reports. Each
// accepted sample updates the record's current location through the mutation
// pipeline, then runs geofence evaluation: a sustained, debounced in-zone
// signal turns into an automatic arrival transition.
type ReportLocationCommandHandler struct {
	committer   Committer
	evaluator   *services.GeofenceEvaluator
	throttle    ports.ProposalThrottle
	transitions RequestTransitionCommandHandler
	logger      *slog.Logger
	debounce    time.Duration
}

// NewReportLocationCommandHandler creates a handler for location reports.
// A non-positive debounce falls back to DefaultAutoTransitionDebounce.
func NewReportLocationCommandHandler(committer Committer, evaluator *services.GeofenceEvaluator,
	throttle ports.ProposalThrottle, transitions RequestTransitionCommandHandler,
	logger *slog.Logger, debounce time.Duration) ReportLocationCommandHandler {
	if debounce <= 0 {
		debounce = DefaultAutoTransitionDebounce
	}

	return ReportLocationCommandHandler{
		committer:   committer,
		evaluator:   evaluator,
		throttle:    throttle,
		transitions: transitions,
		logger:      logger.With("component", "report_location"),
		debounce:    debounce,
	}
}

// Handle processes a single position report. Heartbeats (nil sample) succeed
// without touching the record. Geofence follow-up runs after the location
// commit; its failures never undo the accepted sample.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sample := cmd.Sample()
	if sample == nil {
		return nil
	}

	t, replayed, err := h.committer.Commit(ctx, cmd.TrackingID(), cmd.OperationID(),
		UseCurrentVersion, func(t *tracking.DeliveryTracking) (string, error) {
			if updateErr := t.UpdateLocation(*sample); updateErr != nil {
				return "", updateErr
			}

			return t.LastMessage(), nil
		})
	if err != nil {
		metrics.LocationSamplesTotal.WithLabelValues("rejected").Inc()
		return err
	}
	if replayed {
		metrics.LocationSamplesTotal.WithLabelValues("replayed").Inc()
		return nil
	}

	metrics.LocationSamplesTotal.WithLabelValues("accepted").Inc()

	h.evaluateGeofence(ctx, t, *sample)
	return nil
}

// evaluateGeofence turns a committed sample into an automatic transition when
// the in-zone signal has been confirmed and the debounce window is free.
// Rejections by the transition policy are logged and dropped: the record
// moved on while the proposal was in flight.
func (h *ReportLocationCommandHandler) evaluateGeofence(ctx context.Context,
	t *tracking.DeliveryTracking, sample kernel.LocationSample) {
	if t.IsTerminal() {
		return
	}

	proposal, err := h.evaluator.Evaluate(t.Status(), sample.Point(), t.PickupLocation(), t.DeliveryLocation())
	if err != nil {
		h.logger.WarnContext(ctx, "geofence evaluation failed",
			"tracking_id", t.ID().String(), "error", err)
		return
	}

	if proposal == nil {
		h.resetConfirmations(ctx, t.ID())
		return
	}

	confirmed, err := h.throttle.Confirm(ctx, t.ID(), proposal.Action, sample.CapturedAt())
	if err != nil {
		h.logger.WarnContext(ctx, "geofence confirmation failed",
			"tracking_id", t.ID().String(), "error", err)
		return
	}
	if !confirmed {
		return
	}

	allowed, err := h.throttle.Allow(ctx, t.ID(), h.debounce)
	if err != nil {
		h.logger.WarnContext(ctx, "geofence debounce check failed",
			"tracking_id", t.ID().String(), "error", err)
		return
	}
	if !allowed {
		return
	}

	transitionCmd, err := NewRequestTransitionCommand(t.ID(), kernel.NewUUID(),
		proposal.Action, tracking.RoleDelivery, UseCurrentVersion, tracking.TriggerAutomatic)
	if err != nil {
		h.logger.ErrorContext(ctx, "building automatic transition failed",
			"tracking_id", t.ID().String(), "error", err)
		return
	}

	if err = h.transitions.Handle(ctx, transitionCmd); err != nil {
		var illegal *tracking.IllegalTransitionError
		switch {
		case errors.As(err, &illegal):
			h.logger.InfoContext(ctx, "automatic transition rejected by policy",
				"tracking_id", t.ID().String(),
				"action", proposal.Action.String(),
				"reason", proposal.Reason)
		case tracking.IsRetryable(err):
			h.logger.InfoContext(ctx, "automatic transition lost the race",
				"tracking_id", t.ID().String(),
				"action", proposal.Action.String(),
				"error", err)
		default:
			h.logger.WarnContext(ctx, "automatic transition failed",
				"tracking_id", t.ID().String(),
				"action", proposal.Action.String(),
				"error", err)
		}
		return
	}

	h.logger.InfoContext(ctx, "automatic transition committed",
		"tracking_id", t.ID().String(),
		"action", proposal.Action.String(),
		"reason", proposal.Reason)
}

// resetConfirmations clears pending in-zone confirmations once a sample lands
// outside every geofence, so re-entry starts a fresh window.
func (h *ReportLocationCommandHandler) resetConfirmations(ctx context.Context, trackingID kernel.UUID) {
	for _, action := range []tracking.Action{tracking.ActionArrivePickup, tracking.ActionArriveDelivery} {
		if err := h.throttle.Reset(ctx, trackingID, action); err != nil {
			h.logger.WarnContext(ctx, "confirmation reset failed",
				"tracking_id", trackingID.String(),
				"action", action.String(),
				"error", err)
		}
	}
}
