package tracking_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
)

func TestTransitionMessage(t *testing.T) {
	t.Run("specific_messages_for_happy_path_pairs", func(t *testing.T) {
		pairs := []struct {
			from tracking.Status
			to   tracking.Status
		}{
			{tracking.StatusAssigned, tracking.StatusHeadingToPickup},
			{tracking.StatusHeadingToPickup, tracking.StatusAtPickup},
			{tracking.StatusAtPickup, tracking.StatusPickedUp},
			{tracking.StatusPickedUp, tracking.StatusHeadingToDelivery},
			{tracking.StatusHeadingToDelivery, tracking.StatusAtDelivery},
			{tracking.StatusAtDelivery, tracking.StatusDelivered},
		}

		seen := make(map[string]bool)
		for _, pair := range pairs {
			msg := tracking.TransitionMessage(pair.from, pair.to)
			assert.NotEmpty(t, msg)
			assert.NotContains(t, msg, "Delivery update:", "pair %s->%s should have a specific message", pair.from, pair.to)
			seen[msg] = true
		}
		assert.Len(t, seen, len(pairs), "messages must be distinct per pair")
	})

	t.Run("unregistered_pair_uses_fallback_with_description", func(t *testing.T) {
		msg := tracking.TransitionMessage(tracking.StatusPickedUp, tracking.StatusCancelled)

		assert.Equal(t, "Delivery update: cancelled.", msg)
	})
}

func TestEstimateToNext(t *testing.T) {
	t.Run("every_non_terminal_status_has_an_estimate", func(t *testing.T) {
		for _, s := range []tracking.Status{
			tracking.StatusAssigned,
			tracking.StatusHeadingToPickup,
			tracking.StatusAtPickup,
			tracking.StatusPickedUp,
			tracking.StatusHeadingToDelivery,
			tracking.StatusAtDelivery,
		} {
			assert.Positive(t, tracking.EstimateToNext(s, nil), "status %s", s)
		}
	})

	t.Run("terminal_statuses_estimate_to_zero", func(t *testing.T) {
		assert.Zero(t, tracking.EstimateToNext(tracking.StatusDelivered, nil))
		assert.Zero(t, tracking.EstimateToNext(tracking.StatusCancelled, nil))
	})

	t.Run("long_preparation_widens_pickup_leg_estimates", func(t *testing.T) {
		prep := 45 * time.Minute

		assert.Equal(t, prep, tracking.EstimateToNext(tracking.StatusAssigned, &prep))
		assert.Equal(t, prep, tracking.EstimateToNext(tracking.StatusAtPickup, &prep))
	})

	t.Run("short_preparation_keeps_the_baseline", func(t *testing.T) {
		prep := time.Minute

		assert.Equal(t, 5*time.Minute, tracking.EstimateToNext(tracking.StatusAssigned, &prep))
	})

	t.Run("preparation_does_not_affect_delivery_leg", func(t *testing.T) {
		prep := 45 * time.Minute

		assert.Equal(t, 15*time.Minute, tracking.EstimateToNext(tracking.StatusHeadingToDelivery, &prep))
	})
}
