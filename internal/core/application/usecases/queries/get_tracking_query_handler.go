package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"
)

// GetTrackingQueryHandler retrieves a single tracking record from the
// database, history included, and enriches it with derived fields: the ETA
// estimate for the current leg and the actions the caller's role may request.
type GetTrackingQueryHandler struct {
	db     *gorm.DB
	policy tracking.TransitionPolicy
}

// NewGetTrackingQueryHandler creates a handler for single-record queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingQueryHandler(db *gorm.DB, policy tracking.TransitionPolicy) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db, policy: policy}
}

// Handle executes the query. Returns *errs.ObjectNotFoundError when no record
// exists for the requested id.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	var response GetTrackingQueryResponse

	if err := query.Validate(); err != nil {
		return response, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			courier_id,
			status,
			version,
			last_message,
			location_latitude,
			location_longitude,
			location_accuracy,
			location_altitude,
			location_heading,
			location_speed,
			location_captured_at,
			pickup_latitude,
			pickup_longitude,
			delivery_latitude,
			delivery_longitude,
			created_at,
			updated_at
		FROM trackings
		WHERE id = ?
	`, query.TrackingID().Bytes()).Rows()
	if err != nil {
		return response, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return response, err
		}
		return response, errs.NewObjectNotFoundError("tracking", query.TrackingID().String())
	}

	var (
		id, orderID, courierID   uuid.UUID
		status                   string
		locLat, locLng, accuracy *float64
		altitude, heading, speed *float64
		capturedAt               *time.Time
		pickupLat, pickupLng     float64
		deliveryLat, deliveryLng float64
	)

	err = rows.Scan(
		&id, &orderID, &courierID,
		&status, &response.Version, &response.LastMessage,
		&locLat, &locLng, &accuracy, &altitude, &heading, &speed, &capturedAt,
		&pickupLat, &pickupLng, &deliveryLat, &deliveryLng,
		&response.CreatedAt, &response.UpdatedAt,
	)
	if err != nil {
		return response, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return response, err
	}
	if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return response, err
	}
	if response.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return response, err
	}
	if response.Status, err = tracking.StatusFromString(status); err != nil {
		return response, err
	}

	response.Pickup = GeoPointView{Latitude: pickupLat, Longitude: pickupLng}
	response.Delivery = GeoPointView{Latitude: deliveryLat, Longitude: deliveryLng}

	if locLat != nil && locLng != nil && capturedAt != nil {
		response.CurrentLocation = &LocationView{
			Latitude:   *locLat,
			Longitude:  *locLng,
			Accuracy:   accuracy,
			Altitude:   altitude,
			Heading:    heading,
			Speed:      speed,
			CapturedAt: *capturedAt,
		}
	}

	response.EstimatedToNext = tracking.EstimateToNext(response.Status, nil)
	response.AllowedActions = h.policy.AllowedActions(response.Status, query.Role())

	if response.History, err = h.loadHistory(ctx, query.TrackingID()); err != nil {
		return response, err
	}

	return response, nil
}

func (h GetTrackingQueryHandler) loadHistory(ctx context.Context, id kernel.UUID) ([]TransitionView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			fired_by,
			occurred_at
		FROM tracking_transitions
		WHERE tracking_id = ?
		ORDER BY seq
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TransitionView, 0)
	for rows.Next() {
		var (
			view              TransitionView
			from, to, firedBy string
		)

		if err = rows.Scan(&from, &to, &firedBy, &view.At); err != nil {
			return nil, err
		}

		if view.From, err = tracking.StatusFromString(from); err != nil {
			return nil, err
		}
		if view.To, err = tracking.StatusFromString(to); err != nil {
			return nil, err
		}
		if view.Trigger, err = tracking.TriggerFromString(firedBy); err != nil {
			return nil, err
		}

		history = append(history, view)
	}

	return history, rows.Err()
}
