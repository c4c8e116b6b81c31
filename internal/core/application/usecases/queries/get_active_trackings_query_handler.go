package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// GetActiveTrackingsQueryHandler retrieves in-flight tracking records from
// the database. Filters out terminal records to show the active delivery
// workload.
type GetActiveTrackingsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveTrackingsQueryHandler creates a handler for active-record
// queries. Requires a GORM database connection for query execution.
func NewGetActiveTrackingsQueryHandler(db *gorm.DB) GetActiveTrackingsQueryHandler {
	return GetActiveTrackingsQueryHandler{db: db}
}

// Handle executes the query. Records are sorted by creation time for
// consistent output.
func (h GetActiveTrackingsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveTrackingsQuery,
) ([]GetActiveTrackingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trackings := make([]GetActiveTrackingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			courier_id,
			status,
			version,
			last_message,
			updated_at
		FROM trackings
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, tracking.StatusDelivered.String(), tracking.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp                   GetActiveTrackingsQueryResponse
			id, orderID, courierID uuid.UUID
			status                 string
		)

		err = rows.Scan(&id, &orderID, &courierID, &status, &resp.Version,
			&resp.LastMessage, &resp.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
			return nil, err
		}
		if resp.Status, err = tracking.StatusFromString(status); err != nil {
			return nil, err
		}

		trackings = append(trackings, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trackings, nil
}
