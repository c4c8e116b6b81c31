package http

import (
	"errors"
	"net/http"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/generated/servers"
	"tracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createTrackingHandler      commands.CreateTrackingCommandHandler
	requestTransitionHandler   commands.RequestTransitionCommandHandler
	reportLocationHandler      commands.ReportLocationCommandHandler
	reportLocationBatchHandler commands.ReportLocationBatchCommandHandler

	// Query handlers
	getTrackingHandler        queries.GetTrackingQueryHandler
	getActiveTrackingsHandler queries.GetActiveTrackingsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createTrackingHandler commands.CreateTrackingCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	reportLocationBatchHandler commands.ReportLocationBatchCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getActiveTrackingsHandler queries.GetActiveTrackingsQueryHandler,
) *Server {
	return &Server{
		createTrackingHandler:      createTrackingHandler,
		requestTransitionHandler:   requestTransitionHandler,
		reportLocationHandler:      reportLocationHandler,
		reportLocationBatchHandler: reportLocationBatchHandler,
		getTrackingHandler:         getTrackingHandler,
		getActiveTrackingsHandler:  getActiveTrackingsHandler,
	}
}

// CreateTracking handles POST /api/v1/trackings - opens a tracking record.
func (s *Server) CreateTracking(ctx echo.Context) error {
	var newTracking servers.NewTracking
	if err := ctx.Bind(&newTracking); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromBytes(newTracking.OrderId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}
	courierID, err := kernel.UUIDFromBytes(newTracking.CourierId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id: " + err.Error(),
		})
	}

	pickup, err := kernel.NewGeoPoint(newTracking.Pickup.Latitude, newTracking.Pickup.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid pickup point: " + err.Error(),
		})
	}
	delivery, err := kernel.NewGeoPoint(newTracking.Delivery.Latitude, newTracking.Delivery.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid delivery point: " + err.Error(),
		})
	}

	trackingID := kernel.NewUUID()

	cmd, err := commands.NewCreateTrackingCommand(trackingID, orderID, courierID, pickup, delivery)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking data: " + err.Error(),
		})
	}

	if handleErr := s.createTrackingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, servers.TrackingCreated{Id: trackingID.Bytes()})
}

// GetTracking handles GET /api/v1/trackings/{trackingId} - retrieves one
// tracking record with its transition history. The optional X-Caller-Role
// header shapes the allowed actions in the response; callers that omit it
// are treated as customers.
func (s *Server) GetTracking(ctx echo.Context, trackingId openapi_types.UUID,
	params servers.GetTrackingParams) error {
	role := tracking.RoleCustomer
	if params.XCallerRole != nil {
		parsed, err := tracking.RoleFromString(string(*params.XCallerRole))
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid caller role: " + err.Error(),
			})
		}
		role = parsed
	}

	trackingID, err := kernel.UUIDFromBytes(trackingId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id: " + err.Error(),
		})
	}

	query, err := queries.NewGetTrackingQuery(trackingID, role)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	record, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingResponse(record))
}

// GetActiveTrackings handles GET /api/v1/trackings/active - retrieves all
// trackings that have not reached a terminal status.
func (s *Server) GetActiveTrackings(ctx echo.Context) error {
	query := queries.NewGetActiveTrackingsQuery()

	records, err := s.getActiveTrackingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve trackings",
		})
	}

	response := make([]servers.ActiveTracking, len(records))
	for i, record := range records {
		response[i] = servers.ActiveTracking{
			Id:        record.ID.Bytes(),
			OrderId:   record.OrderID.Bytes(),
			CourierId: record.CourierID.Bytes(),
			Status:    record.Status.String(),
			Version:   record.Version,
			UpdatedAt: record.UpdatedAt,
		}
		if record.LastMessage != "" {
			message := record.LastMessage
			response[i].LastMessage = &message
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RequestTransition handles POST /api/v1/trackings/{trackingId}/transitions -
// requests a lifecycle transition on behalf of the caller named in the
// required X-Caller-Role header.
func (s *Server) RequestTransition(ctx echo.Context, trackingId openapi_types.UUID,
	params servers.RequestTransitionParams) error {
	role, err := tracking.RoleFromString(string(params.XCallerRole))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid caller role: " + err.Error(),
		})
	}

	var request servers.TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	action, err := tracking.ActionFromString(string(request.Action))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid action: " + err.Error(),
		})
	}

	trackingID, err := kernel.UUIDFromBytes(trackingId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id: " + err.Error(),
		})
	}
	operationID, err := kernel.UUIDFromBytes(request.OperationId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid operation id: " + err.Error(),
		})
	}

	cmd, err := commands.NewRequestTransitionCommand(trackingID, operationID, action, role,
		request.ExpectedVersion, tracking.TriggerManual)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid transition request: " + err.Error(),
		})
	}

	if handleErr := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeDomainError(ctx, handleErr)
	}

	// Commands report nothing back; read the committed state for the response.
	query, err := queries.NewGetTrackingQuery(trackingID, role)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to read tracking state",
		})
	}
	record, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.TransitionResult{
		Status:  record.Status.String(),
		Version: record.Version,
		Message: record.LastMessage,
	})
}

// ReportLocation handles POST /api/v1/trackings/{trackingId}/locations -
// accepts a single courier position fix (or a heartbeat without one).
func (s *Server) ReportLocation(ctx echo.Context, trackingId openapi_types.UUID) error {
	var report servers.LocationReport
	if err := ctx.Bind(&report); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	trackingID, err := kernel.UUIDFromBytes(trackingId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id: " + err.Error(),
		})
	}
	operationID, err := kernel.UUIDFromBytes(report.OperationId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid operation id: " + err.Error(),
		})
	}

	var sample *kernel.LocationSample
	if report.Sample != nil {
		validated, sampleErr := kernel.NewLocationSample(toRawSample(*report.Sample))
		if sampleErr != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid location sample: " + sampleErr.Error(),
			})
		}
		sample = &validated
	}

	cmd, err := commands.NewReportLocationCommand(trackingID, operationID, sample)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid location report: " + err.Error(),
		})
	}

	if handleErr := s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ReportLocationBatch handles POST /api/v1/trackings/{trackingId}/locations/batch -
// accepts buffered position fixes collected while the courier device was offline.
func (s *Server) ReportLocationBatch(ctx echo.Context, trackingId openapi_types.UUID) error {
	var batch servers.LocationBatch
	if err := ctx.Bind(&batch); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	trackingID, err := kernel.UUIDFromBytes(trackingId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id: " + err.Error(),
		})
	}

	raws := make([]kernel.RawLocationSample, len(batch.Samples))
	for i, sample := range batch.Samples {
		raws[i] = toRawSample(sample)
	}

	cmd, err := commands.NewReportLocationBatchCommand(trackingID, raws)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid batch: " + err.Error(),
		})
	}

	result, handleErr := s.reportLocationBatchHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return s.writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, servers.BatchResult{
		Accepted: result.Accepted,
		Skipped:  result.Skipped,
	})
}

// writeDomainError maps use case failures onto HTTP statuses: missing records
// are 404, version and lifecycle conflicts are 409, a record held by another
// in-flight operation is 423, anything else is 500.
func (s *Server) writeDomainError(ctx echo.Context, err error) error {
	var notFoundErr *errs.ObjectNotFoundError
	var versionErr *tracking.VersionConflictError
	var inProgressErr *tracking.OperationInProgressError
	var illegalErr *tracking.IllegalTransitionError
	var terminalErr *tracking.TerminalStateError
	var invalidErr *errs.ValueIsInvalidError

	switch {
	case errors.As(err, &notFoundErr):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.As(err, &versionErr), errors.As(err, &illegalErr), errors.As(err, &terminalErr):
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &inProgressErr):
		return ctx.JSON(http.StatusLocked, servers.Error{
			Code:    http.StatusLocked,
			Message: err.Error(),
		})
	case errors.As(err, &invalidErr):
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func toRawSample(sample servers.LocationSample) kernel.RawLocationSample {
	latitude := sample.Latitude
	longitude := sample.Longitude

	return kernel.RawLocationSample{
		Latitude:   &latitude,
		Longitude:  &longitude,
		Accuracy:   sample.Accuracy,
		Altitude:   sample.Altitude,
		Heading:    sample.Heading,
		Speed:      sample.Speed,
		CapturedAt: sample.CapturedAt,
	}
}

func toTrackingResponse(record queries.GetTrackingQueryResponse) servers.Tracking {
	actions := make([]string, len(record.AllowedActions))
	for i, action := range record.AllowedActions {
		actions[i] = action.String()
	}

	history := make([]servers.TransitionRecord, len(record.History))
	for i, entry := range record.History {
		history[i] = servers.TransitionRecord{
			From:    entry.From.String(),
			To:      entry.To.String(),
			Trigger: entry.Trigger.String(),
			At:      entry.At,
		}
	}

	response := servers.Tracking{
		Id:        record.ID.Bytes(),
		OrderId:   record.OrderID.Bytes(),
		CourierId: record.CourierID.Bytes(),
		Status:    record.Status.String(),
		Version:   record.Version,
		Pickup: servers.GeoPoint{
			Latitude:  record.Pickup.Latitude,
			Longitude: record.Pickup.Longitude,
		},
		Delivery: servers.GeoPoint{
			Latitude:  record.Delivery.Latitude,
			Longitude: record.Delivery.Longitude,
		},
		EstimatedSecondsToNext: int64(record.EstimatedToNext.Seconds()),
		AllowedActions:         actions,
		History:                history,
		CreatedAt:              record.CreatedAt,
		UpdatedAt:              record.UpdatedAt,
	}

	if record.LastMessage != "" {
		message := record.LastMessage
		response.LastMessage = &message
	}
	if record.CurrentLocation != nil {
		response.CurrentLocation = &servers.LocationSample{
			Latitude:   record.CurrentLocation.Latitude,
			Longitude:  record.CurrentLocation.Longitude,
			Accuracy:   record.CurrentLocation.Accuracy,
			Altitude:   record.CurrentLocation.Altitude,
			Heading:    record.CurrentLocation.Heading,
			Speed:      record.CurrentLocation.Speed,
			CapturedAt: record.CurrentLocation.CapturedAt,
		}
	}

	return response
}
