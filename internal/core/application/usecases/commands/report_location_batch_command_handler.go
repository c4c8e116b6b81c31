package commands

import (
	"context"
	"log/slog"
	"sort"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/metrics"
)

// ReportLocationBatchResult summarizes how a batch was processed.
type ReportLocationBatchResult struct {
	Accepted int
	Skipped  int
}

// ReportLocationBatchCommandHandler handles buffered position uploads.
// Samples are replayed oldest first so the record walks through the courier's
// actual path; malformed fixes are skipped with a log line, while failures of
// the mutation pipeline stop the batch.
type ReportLocationBatchCommandHandler struct {
	reports ReportLocationCommandHandler
	logger  *slog.Logger
}

// NewReportLocationBatchCommandHandler creates a handler for batch uploads.
func NewReportLocationBatchCommandHandler(reports ReportLocationCommandHandler,
	logger *slog.Logger) ReportLocationBatchCommandHandler {
	return ReportLocationBatchCommandHandler{
		reports: reports,
		logger:  logger.With("component", "report_location_batch"),
	}
}

// Handle processes the batch. Returns how many samples were accepted and how
// many were skipped as malformed. A pipeline error mid-batch returns the
// partial result along with the error; already accepted samples stay
// committed.
func (h *ReportLocationBatchCommandHandler) Handle(ctx context.Context,
	cmd ReportLocationBatchCommand) (ReportLocationBatchResult, error) {
	var result ReportLocationBatchResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	samples := make([]kernel.LocationSample, 0, len(cmd.Samples()))
	for i, raw := range cmd.Samples() {
		sample, err := kernel.NewLocationSample(raw)
		if err != nil {
			result.Skipped++
			metrics.LocationSamplesTotal.WithLabelValues("skipped").Inc()
			h.logger.WarnContext(ctx, "skipping malformed sample",
				"tracking_id", cmd.TrackingID().String(),
				"index", i,
				"error", err)
			continue
		}

		samples = append(samples, sample)
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].CapturedAt().Before(samples[j].CapturedAt())
	})

	for i := range samples {
		reportCmd, err := NewReportLocationCommand(cmd.TrackingID(), kernel.NewUUID(), &samples[i])
		if err != nil {
			return result, err
		}

		if err = h.reports.Handle(ctx, reportCmd); err != nil {
			return result, err
		}

		result.Accepted++
	}

	return result, nil
}
