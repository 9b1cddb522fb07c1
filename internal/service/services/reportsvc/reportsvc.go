package reportsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/payreport/internal/dal/interfaces/ireportrepo"
	"github.com/corray333/backend-labs/payreport/internal/dal/storeerr"
	"github.com/corray333/backend-labs/payreport/internal/metrics"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ReportService runs the successful payments report.
type ReportService struct {
	reportRepo ireportrepo.IReportRepository
	metrics    *metrics.Metrics
}

// option is a function that configures the ReportService.
type option func(*ReportService)

// MustNewReportService creates a new ReportService.
func MustNewReportService(opts ...option) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.reportRepo == nil {
		panic("report service requires a report repository")
	}

	return s
}

// WithReportRepository sets the report repository for the ReportService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithReportRepository(reportRepo ireportrepo.IReportRepository) option {
	return func(s *ReportService) {
		s.reportRepo = reportRepo
	}
}

// WithMetrics sets the metrics the ReportService records into.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Metrics) option {
	return func(s *ReportService) {
		s.metrics = m
	}
}

// Run executes the report once. Store errors are returned unchanged.
func (s *ReportService) Run(ctx context.Context) ([]report.Row, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "ReportService.Run")
	defer span.End()

	start := time.Now()
	rows, err := s.reportRepo.Query(ctx)
	if err != nil {
		kind := storeerr.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		slog.Error("Failed to run payment report", "error", err, "kind", kind.String())

		return nil, err
	}
	took := time.Since(start)

	s.metrics.ObserveReport(len(rows), took)
	span.SetAttributes(attribute.Int("report.rows", len(rows)))
	slog.Info("Payment report ready", "rows", len(rows), "took", took)

	return rows, nil
}
