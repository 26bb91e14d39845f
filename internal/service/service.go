package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/crime-report-service/internal/domain"
	"github.com/couchcryptid/crime-report-service/internal/observability"
)

// ErrUpstream wraps failures fetching incidents from the crime-data provider.
var ErrUpstream = errors.New("fetch incidents")

// IncidentSource fetches incident records around a point.
type IncidentSource interface {
	FetchIncidents(ctx context.Context, q domain.Query) ([]domain.RawIncident, error)
}

// ReportPublisher delivers generated reports downstream.
type ReportPublisher interface {
	Publish(ctx context.Context, event domain.ReportEvent) error
}

// Service answers crime report queries: fetch, aggregate, publish.
type Service struct {
	source     IncidentSource
	aggregator *domain.Aggregator
	publisher  ReportPublisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	degraded   atomic.Bool
}

// New creates a Service. Pass a nil publisher to skip publishing.
func New(source IncidentSource, aggregator *domain.Aggregator, publisher ReportPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:     source,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns an error while the most recent upstream fetch has failed.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.degraded.Load() {
		return errors.New("crime data provider is failing")
	}
	return nil
}

// CheckCrime builds a crime report for the incidents around q.
func (s *Service) CheckCrime(ctx context.Context, q domain.Query) (domain.CrimeReport, error) {
	if err := q.Validate(); err != nil {
		return domain.CrimeReport{}, err
	}

	start := time.Now()
	incidents, err := s.source.FetchIncidents(ctx, q)
	if err != nil {
		if ctx.Err() == nil {
			s.degraded.Store(true)
		}
		s.logger.Error("fetch incidents failed", "query", q.Key(), "error", err)
		return domain.CrimeReport{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	s.degraded.Store(false)

	report := s.aggregator.Aggregate(incidents)

	s.metrics.ReportsGenerated.Inc()
	s.metrics.IncidentsProcessed.Add(float64(report.TotalCount))
	s.metrics.TimeParseFailures.Add(float64(report.UnparsedTimes))
	s.metrics.ReportDuration.Observe(time.Since(start).Seconds())

	if report.UnparsedTimes > 0 {
		s.logger.Warn("incidents with unparsable time",
			"query", q.Key(),
			"count", report.UnparsedTimes,
		)
	}
	s.logger.Info("crime report generated",
		"query", q.Key(),
		"total_crime", report.TotalCount,
		"top_streets", report.TopStreets,
	)

	s.publish(ctx, q, report)
	return report, nil
}

// publish hands the report to the publisher. Failures are logged and counted
// but never fail the request.
func (s *Service) publish(ctx context.Context, q domain.Query, report domain.CrimeReport) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, domain.NewReportEvent(q, report)); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish report failed", "query", q.Key(), "error", err)
		return
	}
	s.metrics.ReportsPublished.Inc()
}
