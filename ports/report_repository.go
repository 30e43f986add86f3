package ports

import (
	"context"

	"gostoch/domain/core"
	"gostoch/domain/stats"
)

// ReportSummary is the listing row for stored reports.
type ReportSummary struct {
	ID        core.ReportID  `json:"id"`
	Kind      ReportKind     `json:"kind"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// ReportKind distinguishes the two report shapes in storage.
type ReportKind string

const (
	ReportKindCrossSection ReportKind = "cross_section"
	ReportKindTimeSeries   ReportKind = "time_series"
)

// ReportRepository defines the interface for report persistence
type ReportRepository interface {
	// SaveReport stores a cross-sectional analysis report
	SaveReport(ctx context.Context, report stats.Report) error

	// SaveTimeSeriesReport stores a time-series analysis report
	SaveTimeSeriesReport(ctx context.Context, report stats.TimeSeriesReport) error

	// GetReport retrieves a cross-sectional report by ID
	GetReport(ctx context.Context, id core.ReportID) (*stats.Report, error)

	// GetTimeSeriesReport retrieves a time-series report by ID
	GetTimeSeriesReport(ctx context.Context, id core.ReportID) (*stats.TimeSeriesReport, error)

	// ListReports returns stored report summaries, newest first, optionally limited
	ListReports(ctx context.Context, limit int) ([]ReportSummary, error)
}
