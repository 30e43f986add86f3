package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gostoch/domain/core"
	"gostoch/domain/stats"
	"gostoch/ports"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// Connect opens a postgres connection and ensures the reports table exists.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := bootstrap(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func bootstrap(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to bootstrap reports table: %w", err)
	}
	return nil
}

// SaveReport stores a cross-sectional analysis report
func (r *reportRepository) SaveReport(ctx context.Context, report stats.Report) error {
	return r.save(ctx, string(report.ID), ports.ReportKindCrossSection, report)
}

// SaveTimeSeriesReport stores a time-series analysis report
func (r *reportRepository) SaveTimeSeriesReport(ctx context.Context, report stats.TimeSeriesReport) error {
	return r.save(ctx, string(report.ID), ports.ReportKindTimeSeries, report)
}

func (r *reportRepository) save(ctx context.Context, id string, kind ports.ReportKind, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `INSERT INTO reports (id, kind, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET kind = $2, payload = $3`

	if _, err := r.db.ExecContext(ctx, query, id, string(kind), body); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReport retrieves a cross-sectional report by ID
func (r *reportRepository) GetReport(ctx context.Context, id core.ReportID) (*stats.Report, error) {
	body, err := r.load(ctx, id, ports.ReportKindCrossSection)
	if err != nil {
		return nil, err
	}

	var report stats.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// GetTimeSeriesReport retrieves a time-series report by ID
func (r *reportRepository) GetTimeSeriesReport(ctx context.Context, id core.ReportID) (*stats.TimeSeriesReport, error) {
	body, err := r.load(ctx, id, ports.ReportKindTimeSeries)
	if err != nil {
		return nil, err
	}

	var report stats.TimeSeriesReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal time-series report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) load(ctx context.Context, id core.ReportID, kind ports.ReportKind) ([]byte, error) {
	query := `SELECT payload FROM reports WHERE id = $1 AND kind = $2`

	var body []byte
	err := r.db.QueryRowContext(ctx, query, string(id), string(kind)).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("report not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return body, nil
}

// ListReports returns stored report summaries, newest first
func (r *reportRepository) ListReports(ctx context.Context, limit int) ([]ports.ReportSummary, error) {
	query := `SELECT id, kind, created_at FROM reports ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var summaries []ports.ReportSummary
	for rows.Next() {
		var (
			id        string
			kind      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		summaries = append(summaries, ports.ReportSummary{
			ID:        core.ReportID(id),
			Kind:      ports.ReportKind(kind),
			CreatedAt: core.NewTimestamp(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}
	return summaries, nil
}
