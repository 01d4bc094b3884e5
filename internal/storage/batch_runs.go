package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/folio/internal/service"
)

// DefaultHistoryLimit bounds ListBatchRuns when no limit is given.
const DefaultHistoryLimit = 20

// RecordBatchRun appends run to the journal, assigning an ID if it has none.
func (s *SQLiteStorage) RecordBatchRun(ctx context.Context, run *service.BatchRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBatchRun(run); err != nil {
		return err
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	var errs sql.NullString
	if len(run.Errors) > 0 {
		data, err := json.Marshal(run.Errors)
		if err != nil {
			return fmt.Errorf("failed to encode batch errors: %w", err)
		}
		errs = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO batch_runs (id, kind, started_at, duration_ms, succeeded, failed, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.Succeeded, run.Failed, errs)
	if err != nil {
		return fmt.Errorf("failed to record batch run: %w", err)
	}
	return nil
}

// ListBatchRuns returns the most recent runs first.
func (s *SQLiteStorage) ListBatchRuns(ctx context.Context, limit int) ([]service.BatchRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, started_at, duration_ms, succeeded, failed, errors
		FROM batch_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []service.BatchRun
	for rows.Next() {
		var run service.BatchRun
		var durationMS int64
		var errs sql.NullString
		if err := rows.Scan(&run.ID, &run.Kind, &run.StartedAt, &durationMS, &run.Succeeded, &run.Failed, &errs); err != nil {
			return nil, fmt.Errorf("failed to scan batch run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if errs.Valid {
			if err := json.Unmarshal([]byte(errs.String), &run.Errors); err != nil {
				return nil, fmt.Errorf("failed to decode errors of batch run %s: %w", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
