package db

import (
	"fmt"
	"time"
)

// BatchRow mirrors one row of the batches table.
type BatchRow struct {
	BatchID          int64
	InputDir         string
	StartedAt        time.Time
	TitleCount       int
	DoneCount        int
	QuarantinedCount int
	FailedCount      int
	DurationSeconds  float64
}

// TitleRow mirrors one row of the titles table.
type TitleRow struct {
	TitleID        int64
	BatchID        int64
	SourcePath     string
	DisplayName    string
	Outcome        string
	ErrorKind      string
	ErrorMessage   string
	OutputPath     string
	PageCount      int
	CleanupWarning string
}

// InsertBatch creates a batch record and returns its ID.
func (db *DB) InsertBatch(inputDir string) (int64, error) {
	result, err := db.Exec("INSERT INTO batches (input_dir) VALUES (?)", inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to insert batch: %w", err)
	}
	return result.LastInsertId()
}

// FinalizeBatch stores the aggregate counts and duration once every job
// has reached a terminal state.
func (db *DB) FinalizeBatch(batchID int64, done, quarantined, failed int, durationSeconds float64) error {
	_, err := db.Exec(`
		UPDATE batches
		SET title_count = ?, done_count = ?, quarantined_count = ?, failed_count = ?, duration_seconds = ?
		WHERE batch_id = ?`,
		done+quarantined+failed, done, quarantined, failed, durationSeconds, batchID)
	if err != nil {
		return fmt.Errorf("failed to finalize batch %d: %w", batchID, err)
	}
	return nil
}

// InsertTitle records the outcome of one title within a batch.
func (db *DB) InsertTitle(batchID int64, row TitleRow) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO titles (batch_id, source_path, display_name, outcome, error_kind, error_message, output_path, page_count, cleanup_warning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batchID, row.SourcePath, row.DisplayName, row.Outcome, row.ErrorKind, row.ErrorMessage, row.OutputPath, row.PageCount, row.CleanupWarning)
	if err != nil {
		return 0, fmt.Errorf("failed to insert title result: %w", err)
	}
	return result.LastInsertId()
}

// ListBatches returns the most recent batches, newest first.
func (db *DB) ListBatches(limit int) ([]BatchRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT batch_id, input_dir, started_at, title_count, done_count, quarantined_count, failed_count, duration_seconds
		FROM batches
		ORDER BY batch_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []BatchRow
	for rows.Next() {
		var b BatchRow
		if err := rows.Scan(&b.BatchID, &b.InputDir, &b.StartedAt, &b.TitleCount, &b.DoneCount, &b.QuarantinedCount, &b.FailedCount, &b.DurationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// GetBatchTitles returns every title outcome recorded for one batch, in
// insertion order.
func (db *DB) GetBatchTitles(batchID int64) ([]TitleRow, error) {
	rows, err := db.Query(`
		SELECT title_id, batch_id, source_path, display_name, outcome, error_kind, error_message, output_path, page_count, cleanup_warning
		FROM titles
		WHERE batch_id = ?
		ORDER BY title_id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch titles: %w", err)
	}
	defer rows.Close()

	var titles []TitleRow
	for rows.Next() {
		var t TitleRow
		if err := rows.Scan(&t.TitleID, &t.BatchID, &t.SourcePath, &t.DisplayName, &t.Outcome, &t.ErrorKind, &t.ErrorMessage, &t.OutputPath, &t.PageCount, &t.CleanupWarning); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// LatestBatchID returns the ID of the most recent batch, or 0 when the
// database is empty.
func (db *DB) LatestBatchID() (int64, error) {
	var id int64
	err := db.QueryRow("SELECT COALESCE(MAX(batch_id), 0) FROM batches").Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest batch: %w", err)
	}
	return id, nil
}
