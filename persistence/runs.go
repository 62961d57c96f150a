package persistence

import (
	"fmt"
	"time"
)

// RunRecord summarizes one orchestrator cycle. Records are append-only and
// never mutated after they are written.
type RunRecord struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Seen       int       `json:"seen"`
	Sent       int       `json:"sent"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// Duration returns how long the cycle took.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RecordRun appends a cycle summary.
func (s *Store) RecordRun(rec RunRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO run_records (started_at, finished_at, seen, sent, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.StartedAt, rec.FinishedAt, rec.Seen, rec.Sent, rec.Skipped, rec.Failed,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest n run records, newest first.
func (s *Store) RecentRuns(n int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, seen, sent, skipped, failed
		 FROM run_records ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Seen, &r.Sent, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
