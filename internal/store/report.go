package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Report is one published classification report, as stored.
type Report struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Hands     int       `json:"hands"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportRepository provides access to the classification history.
type ReportRepository struct {
	db *sql.DB
}

// Reports returns the report repository for this store.
func (s *Store) Reports() *ReportRepository {
	return &ReportRepository{db: s.db}
}

// Append records a published report for the given session and returns the
// stored row.
func (r *ReportRepository) Append(sessionID string, hands int, body string) (*Report, error) {
	report := &Report{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Hands:     hands,
		Body:      body,
		CreatedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO reports (id, session_id, hands, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		report.ID, report.SessionID, report.Hands, report.Body, report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// Recent retrieves the most recent reports, newest first.
// A limit <= 0 defaults to 50.
func (r *ReportRepository) Recent(limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, hands, body, created_at
		 FROM reports ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		report := &Report{}
		if err := rows.Scan(&report.ID, &report.SessionID, &report.Hands, &report.Body, &report.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// BySession retrieves all reports recorded for a session, oldest first.
func (r *ReportRepository) BySession(sessionID string) ([]*Report, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, hands, body, created_at
		 FROM reports WHERE session_id = ? ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		report := &Report{}
		if err := rows.Scan(&report.ID, &report.SessionID, &report.Hands, &report.Body, &report.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// Prune deletes reports older than the cutoff and returns how many were
// removed.
func (r *ReportRepository) Prune(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM reports WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
