package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// CompleteEndedSessions marks active parking sessions that ended before
// cutoff as completed and returns their booking session ids.
func (r *JobRepository) CompleteEndedSessions(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `
		UPDATE parking_session
		SET status = $1
		WHERE status = $2 AND end_timestamp < $3
		RETURNING session_id`
	rows, err := r.DB.QueryContext(ctx, query, SessionStatusCompleted, SessionStatusActive, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error completing ended parking sessions: %w", err)
	}
	defer rows.Close()

	var sessionIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning completed session: %w", err)
		}
		sessionIDs = append(sessionIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading completed sessions: %w", err)
	}
	return sessionIDs, nil
}
