package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// StreamRepository caches fetched point series per athlete and activity
type StreamRepository struct {
	db *sql.DB
}

// NewStreamRepository creates a new stream repository
func NewStreamRepository(db *sql.DB) *StreamRepository {
	return &StreamRepository{db: db}
}

// Get returns the cached series, or nil when the activity has not been fetched yet
func (r *StreamRepository) Get(ctx context.Context, athleteID, activityID int64) (models.PointSeries, error) {
	query := `SELECT points_json FROM activity_streams WHERE athlete_id = ? AND activity_id = ?`

	var raw string
	err := r.db.QueryRowContext(ctx, query, athleteID, activityID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity stream: %w", err)
	}

	series := models.PointSeries{}
	if err := json.Unmarshal([]byte(raw), &series); err != nil {
		return nil, fmt.Errorf("failed to decode activity stream %d: %w", activityID, err)
	}
	return series, nil
}

// Save stores or replaces the series of an activity
func (r *StreamRepository) Save(ctx context.Context, athleteID, activityID int64, series models.PointSeries) error {
	if series == nil {
		series = models.PointSeries{}
	}
	raw, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to encode activity stream: %w", err)
	}

	query := `INSERT INTO activity_streams (athlete_id, activity_id, points_json, point_count, fetched_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT (athlete_id, activity_id) DO UPDATE SET
			points_json = excluded.points_json,
			point_count = excluded.point_count,
			fetched_at = excluded.fetched_at`

	if _, err := r.db.ExecContext(ctx, query, athleteID, activityID, string(raw), len(series)); err != nil {
		return fmt.Errorf("failed to save activity stream: %w", err)
	}
	return nil
}

// Delete drops the cached series of an activity
func (r *StreamRepository) Delete(ctx context.Context, athleteID, activityID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activity_streams WHERE athlete_id = ? AND activity_id = ?`, athleteID, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity stream: %w", err)
	}
	return nil
}
