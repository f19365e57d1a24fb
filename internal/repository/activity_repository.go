package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// ActivityRepository caches activity summaries shown next to the map
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `activity_id, name, distance, average_heartrate, max_speed, suffer_score, start_date_local`

// Get returns a cached summary, or nil when none is stored
func (r *ActivityRepository) Get(ctx context.Context, athleteID, activityID int64) (*models.ActivitySummary, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_summaries WHERE athlete_id = ? AND activity_id = ?`

	a, err := scanActivity(r.db.QueryRowContext(ctx, query, athleteID, activityID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// List returns cached summaries, most recent first
func (r *ActivityRepository) List(ctx context.Context, athleteID int64, limit int) ([]models.ActivitySummary, error) {
	if limit < 1 {
		limit = 30
	}
	query := `SELECT ` + activityColumns + ` FROM activity_summaries
		WHERE athlete_id = ?
		ORDER BY start_date_local DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, athleteID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := make([]models.ActivitySummary, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// SaveAll upserts summaries in one transaction
func (r *ActivityRepository) SaveAll(ctx context.Context, athleteID int64, activities []models.ActivitySummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO activity_summaries
		(athlete_id, activity_id, name, distance, average_heartrate, max_speed, suffer_score, start_date_local, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT (athlete_id, activity_id) DO UPDATE SET
			name = excluded.name,
			distance = excluded.distance,
			average_heartrate = excluded.average_heartrate,
			max_speed = excluded.max_speed,
			suffer_score = excluded.suffer_score,
			start_date_local = excluded.start_date_local,
			fetched_at = excluded.fetched_at`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range activities {
		_, err := stmt.ExecContext(ctx, athleteID, a.ID, a.Name, a.Distance, a.AverageHeartrate,
			a.MaxSpeed, a.SufferScore, a.StartDateLocal.UTC().Format(time.RFC3339))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save activity %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Save upserts a single summary
func (r *ActivityRepository) Save(ctx context.Context, athleteID int64, a models.ActivitySummary) error {
	return r.SaveAll(ctx, athleteID, []models.ActivitySummary{a})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*models.ActivitySummary, error) {
	var a models.ActivitySummary
	var start string
	if err := row.Scan(&a.ID, &a.Name, &a.Distance, &a.AverageHeartrate, &a.MaxSpeed, &a.SufferScore, &start); err != nil {
		return nil, err
	}
	if start != "" {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date_local %q: %w", start, err)
		}
		a.StartDateLocal = parsed
	}
	return &a, nil
}
