package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

const (
	defaultPerPage = 30
	maxPerPage     = 200
)

// ActivitySource fetches activity data from the provider
type ActivitySource interface {
	ListActivities(ctx context.Context, accessToken string, perPage, page int) ([]models.ActivitySummary, error)
	FetchActivitySummary(ctx context.Context, accessToken string, activityID int64) (*models.ActivitySummary, error)
	FetchPointSeries(ctx context.Context, accessToken string, activityID int64) (models.PointSeries, error)
}

// ActivityStore caches activity summaries
type ActivityStore interface {
	Get(ctx context.Context, athleteID, activityID int64) (*models.ActivitySummary, error)
	List(ctx context.Context, athleteID int64, limit int) ([]models.ActivitySummary, error)
	Save(ctx context.Context, athleteID int64, a models.ActivitySummary) error
	SaveAll(ctx context.Context, athleteID int64, activities []models.ActivitySummary) error
}

// StreamStore caches point series
type StreamStore interface {
	Get(ctx context.Context, athleteID, activityID int64) (models.PointSeries, error)
	Save(ctx context.Context, athleteID, activityID int64, series models.PointSeries) error
}

// ActivityService handles business logic for activities and their point series
type ActivityService struct {
	source     ActivitySource
	activities ActivityStore
	streams    StreamStore
	log        zerolog.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(source ActivitySource, activities ActivityStore, streams StreamStore, log zerolog.Logger) *ActivityService {
	return &ActivityService{
		source:     source,
		activities: activities,
		streams:    streams,
		log:        log,
	}
}

// List returns the athlete's recent activities and writes them through to the cache.
// When the provider is unavailable the cached list is served instead.
func (s *ActivityService) List(ctx context.Context, session *Session, q models.ActivityListQuery) ([]models.ActivitySummary, error) {
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}

	activities, err := s.source.ListActivities(ctx, session.AccessToken, q.PerPage, q.Page)
	if err != nil {
		if errors.Is(err, models.ErrUnavailable) {
			cached, cacheErr := s.activities.List(ctx, session.AthleteID, q.PerPage)
			if cacheErr == nil && len(cached) > 0 {
				s.log.Warn().Err(err).Int64("athlete_id", session.AthleteID).
					Msg("Provider unavailable, serving cached activities")
				return cached, nil
			}
		}
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	if err := s.activities.SaveAll(ctx, session.AthleteID, activities); err != nil {
		s.log.Warn().Err(err).Int64("athlete_id", session.AthleteID).Msg("Failed to cache activities")
	}
	return activities, nil
}

// Get returns one activity summary, from the cache when present
func (s *ActivityService) Get(ctx context.Context, session *Session, activityID int64) (*models.ActivitySummary, error) {
	cached, err := s.activities.Get(ctx, session.AthleteID, activityID)
	if err != nil {
		s.log.Warn().Err(err).Int64("activity_id", activityID).Msg("Activity cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	summary, err := s.source.FetchActivitySummary(ctx, session.AccessToken, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if err := s.activities.Save(ctx, session.AthleteID, *summary); err != nil {
		s.log.Warn().Err(err).Int64("activity_id", activityID).Msg("Failed to cache activity")
	}
	return summary, nil
}

// Series returns the validated point series of an activity, fetching it once per athlete
func (s *ActivityService) Series(ctx context.Context, session *Session, activityID int64) (models.PointSeries, error) {
	cached, err := s.streams.Get(ctx, session.AthleteID, activityID)
	if err != nil {
		s.log.Warn().Err(err).Int64("activity_id", activityID).Msg("Stream cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	series, err := s.source.FetchPointSeries(ctx, session.AccessToken, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch point series: %w", err)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	if err := s.streams.Save(ctx, session.AthleteID, activityID, series); err != nil {
		s.log.Warn().Err(err).Int64("activity_id", activityID).Msg("Failed to cache point series")
	}
	s.log.Info().
		Int64("activity_id", activityID).
		Int("points", len(series)).
		Msg("Fetched point series")
	return series, nil
}

// Points returns the raw point series response for an activity
func (s *ActivityService) Points(ctx context.Context, session *Session, activityID int64) (*models.PointsResponse, error) {
	series, err := s.Series(ctx, session, activityID)
	if err != nil {
		return nil, err
	}
	return &models.PointsResponse{
		ActivityID: activityID,
		Points:     series,
		Count:      len(series),
	}, nil
}
