package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/analysis"
	"github.com/stridesense/stridesense-backend-go/internal/models"
)

const maxCachedResults = 64

// ResultSink receives every freshly computed analysis
type ResultSink interface {
	Record(ctx context.Context, athleteID, activityID int64, start time.Time, result *analysis.Result) error
}

type resultKey struct {
	athleteID  int64
	activityID int64
}

// ViewService computes filtered activity views. Analyses are cached per athlete and
// activity, so changing the filter only re-runs the view filter.
type ViewService struct {
	activities *ActivityService
	sink       ResultSink
	log        zerolog.Logger

	mu      sync.Mutex
	results map[resultKey]*analysis.Result
}

// NewViewService creates a new view service. sink may be nil.
func NewViewService(activities *ActivityService, sink ResultSink, log zerolog.Logger) *ViewService {
	return &ViewService{
		activities: activities,
		sink:       sink,
		log:        log,
		results:    make(map[resultKey]*analysis.Result),
	}
}

// GetView returns the view of one activity for a filter, with its summary when available
func (s *ViewService) GetView(ctx context.Context, session *Session, activityID int64, filter models.FilterState) (*models.ActivityView, error) {
	summary, err := s.activities.Get(ctx, session, activityID)
	if err != nil {
		s.log.Warn().Err(err).Int64("activity_id", activityID).Msg("Activity summary unavailable")
		summary = nil
	}

	result, err := s.Result(ctx, session, activityID, summary)
	if err != nil {
		return nil, err
	}

	return &models.ActivityView{
		Activity: summary,
		Center:   result.Center(),
		View:     result.View(filter),
	}, nil
}

// Result returns the cached analysis of an activity, computing it on first use
func (s *ViewService) Result(ctx context.Context, session *Session, activityID int64, summary *models.ActivitySummary) (*analysis.Result, error) {
	key := resultKey{athleteID: session.AthleteID, activityID: activityID}

	s.mu.Lock()
	cached, ok := s.results[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	series, err := s.activities.Series(ctx, session, activityID)
	if err != nil {
		return nil, err
	}

	result, err := analysis.Analyze(series)
	if err != nil {
		return nil, err
	}

	s.store(key, result)
	s.log.Info().
		Int64("activity_id", activityID).
		Int("segments", len(result.Segments)).
		Int("anomalies", len(result.Anomalies)).
		Msg("Analyzed activity")

	if s.sink != nil {
		start := time.Now()
		if summary != nil && !summary.StartDateLocal.IsZero() {
			start = summary.StartDateLocal
		}
		if err := s.sink.Record(ctx, session.AthleteID, activityID, start, result); err != nil {
			s.log.Warn().Err(err).Int64("activity_id", activityID).Msg("Failed to record analysis")
		}
	}
	return result, nil
}

// Invalidate drops the cached analysis of an activity
func (s *ViewService) Invalidate(athleteID, activityID int64) {
	s.mu.Lock()
	delete(s.results, resultKey{athleteID: athleteID, activityID: activityID})
	s.mu.Unlock()
}

// ComputeView analyzes a posted series without touching any cache
func (s *ViewService) ComputeView(series models.PointSeries, filter models.FilterState) (models.View, error) {
	return analysis.ComputeView(series, filter)
}

func (s *ViewService) store(key resultKey, result *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[key]; !ok && len(s.results) >= maxCachedResults {
		for k := range s.results {
			delete(s.results, k)
			break
		}
	}
	s.results[key] = result
}
