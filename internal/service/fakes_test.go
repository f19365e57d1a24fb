package service

import (
	"context"
	"sync"
	"time"

	"github.com/stridesense/stridesense-backend-go/internal/analysis"
	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/strava"
)

type fakeProvider struct {
	token *strava.Token
	err   error
	state string
}

func (p *fakeProvider) AuthorizeURL(state string) string {
	p.state = state
	return "https://provider.test/authorize?state=" + state
}

func (p *fakeProvider) ExchangeCode(_ context.Context, _ string) (*strava.Token, error) {
	return p.token, p.err
}

type fakeSource struct {
	activities  []models.ActivitySummary
	series      map[int64]models.PointSeries
	listErr     error
	fetchErr    error
	seriesCalls int
	summaryCall int
}

func (s *fakeSource) ListActivities(_ context.Context, _ string, perPage, _ int) ([]models.ActivitySummary, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if perPage < len(s.activities) {
		return s.activities[:perPage], nil
	}
	return s.activities, nil
}

func (s *fakeSource) FetchActivitySummary(_ context.Context, _ string, id int64) (*models.ActivitySummary, error) {
	s.summaryCall++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	for _, a := range s.activities {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeSource) FetchPointSeries(_ context.Context, _ string, id int64) (models.PointSeries, error) {
	s.seriesCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	series, ok := s.series[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return series, nil
}

type key struct{ athlete, activity int64 }

type memActivities struct {
	items map[key]models.ActivitySummary
	order []key
}

func newMemActivities() *memActivities {
	return &memActivities{items: make(map[key]models.ActivitySummary)}
}

func (m *memActivities) Get(_ context.Context, athleteID, activityID int64) (*models.ActivitySummary, error) {
	a, ok := m.items[key{athleteID, activityID}]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memActivities) List(_ context.Context, athleteID int64, limit int) ([]models.ActivitySummary, error) {
	var out []models.ActivitySummary
	for _, k := range m.order {
		if k.athlete == athleteID && len(out) < limit {
			out = append(out, m.items[k])
		}
	}
	return out, nil
}

func (m *memActivities) Save(_ context.Context, athleteID int64, a models.ActivitySummary) error {
	k := key{athleteID, a.ID}
	if _, ok := m.items[k]; !ok {
		m.order = append(m.order, k)
	}
	m.items[k] = a
	return nil
}

func (m *memActivities) SaveAll(ctx context.Context, athleteID int64, activities []models.ActivitySummary) error {
	for _, a := range activities {
		_ = m.Save(ctx, athleteID, a)
	}
	return nil
}

type memStreams struct {
	items map[key]models.PointSeries
	saves int
}

func newMemStreams() *memStreams {
	return &memStreams{items: make(map[key]models.PointSeries)}
}

func (m *memStreams) Get(_ context.Context, athleteID, activityID int64) (models.PointSeries, error) {
	return m.items[key{athleteID, activityID}], nil
}

func (m *memStreams) Save(_ context.Context, athleteID, activityID int64, series models.PointSeries) error {
	m.saves++
	m.items[key{athleteID, activityID}] = series
	return nil
}

type recordingSink struct {
	mu      sync.Mutex
	calls   int
	started time.Time
}

func (s *recordingSink) Record(_ context.Context, _, _ int64, start time.Time, _ *analysis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.started = start
	return nil
}
