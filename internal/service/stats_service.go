package service

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// StatsSnapshot is a point-in-time view of queue shape.
type StatsSnapshot struct {
	QueueDepth      int       `json:"queue_depth"`
	ProcessingDepth int       `json:"processing_depth"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Depther reports the current shape of the queue. MessageService does not
// expose depths directly (they're not part of the core API contract), so
// StatsService takes a narrow callback instead of depending on the full
// service.
type Depther func() (queueDepth, processingDepth int)

// StatsService caches a StatsSnapshot for TTL and collapses concurrent
// refreshes into a single Depther call via singleflight, grounded in the
// teacher's internal/service.SummaryService TTL-cache-plus-singleflight
// pattern. This exists purely for the GET /stats monitoring endpoint and
// never touches queue state.
type StatsService struct {
	depth Depther
	ttl   time.Duration
	group singleflight.Group

	mu      sync.RWMutex
	cached  StatsSnapshot
	expires time.Time
}

// NewStatsService constructs a StatsService with the given refresh TTL.
func NewStatsService(depth Depther, ttl time.Duration) *StatsService {
	if ttl <= 0 {
		ttl = 200 * time.Millisecond
	}
	return &StatsService{depth: depth, ttl: ttl}
}

// Snapshot returns the cached snapshot if still fresh, otherwise refreshes
// it (collapsing concurrent callers into one refresh).
func (s *StatsService) Snapshot() StatsSnapshot {
	s.mu.RLock()
	if time.Now().Before(s.expires) {
		snap := s.cached
		s.mu.RUnlock()
		return snap
	}
	s.mu.RUnlock()

	v, _, _ := s.group.Do("snapshot", func() (any, error) {
		q, p := s.depth()
		snap := StatsSnapshot{
			QueueDepth:      q,
			ProcessingDepth: p,
			GeneratedAt:     time.Now(),
		}

		s.mu.Lock()
		s.cached = snap
		s.expires = snap.GeneratedAt.Add(s.ttl)
		s.mu.Unlock()

		return snap, nil
	})
	return v.(StatsSnapshot)
}
