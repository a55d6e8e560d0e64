package weather

import "sync/atomic"

// Stats counts forecast cache traffic.  The counters are shared by all
// request goroutines and updated with atomic increments, so no updates
// are lost under concurrent load.  One Stats value is constructed per
// process and handed to the cache; it is never a package global.
type Stats struct {
	totalRequests atomic.Int64
	hits          atomic.Int64
	misses        atomic.Int64
}

// NewStats returns a zeroed Stats collector.
func NewStats() *Stats { return &Stats{} }

func (s *Stats) recordHit() {
	s.totalRequests.Add(1)
	s.hits.Add(1)
}

func (s *Stats) recordMiss() {
	s.totalRequests.Add(1)
	s.misses.Add(1)
}

// StatsSnapshot is a point-in-time copy of the counters.  HitRate is a
// percentage, 0 when no requests have been recorded.
type StatsSnapshot struct {
	TotalRequests int64   `json:"totalRequests"`
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	HitRate       float64 `json:"hitRate"`
}

// Snapshot reads the counters without side effects.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		TotalRequests: s.totalRequests.Load(),
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
	}
	if snap.TotalRequests > 0 {
		snap.HitRate = float64(snap.Hits) / float64(snap.TotalRequests) * 100
	}
	return snap
}
