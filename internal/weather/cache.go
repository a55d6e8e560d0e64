// Package weather implements a read-through cache for daily weather
// forecasts.  Forecasts are expensive and rate-limited to fetch, so
// results are cached in a persistent store keyed by (location, day)
// with a freshness window.  A background sweeper evicts entries whose
// age has passed the TTL.
package weather

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/moliceiromeals/backend/internal/model"
)

// ErrUnavailable is returned when the provider call fails or returns an
// unusable payload.  The failure is retryable from the caller's point
// of view; nothing is written to the store.
var ErrUnavailable = errors.New("weather data unavailable")

// Store is the persistence contract for cached forecasts.  Get returns
// (nil, nil) when no entry exists for the key.
type Store interface {
	Get(ctx context.Context, location string, day time.Time) (*model.Forecast, error)
	Upsert(ctx context.Context, f *model.Forecast) error
	DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error)
}

// Cache orchestrates forecast lookups: store lookup, freshness check,
// fetch-on-miss, write-back and hit/miss accounting.  Concurrent
// requests for the same key may each call the provider independently;
// the stored entry is last-writer-wins, which is acceptable for cache
// data.
type Cache struct {
	store    Store
	provider Provider
	clock    Clock
	ttl      time.Duration
	stats    *Stats
}

// NewCache constructs a Cache.  ttl defines the freshness window for
// stored entries; entries older than ttl are refetched and eventually
// swept.
func NewCache(store Store, provider Provider, clock Clock, ttl time.Duration, stats *Stats) *Cache {
	if clock == nil {
		clock = SystemClock{}
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Cache{store: store, provider: provider, clock: clock, ttl: ttl, stats: stats}
}

// NormalizeLocation canonicalizes a location string for use as a cache
// key: surrounding whitespace is trimmed and the result lower-cased.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// TruncateDay strips the time-of-day component, leaving midnight UTC.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Forecast returns the forecast for a location and calendar day.  The
// time-of-day component of date is ignored.  A stored entry younger
// than the TTL is served as-is with no provider call.  On a miss or a
// stale entry the provider is called; its result overwrites the stored
// entry with a fresh timestamp.  Provider failure yields
// ErrUnavailable and leaves the store untouched.  Every call increments
// totalRequests exactly once and exactly one of hits/misses.
func (c *Cache) Forecast(ctx context.Context, location string, date time.Time) (*model.Forecast, error) {
	key := NormalizeLocation(location)
	day := TruncateDay(date)
	now := c.clock.Now()

	entry, err := c.store.Get(ctx, key, day)
	if err != nil {
		// A broken store lookup still counts as a miss: the request did
		// not get served from cache.
		c.stats.recordMiss()
		return nil, err
	}

	if entry != nil && now.Sub(entry.FetchedAt) < c.ttl {
		c.stats.recordHit()
		return entry, nil
	}
	c.stats.recordMiss()

	day0, err := c.provider.Fetch(ctx, key, day)
	if err != nil {
		log.Printf("weather: provider fetch failed for %q on %s: %v", key, day.Format("2006-01-02"), err)
		return nil, ErrUnavailable
	}

	fresh := &model.Forecast{
		Location:       key,
		Day:            day,
		MaxTemperature: day0.MaxTemperature,
		MinTemperature: day0.MinTemperature,
		Humidity:       day0.Humidity,
		ChanceOfRain:   day0.ChanceOfRain,
		FetchedAt:      now,
	}
	if entry != nil {
		fresh.ID = entry.ID
	}
	if err := c.store.Upsert(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// CleanupExpired deletes every entry whose timestamp is older than
// now - TTL and returns the number of entries removed.
func (c *Cache) CleanupExpired(ctx context.Context) (int64, error) {
	threshold := c.clock.Now().Add(-c.ttl)
	return c.store.DeleteOlderThan(ctx, threshold)
}

// Stats returns a point-in-time snapshot of the traffic counters.
func (c *Cache) Stats() StatsSnapshot { return c.stats.Snapshot() }

// RunSweeper runs the periodic eviction loop until ctx is cancelled.
// Sweep failures are logged and do not stop the loop.  The first sweep
// happens one interval after start, not immediately.
func (c *Cache) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("weather: sweeper shutting down")
			return
		case <-ticker.C:
			removed, err := c.CleanupExpired(ctx)
			if err != nil {
				log.Printf("weather: cache sweep failed: %v", err)
				continue
			}
			log.Printf("weather: swept %d expired cache entries", removed)
		}
	}
}
