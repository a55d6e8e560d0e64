package weather

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/moliceiromeals/backend/internal/model"
)

// fakeClock is a settable time source so freshness checks are
// deterministic.
type fakeClock struct {
    mu  sync.Mutex
    now time.Time
}

func (c *fakeClock) Now() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.now
}

func (c *fakeClock) advance(d time.Duration) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.now = c.now.Add(d)
}

// memStore is an in-memory Store keyed by location and day.
type memStore struct {
    mu      sync.Mutex
    entries map[string]*model.Forecast
    getErr  error
    upserts int
    deleted chan time.Time
}

func newMemStore() *memStore {
    return &memStore{entries: map[string]*model.Forecast{}}
}

func storeKey(location string, day time.Time) string {
    return fmt.Sprintf("%s|%s", location, day.Format("2006-01-02"))
}

func (s *memStore) Get(ctx context.Context, location string, day time.Time) (*model.Forecast, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.getErr != nil {
        return nil, s.getErr
    }
    f, ok := s.entries[storeKey(location, day)]
    if !ok {
        return nil, nil
    }
    cp := *f
    return &cp, nil
}

func (s *memStore) Upsert(ctx context.Context, f *model.Forecast) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.upserts++
    cp := *f
    s.entries[storeKey(f.Location, f.Day)] = &cp
    return nil
}

func (s *memStore) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var removed int64
    for k, f := range s.entries {
        if f.FetchedAt.Before(threshold) {
            delete(s.entries, k)
            removed++
        }
    }
    if s.deleted != nil {
        select {
        case s.deleted <- threshold:
        default:
        }
    }
    return removed, nil
}

func (s *memStore) get(location string, day time.Time) *model.Forecast {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.entries[storeKey(location, day)]
}

// fakeProvider delegates to a function and counts calls.
type fakeProvider struct {
    mu    sync.Mutex
    calls int
    fetch func(location string, date time.Time) (Day, error)
}

func (p *fakeProvider) Fetch(ctx context.Context, location string, date time.Time) (Day, error) {
    p.mu.Lock()
    p.calls++
    p.mu.Unlock()
    return p.fetch(location, date)
}

func (p *fakeProvider) callCount() int {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.calls
}

func sunnyDay() Day {
    return Day{MaxTemperature: 24.5, MinTemperature: 12.0, Humidity: 55, ChanceOfRain: 10}
}

func newTestCache(store Store, provider Provider, clock Clock) *Cache {
    return NewCache(store, provider, clock, 24*time.Hour, nil)
}

func TestForecastMissFetchesAndStores(t *testing.T) {
    store := newMemStore()
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) { return sunnyDay(), nil }}
    clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)}
    cache := newTestCache(store, provider, clock)

    date := time.Date(2025, 6, 2, 19, 0, 0, 0, time.UTC)
    got, err := cache.Forecast(context.Background(), "Aveiro", date)
    require.NoError(t, err)
    assert.Equal(t, "aveiro", got.Location)
    assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), got.Day)
    assert.Equal(t, 24.5, got.MaxTemperature)
    assert.Equal(t, clock.Now(), got.FetchedAt)
    assert.Equal(t, 1, provider.callCount())
    require.NotNil(t, store.get("aveiro", got.Day))

    snap := cache.Stats()
    assert.Equal(t, int64(1), snap.TotalRequests)
    assert.Equal(t, int64(0), snap.Hits)
    assert.Equal(t, int64(1), snap.Misses)
    assert.Equal(t, 0.0, snap.HitRate)
}

func TestForecastFreshHitSkipsProvider(t *testing.T) {
    store := newMemStore()
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) { return sunnyDay(), nil }}
    clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, provider, clock)

    date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
    _, err := cache.Forecast(context.Background(), "aveiro", date)
    require.NoError(t, err)

    clock.advance(2 * time.Hour)
    got, err := cache.Forecast(context.Background(), "aveiro", date)
    require.NoError(t, err)
    assert.Equal(t, 1, provider.callCount(), "fresh entry must not trigger a provider call")
    assert.Equal(t, 24.5, got.MaxTemperature)

    snap := cache.Stats()
    assert.Equal(t, int64(2), snap.TotalRequests)
    assert.Equal(t, int64(1), snap.Hits)
    assert.Equal(t, int64(1), snap.Misses)
    assert.Equal(t, 50.0, snap.HitRate)
}

func TestForecastFreshnessBoundary(t *testing.T) {
    tests := []struct {
        name      string
        age       time.Duration
        wantCalls int
    }{
        {"well within ttl", 23 * time.Hour, 0},
        {"exactly at ttl", 24 * time.Hour, 1},
        {"past ttl", 25 * time.Hour, 1},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            store := newMemStore()
            provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) { return sunnyDay(), nil }}
            clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
            cache := newTestCache(store, provider, clock)

            date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
            _, err := cache.Forecast(context.Background(), "aveiro", date)
            require.NoError(t, err)
            require.Equal(t, 1, provider.callCount())

            clock.advance(tt.age)
            _, err = cache.Forecast(context.Background(), "aveiro", date)
            require.NoError(t, err)
            assert.Equal(t, 1+tt.wantCalls, provider.callCount())
        })
    }
}

func TestForecastStaleEntryRefetchedAndOverwritten(t *testing.T) {
    store := newMemStore()
    temp := 20.0
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) {
        d := sunnyDay()
        d.MaxTemperature = temp
        return d, nil
    }}
    clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, provider, clock)

    date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
    first, err := cache.Forecast(context.Background(), "aveiro", date)
    require.NoError(t, err)

    temp = 31.0
    clock.advance(25 * time.Hour)
    second, err := cache.Forecast(context.Background(), "aveiro", date)
    require.NoError(t, err)
    assert.Equal(t, 31.0, second.MaxTemperature)
    assert.Equal(t, clock.Now(), second.FetchedAt)
    assert.True(t, second.FetchedAt.After(first.FetchedAt))

    stored := store.get("aveiro", second.Day)
    require.NotNil(t, stored)
    assert.Equal(t, 31.0, stored.MaxTemperature)
}

func TestForecastProviderFailureLeavesStoreUntouched(t *testing.T) {
    store := newMemStore()
    fail := false
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) {
        if fail {
            return Day{}, errors.New("upstream 500")
        }
        return sunnyDay(), nil
    }}
    clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, provider, clock)

    date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
    _, err := cache.Forecast(context.Background(), "aveiro", date)
    require.NoError(t, err)
    stale := store.get("aveiro", TruncateDay(date))
    require.NotNil(t, stale)

    fail = true
    clock.advance(25 * time.Hour)
    _, err = cache.Forecast(context.Background(), "aveiro", date)
    require.ErrorIs(t, err, ErrUnavailable)

    // The expired entry stays until the sweeper removes it.
    after := store.get("aveiro", TruncateDay(date))
    require.NotNil(t, after)
    assert.Equal(t, stale.FetchedAt, after.FetchedAt)

    snap := cache.Stats()
    assert.Equal(t, int64(2), snap.TotalRequests)
    assert.Equal(t, int64(2), snap.Misses)
}

func TestForecastStoreErrorCountsAsMiss(t *testing.T) {
    store := newMemStore()
    store.getErr = errors.New("connection refused")
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) { return sunnyDay(), nil }}
    cache := newTestCache(store, provider, &fakeClock{now: time.Now().UTC()})

    _, err := cache.Forecast(context.Background(), "aveiro", time.Now().UTC())
    require.Error(t, err)
    assert.Equal(t, 0, provider.callCount())

    snap := cache.Stats()
    assert.Equal(t, int64(1), snap.TotalRequests)
    assert.Equal(t, int64(1), snap.Misses)
}

func TestForecastNormalizesLocationAndDay(t *testing.T) {
    store := newMemStore()
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) { return sunnyDay(), nil }}
    clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, provider, clock)

    // Different casings, whitespace and times of day all resolve to the
    // same cache entry.
    _, err := cache.Forecast(context.Background(), "  Aveiro ", time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))
    require.NoError(t, err)
    _, err = cache.Forecast(context.Background(), "AVEIRO", time.Date(2025, 6, 2, 21, 45, 0, 0, time.UTC))
    require.NoError(t, err)
    _, err = cache.Forecast(context.Background(), "aveiro", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
    require.NoError(t, err)

    assert.Equal(t, 1, provider.callCount())
    snap := cache.Stats()
    assert.Equal(t, int64(3), snap.TotalRequests)
    assert.Equal(t, int64(2), snap.Hits)
}

func TestStatsConsistentUnderConcurrency(t *testing.T) {
    store := newMemStore()
    provider := &fakeProvider{fetch: func(string, time.Time) (Day, error) { return sunnyDay(), nil }}
    clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, provider, clock)

    const goroutines = 50
    const perGoroutine = 20
    var wg sync.WaitGroup
    for g := 0; g < goroutines; g++ {
        wg.Add(1)
        go func(g int) {
            defer wg.Done()
            for i := 0; i < perGoroutine; i++ {
                // Spread requests over several keys so both hits and
                // misses occur.
                loc := fmt.Sprintf("city-%d", i%5)
                date := time.Date(2025, 6, 2+i%3, 0, 0, 0, 0, time.UTC)
                _, err := cache.Forecast(context.Background(), loc, date)
                if err != nil {
                    t.Errorf("goroutine %d: %v", g, err)
                    return
                }
            }
        }(g)
    }
    wg.Wait()

    snap := cache.Stats()
    assert.Equal(t, int64(goroutines*perGoroutine), snap.TotalRequests)
    assert.Equal(t, snap.TotalRequests, snap.Hits+snap.Misses,
        "every request must count as exactly one hit or miss")
    assert.Greater(t, snap.Hits, int64(0))
    assert.Greater(t, snap.Misses, int64(0))
}

func TestCleanupExpired(t *testing.T) {
    store := newMemStore()
    clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, &fakeProvider{}, clock)

    fresh := &model.Forecast{Location: "aveiro", Day: TruncateDay(clock.Now()), FetchedAt: clock.Now().Add(-1 * time.Hour)}
    stale := &model.Forecast{Location: "porto", Day: TruncateDay(clock.Now()), FetchedAt: clock.Now().Add(-30 * time.Hour)}
    require.NoError(t, store.Upsert(context.Background(), fresh))
    require.NoError(t, store.Upsert(context.Background(), stale))

    removed, err := cache.CleanupExpired(context.Background())
    require.NoError(t, err)
    assert.Equal(t, int64(1), removed)
    assert.NotNil(t, store.get("aveiro", fresh.Day))
    assert.Nil(t, store.get("porto", stale.Day))
}

func TestRunSweeperSweepsAndStopsOnCancel(t *testing.T) {
    store := newMemStore()
    store.deleted = make(chan time.Time, 16)
    clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
    cache := newTestCache(store, &fakeProvider{}, clock)

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan struct{})
    go func() {
        cache.RunSweeper(ctx, 10*time.Millisecond)
        close(done)
    }()

    select {
    case threshold := <-store.deleted:
        assert.Equal(t, clock.Now().Add(-24*time.Hour), threshold)
    case <-time.After(2 * time.Second):
        t.Fatal("sweeper never ran")
    }

    cancel()
    select {
    case <-done:
    case <-time.After(2 * time.Second):
        t.Fatal("sweeper did not stop on context cancellation")
    }
}
