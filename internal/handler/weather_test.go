package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/moliceiromeals/backend/internal/model"
    "github.com/moliceiromeals/backend/internal/weather"
)

// stubStore returns a fixed entry or nothing; enough to drive the
// handler through hit, miss and failure paths.
type stubStore struct {
    entry *model.Forecast
}

func (s *stubStore) Get(ctx context.Context, location string, day time.Time) (*model.Forecast, error) {
    if s.entry != nil && s.entry.Location == location && s.entry.Day.Equal(day) {
        cp := *s.entry
        return &cp, nil
    }
    return nil, nil
}

func (s *stubStore) Upsert(ctx context.Context, f *model.Forecast) error {
    cp := *f
    s.entry = &cp
    return nil
}

func (s *stubStore) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
    return 0, nil
}

type stubProvider struct {
    day weather.Day
    err error
}

func (p *stubProvider) Fetch(ctx context.Context, location string, date time.Time) (weather.Day, error) {
    return p.day, p.err
}

func weatherRequest(h *WeatherHandler, target string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, target, nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    _ = h.Forecast(c)
    return rec
}

func TestForecastEndpointRequiresLocation(t *testing.T) {
    h := NewWeatherHandler(weather.NewCache(&stubStore{}, &stubProvider{}, nil, 24*time.Hour, nil))
    rec := weatherRequest(h, "/v1/weather/forecast?date=2025-06-02")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecastEndpointRejectsBadDate(t *testing.T) {
    h := NewWeatherHandler(weather.NewCache(&stubStore{}, &stubProvider{}, nil, 24*time.Hour, nil))
    rec := weatherRequest(h, "/v1/weather/forecast?location=aveiro&date=02-06-2025")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecastEndpointReturnsForecast(t *testing.T) {
    provider := &stubProvider{day: weather.Day{MaxTemperature: 21, MinTemperature: 11, Humidity: 60, ChanceOfRain: 30}}
    h := NewWeatherHandler(weather.NewCache(&stubStore{}, provider, nil, 24*time.Hour, nil))

    rec := weatherRequest(h, "/v1/weather/forecast?location=Aveiro&date=2025-06-02")
    require.Equal(t, http.StatusOK, rec.Code)

    var body map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    assert.Equal(t, "aveiro", body["location"])
    assert.Equal(t, "2025-06-02", body["date"])
    assert.Equal(t, 21.0, body["maxTemperature"])
    assert.Equal(t, 30.0, body["chanceOfRain"])
}

func TestForecastEndpointUpstreamFailure(t *testing.T) {
    provider := &stubProvider{err: errors.New("upstream down")}
    h := NewWeatherHandler(weather.NewCache(&stubStore{}, provider, nil, 24*time.Hour, nil))

    rec := weatherRequest(h, "/v1/weather/forecast?location=aveiro&date=2025-06-02")
    assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCacheStatsEndpoint(t *testing.T) {
    provider := &stubProvider{day: weather.Day{MaxTemperature: 21}}
    cache := weather.NewCache(&stubStore{}, provider, nil, 24*time.Hour, nil)
    h := NewWeatherHandler(cache)

    // One miss then one hit.
    weatherRequest(h, "/v1/weather/forecast?location=aveiro&date=2025-06-02")
    weatherRequest(h, "/v1/weather/forecast?location=aveiro&date=2025-06-02")

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/weather/cache/stats", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, h.CacheStats(e.NewContext(req, rec)))
    require.Equal(t, http.StatusOK, rec.Code)

    var snap weather.StatsSnapshot
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
    assert.Equal(t, int64(2), snap.TotalRequests)
    assert.Equal(t, int64(1), snap.Hits)
    assert.Equal(t, int64(1), snap.Misses)
    assert.Equal(t, 50.0, snap.HitRate)
}
