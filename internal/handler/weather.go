package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/model"
    "github.com/moliceiromeals/backend/internal/weather"
)

// WeatherHandler exposes the cached forecast lookup and the cache
// statistics endpoint.
type WeatherHandler struct {
    Cache *weather.Cache
}

// NewWeatherHandler constructs a WeatherHandler.  The cache must be non-nil.
func NewWeatherHandler(cache *weather.Cache) *WeatherHandler {
    if cache == nil {
        panic("nil cache passed to NewWeatherHandler")
    }
    return &WeatherHandler{Cache: cache}
}

type forecastResponse struct {
    Location       string  `json:"location"`
    Date           string  `json:"date"`
    MaxTemperature float64 `json:"maxTemperature"`
    MinTemperature float64 `json:"minTemperature"`
    Humidity       float64 `json:"humidity"`
    ChanceOfRain   float64 `json:"chanceOfRain"`
    Timestamp      string  `json:"timestamp"`
}

func toForecastResponse(f *model.Forecast) forecastResponse {
    return forecastResponse{
        Location:       f.Location,
        Date:           f.Day.UTC().Format("2006-01-02"),
        MaxTemperature: f.MaxTemperature,
        MinTemperature: f.MinTemperature,
        Humidity:       f.Humidity,
        ChanceOfRain:   f.ChanceOfRain,
        Timestamp:      f.FetchedAt.UTC().Format(time.RFC3339),
    }
}

// Forecast handles GET /weather/forecast?location=...&date=...  The
// date accepts RFC3339 or plain YYYY-MM-DD; the time-of-day component
// is ignored by the cache either way.
func (h *WeatherHandler) Forecast(c echo.Context) error {
    location := strings.TrimSpace(c.QueryParam("location"))
    if location == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "location is required"})
    }
    rawDate := c.QueryParam("date")
    date, err := time.Parse(time.RFC3339, rawDate)
    if err != nil {
        date, err = time.ParseInLocation("2006-01-02", rawDate, time.UTC)
    }
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be RFC3339 or YYYY-MM-DD"})
    }

    f, err := h.Cache.Forecast(c.Request().Context(), location, date)
    if err != nil {
        if errors.Is(err, weather.ErrUnavailable) {
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "weather data unavailable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toForecastResponse(f))
}

// CacheStats handles GET /weather/cache/stats.  The counters are
// process-lifetime only and reset on restart.
func (h *WeatherHandler) CacheStats(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Cache.Stats())
}
