package router

import (
    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/handler"
)

// RegisterWeather registers the forecast lookup and cache statistics
// endpoints under /v1.  The forecast endpoint does its own TTL-based
// caching in the database, so it is deliberately kept out of the Redis
// response-cache middleware: a second caching layer in front would make
// the hit/miss counters lie.
func RegisterWeather(e *echo.Echo, h *handler.WeatherHandler) {
    g := e.Group("/v1")
    g.GET("/weather/forecast", h.Forecast)
    g.GET("/weather/cache/stats", h.CacheStats)
}
