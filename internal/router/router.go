package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/moliceiromeals/backend/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that carry no middleware on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Map the GET request at path "/healthz" to the Health handler.  This
    // endpoint can be used by load balancers or monitoring systems to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the restaurant and meal CRUD endpoints under
// /v1.  These routes are public: the API has no accounts, so management
// and browsing share the same surface.  cached, when non-nil, is the
// Redis response-cache middleware and is applied only to the read-only
// listing endpoints; mutating routes always hit the database directly.
func RegisterCatalog(e *echo.Echo, r *handler.RestaurantHandler, m *handler.MealHandler, cached echo.MiddlewareFunc) {
    var reads []echo.MiddlewareFunc
    if cached != nil {
        reads = append(reads, cached)
    }

    g := e.Group("/v1")

    // Restaurant CRUD.  Listing and detail reads go through the response
    // cache when one is configured.
    g.POST("/restaurants", r.Create)
    g.GET("/restaurants", r.List, reads...)
    g.GET("/restaurants/search", r.Search, reads...)
    g.GET("/restaurants/:id", r.Get, reads...)
    g.PUT("/restaurants/:id", r.Update)
    g.DELETE("/restaurants/:id", r.Delete)

    // Meal CRUD.  Meals are always addressed either directly by id or
    // through their owning restaurant.
    g.POST("/meals", m.Create)
    g.GET("/meals/:id", m.Get, reads...)
    g.GET("/restaurants/:id/meals", m.ListByRestaurant, reads...)
    g.GET("/meals/restaurant/:id/upcoming", m.ListUpcomingByRestaurant, reads...)
    g.GET("/meals/restaurant/:id/date/:date", m.ListByDate, reads...)
    g.PUT("/meals/:id", m.Update)
    g.DELETE("/meals/:id", m.Delete)
}
