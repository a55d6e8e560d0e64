package router

import (
    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/handler"
)

// RegisterReservations registers the reservation endpoints under /v1.
// Reservations are addressed by the opaque token handed out at creation
// time, never by row id, so a booker only needs the token from their
// confirmation to look up, confirm or cancel.  None of these routes sit
// behind the response cache: reservation state must always be read
// fresh.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler) {
    g := e.Group("/v1")

    // Creation, by restaurant id or by unique restaurant name.
    g.POST("/reservations", h.Create)
    g.POST("/reservations/create-by-name", h.CreateByName)

    // Token-scoped operations.  Cancellation is a DELETE for API
    // symmetry but flips the status to CANCELLED rather than removing
    // the row.
    g.GET("/reservations/token/:token", h.GetByToken)
    g.PUT("/reservations/:token/status", h.UpdateStatus)
    g.DELETE("/reservations/:token", h.Cancel)

    // Staff-facing listings.
    g.GET("/reservations", h.ListAll)
    g.GET("/reservations/status/:status", h.ListByStatus)
    g.GET("/reservations/restaurant/:id", h.ListByRestaurant)
    g.GET("/reservations/restaurant/:id/date", h.ListByRestaurantAndDate)
    g.GET("/reservations/restaurant/:id/availability", h.Availability)
}
