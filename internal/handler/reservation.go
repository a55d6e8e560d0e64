package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/booking"
    "github.com/moliceiromeals/backend/internal/model"
    "github.com/moliceiromeals/backend/internal/repository"
)

// ReservationHandler exposes the reservation endpoints.  Admission
// decisions (capacity, token issuance, status transitions) are owned by
// the booking layer; the handler only binds, validates shape and maps
// errors to HTTP statuses.
type ReservationHandler struct {
    Admission   *booking.Admission
    Restaurants *repository.RestaurantRepo
}

// NewReservationHandler constructs a ReservationHandler.  All
// dependencies must be non-nil.
func NewReservationHandler(admission *booking.Admission, restaurants *repository.RestaurantRepo) *ReservationHandler {
    if admission == nil || restaurants == nil {
        panic("nil dependency passed to NewReservationHandler")
    }
    return &ReservationHandler{Admission: admission, Restaurants: restaurants}
}

type reservationBody struct {
    RestaurantID    uint64 `json:"restaurant_id"`
    RestaurantName  string `json:"restaurant_name"`
    UserName        string `json:"user_name"`
    UserEmail       string `json:"user_email"`
    UserPhone       string `json:"user_phone"`
    ReservationDate string `json:"reservation_date"` // RFC3339
}

type reservationResponse struct {
    ID              uint64 `json:"id"`
    RestaurantID    uint64 `json:"restaurant_id"`
    UserName        string `json:"user_name"`
    UserEmail       string `json:"user_email"`
    UserPhone       string `json:"user_phone"`
    ReservationDate string `json:"reservation_date"`
    Token           string `json:"token"`
    Status          string `json:"status"`
}

func toReservationResponse(r *model.Reservation) reservationResponse {
    return reservationResponse{
        ID:              r.ID,
        RestaurantID:    r.RestaurantID,
        UserName:        r.UserName,
        UserEmail:       r.UserEmail,
        UserPhone:       r.UserPhone,
        ReservationDate: r.ReservationDate.UTC().Format(time.RFC3339),
        Token:           r.Token,
        Status:          string(r.Status),
    }
}

func (b *reservationBody) validate() (time.Time, error) {
    if strings.TrimSpace(b.UserName) == "" || strings.TrimSpace(b.UserEmail) == "" || strings.TrimSpace(b.UserPhone) == "" {
        return time.Time{}, errors.New("user_name, user_email and user_phone are required")
    }
    when, err := time.Parse(time.RFC3339, b.ReservationDate)
    if err != nil {
        return time.Time{}, errors.New("reservation_date must be RFC3339")
    }
    return when.UTC(), nil
}

// Create handles POST /reservations.  The target restaurant is
// referenced by id.
func (h *ReservationHandler) Create(c echo.Context) error {
    var body reservationBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.RestaurantID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
    }
    return h.create(c, body, body.RestaurantID)
}

// CreateByName handles POST /reservations/create-by-name.  The target
// restaurant is resolved by its unique name.
func (h *ReservationHandler) CreateByName(c echo.Context) error {
    var body reservationBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.RestaurantName) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_name is required"})
    }
    rest, err := h.Restaurants.GetByName(c.Request().Context(), strings.TrimSpace(body.RestaurantName))
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return h.create(c, body, rest.ID)
}

func (h *ReservationHandler) create(c echo.Context, body reservationBody, restaurantID uint64) error {
    when, err := body.validate()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    ctx := c.Request().Context()
    if _, err := h.Restaurants.GetByID(ctx, restaurantID); err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    res := &model.Reservation{
        RestaurantID:    restaurantID,
        UserName:        strings.TrimSpace(body.UserName),
        UserEmail:       strings.TrimSpace(body.UserEmail),
        UserPhone:       strings.TrimSpace(body.UserPhone),
        ReservationDate: when,
    }
    if err := h.Admission.CreateReservation(ctx, res); err != nil {
        switch {
        case errors.Is(err, booking.ErrCapacityExceeded):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "restaurant is fully booked"})
        case errors.Is(err, booking.ErrPastDate):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation date must be in the future"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.JSON(http.StatusCreated, toReservationResponse(res))
}

// GetByToken handles GET /reservations/token/:token.
func (h *ReservationHandler) GetByToken(c echo.Context) error {
    token := c.Param("token")
    res, err := h.Admission.GetReservationByToken(c.Request().Context(), token)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toReservationResponse(res))
}

// ListAll handles GET /reservations.
func (h *ReservationHandler) ListAll(c echo.Context) error {
    reservations, err := h.Admission.GetAllReservations(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// ListByStatus handles GET /reservations/status/:status.
func (h *ReservationHandler) ListByStatus(c echo.Context) error {
    status, ok := model.ParseReservationStatus(strings.ToUpper(c.Param("status")))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation status"})
    }
    reservations, err := h.Admission.GetReservationsByStatus(c.Request().Context(), status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// ListByRestaurant handles GET /reservations/restaurant/:id.
func (h *ReservationHandler) ListByRestaurant(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    reservations, err := h.Admission.GetReservationsByRestaurant(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// ListByRestaurantAndDate handles GET /reservations/restaurant/:id/date.
// The date query parameter selects the calendar day; reservations that
// have already completed are excluded.
func (h *ReservationHandler) ListByRestaurantAndDate(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    date, err := time.Parse(time.RFC3339, c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be RFC3339"})
    }
    reservations, err := h.Admission.GetOpenReservationsByRestaurantAndDate(c.Request().Context(), id, date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// Availability handles GET /reservations/restaurant/:id/availability.
// It pre-flights the capacity check so clients can disable booking UI
// before attempting a write.
func (h *ReservationHandler) Availability(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    full, err := h.Admission.HasReachedReservationLimit(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "restaurant_id": id,
        "fully_booked":  full,
        "capacity":      h.Admission.Capacity(),
    })
}

// UpdateStatus handles PUT /reservations/:token/status.  The new status
// is passed via the status query parameter, mirroring the original API.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
    token := c.Param("token")
    status, ok := model.ParseReservationStatus(strings.ToUpper(c.QueryParam("status")))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation status"})
    }
    res, err := h.Admission.UpdateReservationStatus(c.Request().Context(), token, status)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrReservationNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, booking.ErrInvalidTransition):
            return c.JSON(http.StatusConflict, echo.Map{"error": "status transition not allowed"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.JSON(http.StatusOK, toReservationResponse(res))
}

// Cancel handles DELETE /reservations/:token.  Cancellation is a status
// change, not a row deletion.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    token := c.Param("token")
    if err := h.Admission.CancelReservation(c.Request().Context(), token); err != nil {
        switch {
        case errors.Is(err, repository.ErrReservationNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, booking.ErrInvalidTransition):
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already closed"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.NoContent(http.StatusOK)
}

func toReservationResponses(reservations []model.Reservation) []reservationResponse {
    out := make([]reservationResponse, 0, len(reservations))
    for i := range reservations {
        out = append(out, toReservationResponse(&reservations[i]))
    }
    return out
}
