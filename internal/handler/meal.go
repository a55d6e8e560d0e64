package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/model"
    "github.com/moliceiromeals/backend/internal/repository"
)

// MealHandler exposes CRUD endpoints for meals.  A meal always belongs
// to a restaurant; creation verifies the restaurant exists so a foreign
// key violation surfaces as a clean 404 instead of a database error.
type MealHandler struct {
    Meals       *repository.MealRepo
    Restaurants *repository.RestaurantRepo
}

// NewMealHandler constructs a MealHandler.  All dependencies must be non-nil.
func NewMealHandler(meals *repository.MealRepo, restaurants *repository.RestaurantRepo) *MealHandler {
    if meals == nil || restaurants == nil {
        panic("nil repository passed to NewMealHandler")
    }
    return &MealHandler{Meals: meals, Restaurants: restaurants}
}

type mealBody struct {
    RestaurantID  uint64 `json:"restaurant_id"`
    Name          string `json:"name"`
    Description   string `json:"description"`
    AvailableFrom string `json:"available_from"` // YYYY-MM-DD
    AvailableTo   string `json:"available_to"`   // YYYY-MM-DD
    PriceCents    uint32 `json:"price_cents"`
}

type mealResponse struct {
    ID            uint64 `json:"id"`
    RestaurantID  uint64 `json:"restaurant_id"`
    Name          string `json:"name"`
    Description   string `json:"description"`
    AvailableFrom string `json:"available_from"`
    AvailableTo   string `json:"available_to"`
    PriceCents    uint32 `json:"price_cents"`
}

func toMealResponse(m *model.Meal) mealResponse {
    return mealResponse{
        ID:            m.ID,
        RestaurantID:  m.RestaurantID,
        Name:          m.Name,
        Description:   m.Description,
        AvailableFrom: m.AvailableFrom.UTC().Format("2006-01-02"),
        AvailableTo:   m.AvailableTo.UTC().Format("2006-01-02"),
        PriceCents:    m.PriceCents,
    }
}

func (b *mealBody) toModel() (*model.Meal, error) {
    if strings.TrimSpace(b.Name) == "" {
        return nil, errors.New("name is required")
    }
    from, err := time.ParseInLocation("2006-01-02", b.AvailableFrom, time.UTC)
    if err != nil {
        return nil, errors.New("available_from must be YYYY-MM-DD")
    }
    to, err := time.ParseInLocation("2006-01-02", b.AvailableTo, time.UTC)
    if err != nil {
        return nil, errors.New("available_to must be YYYY-MM-DD")
    }
    if to.Before(from) {
        return nil, errors.New("available_to must not precede available_from")
    }
    return &model.Meal{
        RestaurantID:  b.RestaurantID,
        Name:          strings.TrimSpace(b.Name),
        Description:   b.Description,
        AvailableFrom: from,
        AvailableTo:   to,
        PriceCents:    b.PriceCents,
    }, nil
}

// Create handles POST /meals.
func (h *MealHandler) Create(c echo.Context) error {
    var body mealBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    meal, err := body.toModel()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    ctx := c.Request().Context()
    if _, err := h.Restaurants.GetByID(ctx, meal.RestaurantID); err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.Meals.Create(ctx, meal); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, toMealResponse(meal))
}

// Get handles GET /meals/:id.
func (h *MealHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid meal id"})
    }
    meal, err := h.Meals.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrMealNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "meal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toMealResponse(meal))
}

// ListByRestaurant handles GET /restaurants/:id/meals.
func (h *MealHandler) ListByRestaurant(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    meals, err := h.Meals.ListByRestaurant(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toMealResponses(meals))
}

func toMealResponses(meals []model.Meal) []mealResponse {
    out := make([]mealResponse, 0, len(meals))
    for i := range meals {
        out = append(out, toMealResponse(&meals[i]))
    }
    return out
}

// ListUpcomingByRestaurant handles
// GET /meals/restaurant/:id/upcoming?startDate=...&endDate=...
// It returns the restaurant's meals whose availability window overlaps
// the requested day range.  Both bounds are required, YYYY-MM-DD.
func (h *MealHandler) ListUpcomingByRestaurant(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    start, err := time.ParseInLocation("2006-01-02", c.QueryParam("startDate"), time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must be YYYY-MM-DD"})
    }
    end, err := time.ParseInLocation("2006-01-02", c.QueryParam("endDate"), time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate must be YYYY-MM-DD"})
    }
    if end.Before(start) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate must not precede startDate"})
    }
    meals, err := h.Meals.ListAvailableBetween(c.Request().Context(), id, start, end)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toMealResponses(meals))
}

// ListByDate handles GET /meals/restaurant/:id/date/:date, listing the
// meals a restaurant offers on one calendar day.
func (h *MealHandler) ListByDate(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    meals, err := h.Meals.ListAvailableOn(c.Request().Context(), id, day)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toMealResponses(meals))
}

// Update handles PUT /meals/:id.
func (h *MealHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid meal id"})
    }
    var body mealBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    meal, err := body.toModel()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    meal.ID = id
    if err := h.Meals.Update(c.Request().Context(), meal); err != nil {
        if errors.Is(err, repository.ErrMealNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "meal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toMealResponse(meal))
}

// Delete handles DELETE /meals/:id.
func (h *MealHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid meal id"})
    }
    if err := h.Meals.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrMealNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "meal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}
