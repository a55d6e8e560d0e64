package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/model"
    "github.com/moliceiromeals/backend/internal/repository"
)

// RestaurantHandler exposes CRUD endpoints for restaurants.
type RestaurantHandler struct {
    Restaurants *repository.RestaurantRepo
}

// NewRestaurantHandler constructs a RestaurantHandler.  The repository
// must be non-nil.
func NewRestaurantHandler(restaurants *repository.RestaurantRepo) *RestaurantHandler {
    if restaurants == nil {
        panic("nil repository passed to NewRestaurantHandler")
    }
    return &RestaurantHandler{Restaurants: restaurants}
}

type restaurantBody struct {
    Name        string `json:"name"`
    Location    string `json:"location"`
    Description string `json:"description"`
    CuisineType string `json:"cuisine_type"`
    ContactInfo string `json:"contact_info"`
}

type restaurantResponse struct {
    ID          uint64 `json:"id"`
    Name        string `json:"name"`
    Location    string `json:"location"`
    Description string `json:"description"`
    CuisineType string `json:"cuisine_type"`
    ContactInfo string `json:"contact_info"`
}

func toRestaurantResponse(r *model.Restaurant) restaurantResponse {
    return restaurantResponse{
        ID:          r.ID,
        Name:        r.Name,
        Location:    r.Location,
        Description: r.Description,
        CuisineType: r.CuisineType,
        ContactInfo: r.ContactInfo,
    }
}

// Create handles POST /restaurants.
func (h *RestaurantHandler) Create(c echo.Context) error {
    var body restaurantBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Location) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
    }
    rest := &model.Restaurant{
        Name:        strings.TrimSpace(body.Name),
        Location:    strings.TrimSpace(body.Location),
        Description: body.Description,
        CuisineType: body.CuisineType,
        ContactInfo: body.ContactInfo,
    }
    if err := h.Restaurants.Create(c.Request().Context(), rest); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, toRestaurantResponse(rest))
}

// Get handles GET /restaurants/:id.
func (h *RestaurantHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    rest, err := h.Restaurants.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toRestaurantResponse(rest))
}

// List handles GET /restaurants.
func (h *RestaurantHandler) List(c echo.Context) error {
    restaurants, err := h.Restaurants.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]restaurantResponse, 0, len(restaurants))
    for i := range restaurants {
        out = append(out, toRestaurantResponse(&restaurants[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// Search handles GET /restaurants/search?query=...  The query term is
// matched against both name and location.
func (h *RestaurantHandler) Search(c echo.Context) error {
    query := strings.TrimSpace(c.QueryParam("query"))
    if query == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "query is required"})
    }
    restaurants, err := h.Restaurants.Search(c.Request().Context(), query)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]restaurantResponse, 0, len(restaurants))
    for i := range restaurants {
        out = append(out, toRestaurantResponse(&restaurants[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// Update handles PUT /restaurants/:id.
func (h *RestaurantHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var body restaurantBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Location) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
    }
    rest := &model.Restaurant{
        ID:          id,
        Name:        strings.TrimSpace(body.Name),
        Location:    strings.TrimSpace(body.Location),
        Description: body.Description,
        CuisineType: body.CuisineType,
        ContactInfo: body.ContactInfo,
    }
    if err := h.Restaurants.Update(c.Request().Context(), rest); err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toRestaurantResponse(rest))
}

// Delete handles DELETE /restaurants/:id.  Deleting a restaurant that
// still has active reservations is rejected with 409.
func (h *RestaurantHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    if err := h.Restaurants.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant has active reservations"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
