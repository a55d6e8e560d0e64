// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting SQL error strings. Each repository returns the sentinel
// matching its entity when a lookup finds no row.
package repository

import "errors"

// ErrRestaurantNotFound is returned when a restaurant lookup by id or
// name matches no row. Handlers should translate this into an HTTP 404.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrMealNotFound is returned when a meal lookup matches no row.
var ErrMealNotFound = errors.New("meal not found")

// ErrReservationNotFound is returned when a reservation token does not
// resolve to a stored reservation.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a restaurant that
// still has active reservations. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")
