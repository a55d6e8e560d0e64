package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
// PENDING is the only initial state.  CANCELLED and COMPLETED are
// terminal: once a reservation reaches either, no further transitions
// are permitted.
type ReservationStatus string

const (
    StatusPending   ReservationStatus = "PENDING"   // created, awaiting confirmation
    StatusConfirmed ReservationStatus = "CONFIRMED" // accepted by the restaurant
    StatusCancelled ReservationStatus = "CANCELLED" // terminal
    StatusCompleted ReservationStatus = "COMPLETED" // terminal
)

// ParseReservationStatus converts a raw string into a ReservationStatus.
// The second return value reports whether the input named a known status.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
    switch ReservationStatus(s) {
    case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
        return ReservationStatus(s), true
    }
    return "", false
}

// Active reports whether the status counts against a restaurant's
// reservation capacity.  Only non-terminal states occupy a slot.
func (s ReservationStatus) Active() bool {
    return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transitions are possible.
func (s ReservationStatus) Terminal() bool {
    return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo implements the reservation state machine:
//
//	PENDING   -> CONFIRMED, CANCELLED
//	CONFIRMED -> CANCELLED, COMPLETED
//	CANCELLED -> (none)
//	COMPLETED -> (none)
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
    switch s {
    case StatusPending:
        return next == StatusConfirmed || next == StatusCancelled
    case StatusConfirmed:
        return next == StatusCancelled || next == StatusCompleted
    }
    return false
}

// Reservation records a customer's booking at a restaurant.  The token
// is the external handle: it is globally unique and opaque, and callers
// use it instead of the numeric ID.  All timestamps are stored in UTC.
//
// Fields:
//  ID              – primary key identifier.
//  RestaurantID    – restaurant the reservation belongs to.
//  UserName        – name of the customer.
//  UserEmail       – contact email.
//  UserPhone       – contact phone number.
//  ReservationDate – when the customer will arrive; strictly future at creation.
//  Token           – unique opaque handle assigned at creation.
//  Status          – current lifecycle state.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
    ID              uint64            // reservations.id
    RestaurantID    uint64            // reservations.restaurant_id
    UserName        string            // reservations.user_name
    UserEmail       string            // reservations.user_email
    UserPhone       string            // reservations.user_phone
    ReservationDate time.Time         // reservations.reservation_date
    Token           string            // reservations.token (unique)
    Status          ReservationStatus // reservations.status
    CreatedAt       time.Time         // reservations.created_at
    UpdatedAt       time.Time         // reservations.updated_at
}
