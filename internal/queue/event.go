// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation transitions
// to CONFIRMED.  It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
    ReservationID   uint64 `json:"reservation_id"`
    Token           string `json:"token"`
    RestaurantID    uint64 `json:"restaurant_id"`
    UserName        string `json:"user_name"`
    UserEmail       string `json:"user_email"`
    ReservationDate string `json:"reservation_date"`
    ConfirmedAt     string `json:"confirmed_at"`
}
