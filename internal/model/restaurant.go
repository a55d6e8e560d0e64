package model

import "time"

// Restaurant represents a restaurant that accepts reservations and
// serves meals.  Each restaurant has a bounded number of concurrently
// active reservations, enforced by the booking layer.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name, unique per deployment.
//  Location    – city or address; also used as the weather lookup key.
//  Description – free-form description.
//  CuisineType – e.g. "portuguese", "italian".
//  ContactInfo – phone or email for the venue.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Restaurant struct {
    ID          uint64    // restaurants.id
    Name        string    // restaurants.name
    Location    string    // restaurants.location
    Description string    // restaurants.description
    CuisineType string    // restaurants.cuisine_type
    ContactInfo string    // restaurants.contact_info
    CreatedAt   time.Time // restaurants.created_at
    UpdatedAt   time.Time // restaurants.updated_at
}
