package model

import "time"

// Meal is a dish offered by a restaurant during an availability window.
//
// Fields:
//  ID            – primary key identifier.
//  RestaurantID  – restaurant offering the meal.
//  Name          – dish name.
//  Description   – free-form description.
//  AvailableFrom – first day the meal is offered (UTC, day precision).
//  AvailableTo   – last day the meal is offered (UTC, day precision).
//  PriceCents    – price in cents to avoid floating point money.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Meal struct {
    ID            uint64    // meals.id
    RestaurantID  uint64    // meals.restaurant_id
    Name          string    // meals.name
    Description   string    // meals.description
    AvailableFrom time.Time // meals.available_from
    AvailableTo   time.Time // meals.available_to
    PriceCents    uint32    // meals.price_cents
    CreatedAt     time.Time // meals.created_at
    UpdatedAt     time.Time // meals.updated_at
}
