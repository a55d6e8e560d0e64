package model

import "time"

// Forecast is one cached weather forecast for a (location, day) pair.
// At most one live row exists per key; a refresh overwrites the row in
// place.  FetchedAt records the moment of the most recent successful
// provider fetch and drives the cache TTL.
//
// Fields:
//  ID             – primary key identifier.
//  Location       – normalized (trimmed, lower-cased) location string.
//  Day            – calendar date the forecast applies to, truncated to
//                   midnight UTC.
//  MaxTemperature – forecast daily maximum in °C.
//  MinTemperature – forecast daily minimum in °C.
//  Humidity       – average relative humidity in percent.
//  ChanceOfRain   – probability of rain in percent.
//  FetchedAt      – when the provider last refreshed this entry.
type Forecast struct {
    ID             uint64    // weather_cache.id
    Location       string    // weather_cache.location
    Day            time.Time // weather_cache.day
    MaxTemperature float64   // weather_cache.max_temperature
    MinTemperature float64   // weather_cache.min_temperature
    Humidity       float64   // weather_cache.humidity
    ChanceOfRain   float64   // weather_cache.chance_of_rain
    FetchedAt      time.Time // weather_cache.fetched_at
}
