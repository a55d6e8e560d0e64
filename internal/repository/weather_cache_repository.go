package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/moliceiromeals/backend/internal/model"
)

// WeatherCacheRepo persists cached weather forecasts in the
// weather_cache table.  The table carries a unique index on
// (location, day) so each key maps to at most one live row.  It
// satisfies the weather.Store interface.
type WeatherCacheRepo struct {
	db *sql.DB
}

// NewWeatherCacheRepo returns a new WeatherCacheRepo bound to the given database.
func NewWeatherCacheRepo(db *sql.DB) *WeatherCacheRepo { return &WeatherCacheRepo{db: db} }

const forecastCols = `id, location, day, max_temperature, min_temperature, humidity, chance_of_rain, fetched_at`

// Get returns the cached forecast for a (location, day) key, or
// (nil, nil) when no entry exists.  Absence is not an error here: the
// cache layer decides whether to treat it as a miss.
func (r *WeatherCacheRepo) Get(ctx context.Context, location string, day time.Time) (*model.Forecast, error) {
	const q = `SELECT ` + forecastCols + ` FROM weather_cache WHERE location = ? AND day = ?`
	var f model.Forecast
	err := r.db.QueryRowContext(ctx, q, location, day.UTC()).Scan(
		&f.ID, &f.Location, &f.Day, &f.MaxTemperature, &f.MinTemperature,
		&f.Humidity, &f.ChanceOfRain, &f.FetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Upsert inserts a forecast or overwrites the existing row for the same
// (location, day) key.  Concurrent refreshes of one key are
// last-writer-wins, which is acceptable for cache data.
func (r *WeatherCacheRepo) Upsert(ctx context.Context, f *model.Forecast) error {
	const q = `INSERT INTO weather_cache (location, day, max_temperature, min_temperature, humidity, chance_of_rain, fetched_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               max_temperature = VALUES(max_temperature),
	               min_temperature = VALUES(min_temperature),
	               humidity        = VALUES(humidity),
	               chance_of_rain  = VALUES(chance_of_rain),
	               fetched_at      = VALUES(fetched_at)`
	_, err := r.db.ExecContext(ctx, q,
		f.Location, f.Day.UTC(), f.MaxTemperature, f.MinTemperature,
		f.Humidity, f.ChanceOfRain, f.FetchedAt.UTC(),
	)
	return err
}

// DeleteOlderThan removes every entry whose fetched_at is before the
// threshold and returns the number of rows removed.
func (r *WeatherCacheRepo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	const q = `DELETE FROM weather_cache WHERE fetched_at < ?`
	result, err := r.db.ExecContext(ctx, q, threshold.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
