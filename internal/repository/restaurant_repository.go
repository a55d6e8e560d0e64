package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/moliceiromeals/backend/internal/model"
)

// RestaurantRepo provides CRUD operations for restaurants.  All
// timestamp fields are stored in UTC.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

const restaurantCols = `id, name, location, description, cuisine_type, contact_info, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Location, &rest.Description,
		&rest.CuisineType, &rest.ContactInfo, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// Create inserts a new restaurant and populates the generated ID and
// timestamps on the provided model.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	const q = `INSERT INTO restaurants (name, location, description, cuisine_type, contact_info) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, rest.Name, rest.Location, rest.Description, rest.CuisineType, rest.ContactInfo)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ?`
	got, err := scanRestaurant(r.db.QueryRowContext(ctx, sel, rest.ID))
	if err != nil {
		return err
	}
	*rest = *got
	return nil
}

// GetByID returns the restaurant with the given id or
// ErrRestaurantNotFound when no such row exists.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ?`
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

// GetByName returns the restaurant with the given name.  Names are
// unique, so at most one row matches.  Returns ErrRestaurantNotFound
// when no such row exists.
func (r *RestaurantRepo) GetByName(ctx context.Context, name string) (*model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants WHERE name = ?`
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, q, name))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

// List returns all restaurants ordered by name.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants ORDER BY name`
	return r.queryList(ctx, q)
}

// Search returns restaurants whose name or location contains the query,
// matched case-insensitively.  A single query term covers both columns,
// so searching "aveiro" finds venues named after the city as well as
// venues located there.
func (r *RestaurantRepo) Search(ctx context.Context, query string) ([]model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants WHERE LOWER(name) LIKE ? OR LOWER(location) LIKE ? ORDER BY name`
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	return r.queryList(ctx, q, pattern, pattern)
}

func (r *RestaurantRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	restaurants := make([]model.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

// Update overwrites the mutable fields of an existing restaurant.
// Returns ErrRestaurantNotFound when the id does not exist.
func (r *RestaurantRepo) Update(ctx context.Context, rest *model.Restaurant) error {
	const q = `UPDATE restaurants SET name = ?, location = ?, description = ?, cuisine_type = ?, contact_info = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, rest.Name, rest.Location, rest.Description, rest.CuisineType, rest.ContactInfo, rest.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "missing" from "unchanged": an UPDATE with identical
		// values also reports zero rows on MySQL.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM restaurants WHERE id = ?`, rest.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrRestaurantNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a restaurant.  It refuses to delete a restaurant that
// still has reservations in a non-terminal state and returns
// ErrConflict in that case.  The count and the delete run in one
// transaction, with the count locking the reservation rows, so a
// booking committed between the two statements cannot be orphaned.
func (r *RestaurantRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var active int64
	const countQ = `SELECT COUNT(*) FROM reservations WHERE restaurant_id = ? AND status IN ('PENDING','CONFIRMED') FOR UPDATE`
	if err := tx.QueryRowContext(ctx, countQ, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRestaurantNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
