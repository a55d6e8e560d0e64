package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/moliceiromeals/backend/internal/model"
)

// MealRepo provides CRUD operations for meals.  A meal always belongs
// to exactly one restaurant; the availability window is stored at day
// precision in UTC.
type MealRepo struct {
	db *sql.DB
}

// NewMealRepo returns a new MealRepo bound to the given database.
func NewMealRepo(db *sql.DB) *MealRepo { return &MealRepo{db: db} }

const mealCols = `id, restaurant_id, name, description, available_from, available_to, price_cents, created_at, updated_at`

func scanMeal(row interface{ Scan(...any) error }) (*model.Meal, error) {
	var m model.Meal
	err := row.Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Description,
		&m.AvailableFrom, &m.AvailableTo, &m.PriceCents, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new meal and populates the generated ID and
// timestamps on the provided model.  The referenced restaurant must
// exist; a foreign key violation propagates as a database error.
func (r *MealRepo) Create(ctx context.Context, m *model.Meal) error {
	const q = `INSERT INTO meals (restaurant_id, name, description, available_from, available_to, price_cents) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, m.RestaurantID, m.Name, m.Description, m.AvailableFrom, m.AvailableTo, m.PriceCents)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + mealCols + ` FROM meals WHERE id = ?`
	got, err := scanMeal(r.db.QueryRowContext(ctx, sel, m.ID))
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// GetByID returns the meal with the given id or ErrMealNotFound.
func (r *MealRepo) GetByID(ctx context.Context, id uint64) (*model.Meal, error) {
	const q = `SELECT ` + mealCols + ` FROM meals WHERE id = ?`
	m, err := scanMeal(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrMealNotFound
	}
	return m, err
}

// ListByRestaurant returns all meals offered by a restaurant ordered by
// the start of their availability window.
func (r *MealRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Meal, error) {
	const q = `SELECT ` + mealCols + ` FROM meals WHERE restaurant_id = ? ORDER BY available_from, name`
	return r.queryList(ctx, q, restaurantID)
}

// ListAvailableBetween returns a restaurant's meals whose availability
// window overlaps the [from, to] day range: a meal qualifies when it
// starts no later than the range ends and ends no earlier than the
// range starts.
func (r *MealRepo) ListAvailableBetween(ctx context.Context, restaurantID uint64, from, to time.Time) ([]model.Meal, error) {
	const q = `SELECT ` + mealCols + ` FROM meals WHERE restaurant_id = ? AND available_from <= ? AND available_to >= ? ORDER BY available_from, name`
	return r.queryList(ctx, q, restaurantID, to.UTC(), from.UTC())
}

// ListAvailableOn returns a restaurant's meals available on one
// calendar day.
func (r *MealRepo) ListAvailableOn(ctx context.Context, restaurantID uint64, day time.Time) ([]model.Meal, error) {
	return r.ListAvailableBetween(ctx, restaurantID, day, day)
}

func (r *MealRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Meal, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	meals := make([]model.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *m)
	}
	return meals, rows.Err()
}

// Update overwrites the mutable fields of an existing meal.  Returns
// ErrMealNotFound when the id does not exist.
func (r *MealRepo) Update(ctx context.Context, m *model.Meal) error {
	const q = `UPDATE meals SET name = ?, description = ?, available_from = ?, available_to = ?, price_cents = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.AvailableFrom, m.AvailableTo, m.PriceCents, m.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM meals WHERE id = ?`, m.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrMealNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a meal.  Returns ErrMealNotFound when no row matches.
func (r *MealRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM meals WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMealNotFound
	}
	return nil
}
