package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/moliceiromeals/backend/internal/model"
)

// ReservationRepo provides persistence for reservations.  It satisfies
// the booking.ReservationStore interface.  Status values are stored as
// the enum strings defined in the model package; all timestamps are in
// UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, restaurant_id, user_name, user_email, user_phone, reservation_date, token, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var status string
	err := row.Scan(
		&res.ID, &res.RestaurantID, &res.UserName, &res.UserEmail, &res.UserPhone,
		&res.ReservationDate, &res.Token, &status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Status = model.ReservationStatus(status)
	return &res, nil
}

// CountActive returns the number of reservations for a restaurant in a
// non-terminal status (PENDING or CONFIRMED).  This is the count the
// admission check compares against the capacity ceiling.
func (r *ReservationRepo) CountActive(ctx context.Context, restaurantID uint64) (int64, error) {
	const q = `SELECT COUNT(*) FROM reservations WHERE restaurant_id = ? AND status IN ('PENDING','CONFIRMED')`
	var n int64
	err := r.db.QueryRowContext(ctx, q, restaurantID).Scan(&n)
	return n, err
}

// Create inserts a new reservation and populates the generated ID and
// timestamps on the provided record.  Token and status must already be
// set by the caller; the unique index on token rejects duplicates.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (restaurant_id, user_name, user_email, user_phone, reservation_date, token, status) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.RestaurantID, res.UserName, res.UserEmail, res.UserPhone,
		res.ReservationDate.UTC(), res.Token, string(res.Status),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(r.db.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// FindByToken returns the reservation identified by its opaque token,
// or ErrReservationNotFound when the token does not resolve.
func (r *ReservationRepo) FindByToken(ctx context.Context, token string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE token = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, token))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// FindAll returns every reservation, newest first.
func (r *ReservationRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations ORDER BY created_at DESC`
	return r.queryList(ctx, q)
}

// FindByStatus returns all reservations currently in the given status,
// newest first.
func (r *ReservationRepo) FindByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE status = ? ORDER BY created_at DESC`
	return r.queryList(ctx, q, string(status))
}

// FindByRestaurant returns all reservations for a restaurant, newest first.
func (r *ReservationRepo) FindByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE restaurant_id = ? ORDER BY created_at DESC`
	return r.queryList(ctx, q, restaurantID)
}

// FindOpenByRestaurantAndDay returns the reservations of a restaurant
// whose reservation date falls on the same calendar day (UTC) as the
// given timestamp and that have not reached COMPLETED.
func (r *ReservationRepo) FindOpenByRestaurantAndDay(ctx context.Context, restaurantID uint64, day time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE restaurant_id = ? AND DATE(reservation_date) = ? AND status != 'COMPLETED' ORDER BY reservation_date`
	return r.queryList(ctx, q, restaurantID, day.UTC().Format("2006-01-02"))
}

// UpdateStatus transitions a reservation from one status to another as
// a compare-and-set: the UPDATE only applies when the stored status
// still equals from.  It returns false when no row changed, either
// because the token does not exist or because a concurrent update won.
// Callers distinguish the two cases with FindByToken.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, token string, from, to model.ReservationStatus) (bool, error) {
	const q = `UPDATE reservations SET status = ? WHERE token = ? AND status = ?`
	result, err := r.db.ExecContext(ctx, q, string(to), token, string(from))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReservationRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}
