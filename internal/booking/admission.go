// Package booking enforces the per-restaurant reservation capacity and
// owns the reservation status state machine.  A restaurant may have at
// most a configured number of reservations in a non-terminal status;
// creation is rejected once that ceiling is reached.
package booking

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moliceiromeals/backend/internal/model"
)

// ErrCapacityExceeded is returned when a restaurant already has the
// maximum number of active reservations.  Handlers surface it as a
// distinct "fully booked" outcome rather than a server error.
var ErrCapacityExceeded = errors.New("restaurant has reached the maximum number of reservations")

// ErrInvalidTransition is returned when a status change is not
// permitted from the reservation's current state.
var ErrInvalidTransition = errors.New("invalid reservation status transition")

// ErrPastDate is returned when a reservation is requested for a date
// that is not strictly in the future.
var ErrPastDate = errors.New("reservation date must be in the future")

// ReservationStore is the persistence contract the controller depends
// on.  CountActive counts reservations in a non-terminal status for one
// restaurant.  UpdateStatus is a compare-and-set: it only applies when
// the stored status still equals from and reports whether a row
// changed.
type ReservationStore interface {
	CountActive(ctx context.Context, restaurantID uint64) (int64, error)
	Create(ctx context.Context, res *model.Reservation) error
	FindByToken(ctx context.Context, token string) (*model.Reservation, error)
	FindAll(ctx context.Context) ([]model.Reservation, error)
	FindByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error)
	FindByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error)
	FindOpenByRestaurantAndDay(ctx context.Context, restaurantID uint64, day time.Time) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, token string, from, to model.ReservationStatus) (bool, error)
}

// ConfirmedPublisher receives an event when a reservation transitions
// to CONFIRMED.  Publishing is best effort: failures are logged and do
// not fail the transition.
type ConfirmedPublisher interface {
	PublishReservationConfirmed(ctx context.Context, res *model.Reservation) error
}

// Admission admits or rejects reservation creation against a capacity
// ceiling and applies status transitions.
//
// The capacity check-then-insert sequence is serialized per restaurant
// with an in-process mutex so two concurrent requests cannot both pass
// the count check and overshoot the ceiling.  The (restaurant_id,
// status) index keeps the count cheap under the lock.
type Admission struct {
	store     ReservationStore
	capacity  int64
	publisher ConfirmedPublisher
	clock     func() time.Time

	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// Option configures an Admission controller.
type Option func(*Admission)

// WithPublisher sets the confirmed-event publisher.
func WithPublisher(p ConfirmedPublisher) Option {
	return func(a *Admission) { a.publisher = p }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Admission) { a.clock = now }
}

// NewAdmission constructs an Admission controller.  capacity is the
// maximum number of concurrently active reservations per restaurant.
func NewAdmission(store ReservationStore, capacity int64, opts ...Option) *Admission {
	if store == nil {
		panic("nil store passed to NewAdmission")
	}
	a := &Admission{
		store:    store,
		capacity: capacity,
		clock:    func() time.Time { return time.Now().UTC() },
		locks:    map[uint64]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// restaurantLock returns the mutex serializing admission for one
// restaurant, creating it on first use.
func (a *Admission) restaurantLock(restaurantID uint64) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[restaurantID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[restaurantID] = l
	}
	return l
}

// CreateReservation admits a reservation candidate.  The candidate must
// carry RestaurantID, contact fields and a strictly future
// ReservationDate; token and status are assigned here.  When the
// restaurant's active count has reached the ceiling the call fails with
// ErrCapacityExceeded and nothing is written.
func (a *Admission) CreateReservation(ctx context.Context, res *model.Reservation) error {
	if !res.ReservationDate.After(a.clock()) {
		return ErrPastDate
	}

	l := a.restaurantLock(res.RestaurantID)
	l.Lock()
	defer l.Unlock()

	active, err := a.store.CountActive(ctx, res.RestaurantID)
	if err != nil {
		return err
	}
	if active >= a.capacity {
		log.Printf("booking: restaurant %d is fully booked (%d active)", res.RestaurantID, active)
		return ErrCapacityExceeded
	}

	res.Token = uuid.NewString()
	res.Status = model.StatusPending
	return a.store.Create(ctx, res)
}

// GetReservationByToken resolves a reservation by its opaque token.
func (a *Admission) GetReservationByToken(ctx context.Context, token string) (*model.Reservation, error) {
	return a.store.FindByToken(ctx, token)
}

// GetAllReservations lists every reservation.
func (a *Admission) GetAllReservations(ctx context.Context) ([]model.Reservation, error) {
	return a.store.FindAll(ctx)
}

// GetReservationsByStatus lists reservations in one status.
func (a *Admission) GetReservationsByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	return a.store.FindByStatus(ctx, status)
}

// GetReservationsByRestaurant lists all reservations of a restaurant.
func (a *Admission) GetReservationsByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error) {
	return a.store.FindByRestaurant(ctx, restaurantID)
}

// GetOpenReservationsByRestaurantAndDate lists the not-yet-completed
// reservations of a restaurant on one calendar day.
func (a *Admission) GetOpenReservationsByRestaurantAndDate(ctx context.Context, restaurantID uint64, date time.Time) ([]model.Reservation, error) {
	return a.store.FindOpenByRestaurantAndDay(ctx, restaurantID, date)
}

// UpdateReservationStatus applies a status transition identified by
// token.  When the token does not resolve the store's not-found error
// is propagated.  It fails with ErrInvalidTransition when the state
// machine forbids the change, leaving the stored status untouched.  The
// store-level compare-and-set guards against a concurrent transition
// slipping between the read and the write.
func (a *Admission) UpdateReservationStatus(ctx context.Context, token string, newStatus model.ReservationStatus) (*model.Reservation, error) {
	res, err := a.store.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	changed, err := a.store.UpdateStatus(ctx, token, res.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Somebody moved the reservation first; re-read so the caller
		// sees the state that blocked the transition.
		if _, err := a.store.FindByToken(ctx, token); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	res.Status = newStatus
	if newStatus == model.StatusConfirmed && a.publisher != nil {
		if err := a.publisher.PublishReservationConfirmed(ctx, res); err != nil {
			log.Printf("booking: publish confirmed event for %s: %v", token, err)
		}
	}
	return res, nil
}

// CancelReservation is a convenience wrapper for transitioning to
// CANCELLED.  Cancellation is a status change, not a row deletion.
func (a *Admission) CancelReservation(ctx context.Context, token string) error {
	_, err := a.UpdateReservationStatus(ctx, token, model.StatusCancelled)
	return err
}

// HasReachedReservationLimit reports whether a restaurant's active
// reservation count has reached the ceiling.  It is a pre-flight read
// of the same count CreateReservation checks; callers can use it to
// avoid attempting a write that would be rejected.
func (a *Admission) HasReachedReservationLimit(ctx context.Context, restaurantID uint64) (bool, error) {
	active, err := a.store.CountActive(ctx, restaurantID)
	if err != nil {
		return false, err
	}
	return active >= a.capacity, nil
}

// Capacity returns the configured per-restaurant ceiling.
func (a *Admission) Capacity() int64 { return a.capacity }
