package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"time"
)

// Seat represents a physical desk seat.  Status is a manual flag set by
// admins and is independent of reservations: an "available" seat can still
// be booked out for a specific date and slot.
type Seat struct {
	ID         uint64    `json:"id"`
	SeatNumber string    `json:"seat_number"`
	Location   *string   `json:"location"`
	Status     string    `json:"status"`
	Branch     string    `json:"branch"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SeatAvailability annotates a seat with whether it is free for one exact
// date and time slot.
type SeatAvailability struct {
	Seat
	IsAvailable bool `json:"is_available"`
}

// SeatPatch carries the optional fields of a partial seat update.  Nil
// fields keep their previous value.
type SeatPatch struct {
	SeatNumber *string
	Location   *string
	Status     *string
	Branch     *string
}

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, seat_number, location, status, branch, created_at, updated_at`

// Create inserts a seat record.  On success the seat's ID is populated.
// A duplicate seat_number yields ErrDuplicate.
func (r *SeatRepo) Create(ctx context.Context, s *Seat) error {
	const q = `INSERT INTO seats (seat_number, location, status, branch) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.SeatNumber, s.Location, s.Status, s.Branch)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = ?`, s.ID).
		Scan(&s.ID, &s.SeatNumber, &s.Location, &s.Status, &s.Branch, &s.CreatedAt, &s.UpdatedAt)
}

// ListAll returns every seat regardless of status, ordered by seat_number.
func (r *SeatRepo) ListAll(ctx context.Context) ([]Seat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+seatColumns+` FROM seats ORDER BY seat_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Seat, 0)
	for rows.Next() {
		var s Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.Location, &s.Status, &s.Branch, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAvailability returns available-status seats annotated with whether an
// active reservation already occupies the given date and slot.
func (r *SeatRepo) ListAvailability(ctx context.Context, date, timeSlot string) ([]SeatAvailability, error) {
	const q = `SELECT s.id, s.seat_number, s.location, s.status, s.branch, s.created_at, s.updated_at,
	                  NOT EXISTS (
	                      SELECT 1 FROM reservations r
	                      WHERE r.seat_id = s.id AND r.date = ? AND r.time_slot = ? AND r.status = 'active'
	                  ) AS is_available
	           FROM seats s
	           WHERE s.status = 'available'
	           ORDER BY s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, date, timeSlot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]SeatAvailability, 0)
	for rows.Next() {
		var s SeatAvailability
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.Location, &s.Status, &s.Branch,
			&s.CreatedAt, &s.UpdatedAt, &s.IsAvailable); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*Seat, error) {
	var s Seat
	err := r.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = ?`, id).
		Scan(&s.ID, &s.SeatNumber, &s.Location, &s.Status, &s.Branch, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdatePartial applies a COALESCE-style partial update: nil patch fields
// retain the stored value.  It returns the updated row, or ErrNotFound when
// the id does not exist.  RowsAffected cannot distinguish "no such row" from
// "nothing changed" in MySQL, so existence is checked by reading back.
func (r *SeatRepo) UpdatePartial(ctx context.Context, id uint64, p SeatPatch) (*Seat, error) {
	const q = `UPDATE seats
	           SET seat_number = COALESCE(?, seat_number),
	               location    = COALESCE(?, location),
	               status      = COALESCE(?, status),
	               branch      = COALESCE(?, branch)
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, p.SeatNumber, p.Location, p.Status, p.Branch, id); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a seat.  Matching the original API, no error is reported
// when the id does not exist.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE id = ?`, id)
	return err
}

// CountAll returns the total number of seats regardless of status.  The
// usage report uses it as the occupancy denominator.
func (r *SeatRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats`).Scan(&n)
	return n, err
}
