package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ReservationRepo provides CRUD operations for reservations.  Dates are
// handled as YYYY-MM-DD strings throughout: MySQL formats them on the way
// out (DATE_FORMAT) so JSON payloads never leak timestamps, mirroring how
// the rest of the API treats a reservation date as a calendar day.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Reservation is the row shape returned after create and update.
type Reservation struct {
	ID       uint64 `json:"id"`
	InternID uint64 `json:"intern_id"`
	SeatID   uint64 `json:"seat_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Status   string `json:"status"`
}

// OwnedReservation is a reservation joined with its seat, as shown to the
// owning intern.
type OwnedReservation struct {
	ID         uint64  `json:"id"`
	Date       string  `json:"date"`
	TimeSlot   string  `json:"time_slot"`
	Status     string  `json:"status"`
	SeatNumber string  `json:"seat_number"`
	Location   *string `json:"location"`
}

// AdminReservation is a reservation joined with both the intern and the
// seat, as shown on the admin listing.
type AdminReservation struct {
	ReservationID uint64  `json:"reservation_id"`
	InternID      uint64  `json:"intern_id"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"time_slot"`
	Status        string  `json:"status"`
	InternName    string  `json:"intern_name"`
	InternEmail   string  `json:"intern_email"`
	InternRole    string  `json:"intern_role"`
	SeatNumber    string  `json:"seat_number"`
	Location      *string `json:"location"`
}

const reservationReturning = `SELECT id, intern_id, seat_id, DATE_FORMAT(date, '%Y-%m-%d'), time_slot, status
                              FROM reservations WHERE id = ?`

// Create inserts a reservation and returns the stored row.  Violating either
// uniqueness key (seat+date+slot, or intern+date) yields ErrDuplicate; the
// database constraint is the only guard against racing bookings.
func (r *ReservationRepo) Create(ctx context.Context, internID, seatID uint64, date, timeSlot string) (Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (intern_id, seat_id, date, time_slot) VALUES (?, ?, ?, ?)`,
		internID, seatID, date, timeSlot)
	if err != nil {
		if isDuplicateKey(err) {
			return Reservation{}, ErrDuplicate
		}
		return Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Reservation{}, err
	}
	return r.getByID(ctx, uint64(id))
}

func (r *ReservationRepo) getByID(ctx context.Context, id uint64) (Reservation, error) {
	var rec Reservation
	err := r.db.QueryRowContext(ctx, reservationReturning, id).
		Scan(&rec.ID, &rec.InternID, &rec.SeatID, &rec.Date, &rec.TimeSlot, &rec.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return Reservation{}, ErrNotFound
	}
	return rec, err
}

// GetOwned fetches a reservation scoped to its owner.  A row belonging to a
// different intern is reported as ErrNotFound, not as a permission error, so
// the API does not reveal foreign reservation ids.
func (r *ReservationRepo) GetOwned(ctx context.Context, id, internID uint64) (Reservation, error) {
	const q = `SELECT id, intern_id, seat_id, DATE_FORMAT(date, '%Y-%m-%d'), time_slot, status
	           FROM reservations WHERE id = ? AND intern_id = ?`
	var rec Reservation
	err := r.db.QueryRowContext(ctx, q, id, internID).
		Scan(&rec.ID, &rec.InternID, &rec.SeatID, &rec.Date, &rec.TimeSlot, &rec.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return Reservation{}, ErrNotFound
	}
	return rec, err
}

// ListForIntern partitions the intern's reservations around today: current
// (date >= today) in ascending order, past (date < today) in descending
// order, both joined with seat number and location.
func (r *ReservationRepo) ListForIntern(ctx context.Context, internID uint64, today string) (current, past []OwnedReservation, err error) {
	const base = `SELECT r.id, DATE_FORMAT(r.date, '%Y-%m-%d'), r.time_slot, r.status, s.seat_number, s.location
	              FROM reservations r
	              JOIN seats s ON s.id = r.seat_id
	              WHERE r.intern_id = ? AND r.date `

	current, err = r.queryOwned(ctx, base+`>= ? ORDER BY r.date ASC, r.time_slot ASC`, internID, today)
	if err != nil {
		return nil, nil, err
	}
	past, err = r.queryOwned(ctx, base+`< ? ORDER BY r.date DESC, r.time_slot DESC`, internID, today)
	if err != nil {
		return nil, nil, err
	}
	return current, past, nil
}

func (r *ReservationRepo) queryOwned(ctx context.Context, q string, args ...interface{}) ([]OwnedReservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]OwnedReservation, 0)
	for rows.Next() {
		var o OwnedReservation
		if err := rows.Scan(&o.ID, &o.Date, &o.TimeSlot, &o.Status, &o.SeatNumber, &o.Location); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateOwned reassigns seat, date and slot on an owned reservation in
// place.  The caller must have verified ownership via GetOwned first; the
// WHERE clause still scopes to the owner as a second line of defense.
func (r *ReservationRepo) UpdateOwned(ctx context.Context, id, internID, seatID uint64, date, timeSlot string) (Reservation, error) {
	const q = `UPDATE reservations SET seat_id = ?, date = ?, time_slot = ? WHERE id = ? AND intern_id = ?`
	if _, err := r.db.ExecContext(ctx, q, seatID, date, timeSlot, id, internID); err != nil {
		if isDuplicateKey(err) {
			return Reservation{}, ErrDuplicate
		}
		return Reservation{}, err
	}
	return r.getByID(ctx, id)
}

// DeleteOwned hard-deletes an owned reservation.  ErrNotFound covers both an
// unknown id and a row owned by someone else.
func (r *ReservationRepo) DeleteOwned(ctx context.Context, id, internID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE id = ? AND intern_id = ?`, id, internID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AdminList returns reservations joined with user and seat info, optionally
// filtered by date and/or intern.  Ordered by date descending, then slot in
// chronological order (the ENUM's declaration order).
func (r *ReservationRepo) AdminList(ctx context.Context, date string, internID uint64) ([]AdminReservation, error) {
	q := `SELECT r.id, r.intern_id, DATE_FORMAT(r.date, '%Y-%m-%d'), r.time_slot, r.status,
	             u.name, u.email, u.role, s.seat_number, s.location
	      FROM reservations r
	      JOIN users u ON u.id = r.intern_id
	      JOIN seats s ON s.id = r.seat_id`

	args := make([]interface{}, 0, 2)
	where := ""
	if date != "" {
		where = " WHERE r.date = ?"
		args = append(args, date)
	}
	if internID != 0 {
		if where == "" {
			where = " WHERE r.intern_id = ?"
		} else {
			where += " AND r.intern_id = ?"
		}
		args = append(args, internID)
	}
	q += where + " ORDER BY r.date DESC, r.time_slot ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]AdminReservation, 0)
	for rows.Next() {
		var a AdminReservation
		if err := rows.Scan(&a.ReservationID, &a.InternID, &a.Date, &a.TimeSlot, &a.Status,
			&a.InternName, &a.InternEmail, &a.InternRole, &a.SeatNumber, &a.Location); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// PurgeOlderThan hard-deletes reservations dated more than the given number
// of months before today and returns the number of rows removed.
func (r *ReservationRepo) PurgeOlderThan(ctx context.Context, months int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE date < DATE_SUB(CURDATE(), INTERVAL ? MONTH)`, months)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
