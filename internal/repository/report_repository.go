package repository

import (
	"context"
	"database/sql"
)

// ReportRepo serves the occupancy report queries.  MySQL has no
// generate_series, so the repo only returns grouped counts; the handler
// materializes the full date x slot grid in Go.
type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// SlotCount is the number of active reservations for one date and slot.
type SlotCount struct {
	Date     string
	TimeSlot string
	Reserved int
}

// ActiveCounts returns active-reservation counts grouped by date and slot
// within [from, to].  Dates and slots with zero reservations are absent.
func (r *ReportRepo) ActiveCounts(ctx context.Context, from, to string) ([]SlotCount, error) {
	const q = `SELECT DATE_FORMAT(date, '%Y-%m-%d'), time_slot, COUNT(*)
	           FROM reservations
	           WHERE date BETWEEN ? AND ? AND status = 'active'
	           GROUP BY date, time_slot`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]SlotCount, 0)
	for rows.Next() {
		var sc SlotCount
		if err := rows.Scan(&sc.Date, &sc.TimeSlot, &sc.Reserved); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
