package handler

import (
	"errors"
	"time"
)

// dateLayout is the wire format for reservation dates.
const dateLayout = "2006-01-02"

// minLeadTime is the minimum interval between now and a slot's start before
// a booking or modification targeting that slot is permitted.
const minLeadTime = time.Hour

// slotStartHours maps each time slot to its local start hour.  Unrecognized
// slot values fall back to the 09:00 baseline for lead-time purposes; the
// ENUM column rejects them at insert time.
var slotStartHours = map[string]int{
	"MORNING":   9,
	"AFTERNOON": 13,
	"EVENING":   17,
}

// Sentinel validation errors; handlers pick the user-facing message.
var (
	errBadDate  = errors.New("invalid date")
	errPastDate = errors.New("date is in the past")
	errLeadTime = errors.New("slot starts too soon")
)

// parseDay interprets a YYYY-MM-DD string at midnight in loc.
func parseDay(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, date, loc)
}

// slotStartAt returns the moment the given slot begins on day.
func slotStartAt(day time.Time, timeSlot string) time.Time {
	h, ok := slotStartHours[timeSlot]
	if !ok {
		h = 9
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
}

// checkBookingWindow applies the self-service booking rules: the date must
// parse, must not be before today (local midnight granularity), and the
// slot's start must be at least minLeadTime away from now.
func checkBookingWindow(date, timeSlot string, now time.Time) error {
	day, err := parseDay(date, now.Location())
	if err != nil {
		return errBadDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return errPastDate
	}
	if slotStartAt(day, timeSlot).Sub(now) < minLeadTime {
		return errLeadTime
	}
	return nil
}

// checkLeadTime is the admin-assign variant: only the 1-hour rule applies,
// with no past-date check.
func checkLeadTime(date, timeSlot string, now time.Time) error {
	day, err := parseDay(date, now.Location())
	if err != nil {
		return errBadDate
	}
	if slotStartAt(day, timeSlot).Sub(now) < minLeadTime {
		return errLeadTime
	}
	return nil
}
