package handler

import (
	"errors"
	"testing"
	"time"
)

func TestSlotStartAt(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		slot string
		hour int
	}{
		{"MORNING", 9},
		{"AFTERNOON", 13},
		{"EVENING", 17},
		{"NIGHT", 9}, // unknown slots fall back to the morning baseline
		{"", 9},
	}
	for _, tc := range cases {
		got := slotStartAt(day, tc.slot)
		if got.Hour() != tc.hour {
			t.Errorf("slotStartAt(%q): hour = %d, want %d", tc.slot, got.Hour(), tc.hour)
		}
		if got.Year() != 2026 || got.Month() != 3 || got.Day() != 10 {
			t.Errorf("slotStartAt(%q) moved the day: %v", tc.slot, got)
		}
	}
}

func TestCheckBookingWindow(t *testing.T) {
	// 07:00 local on 2026-03-10: the 09:00 morning slot is 2h away.
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date string
		slot string
		want error
	}{
		{"garbage date", "10-03-2026", "MORNING", errBadDate},
		{"empty date", "", "MORNING", errBadDate},
		{"yesterday", "2026-03-09", "MORNING", errPastDate},
		{"today with 2h lead", "2026-03-10", "MORNING", nil},
		{"today afternoon", "2026-03-10", "AFTERNOON", nil},
		{"tomorrow", "2026-03-11", "MORNING", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkBookingWindow(tc.date, tc.slot, now)
			if !errors.Is(err, tc.want) {
				t.Fatalf("checkBookingWindow(%q, %q) = %v, want %v", tc.date, tc.slot, err, tc.want)
			}
		})
	}
}

func TestCheckBookingWindowLeadBoundary(t *testing.T) {
	day := "2026-03-10"

	// 59 minutes before the slot: too late.
	now := time.Date(2026, 3, 10, 8, 1, 0, 0, time.UTC)
	if err := checkBookingWindow(day, "MORNING", now); !errors.Is(err, errLeadTime) {
		t.Fatalf("59m lead: got %v, want errLeadTime", err)
	}

	// Exactly one hour before counts as enough.
	now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if err := checkBookingWindow(day, "MORNING", now); err != nil {
		t.Fatalf("60m lead: got %v, want nil", err)
	}

	// One second past the hour boundary fails again.
	now = time.Date(2026, 3, 10, 8, 0, 1, 0, time.UTC)
	if err := checkBookingWindow(day, "MORNING", now); !errors.Is(err, errLeadTime) {
		t.Fatalf("just under 1h lead: got %v, want errLeadTime", err)
	}
}

func TestCheckLeadTimeIgnoresPastDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)

	// Admin assigns may target past dates; the slot start is long gone, so
	// only errLeadTime applies, never errPastDate.
	if err := checkLeadTime("2026-03-01", "MORNING", now); !errors.Is(err, errLeadTime) {
		t.Fatalf("past date: got %v, want errLeadTime", err)
	}
	if err := checkLeadTime("2026-03-11", "EVENING", now); err != nil {
		t.Fatalf("future date: got %v, want nil", err)
	}
	if err := checkLeadTime("not-a-date", "MORNING", now); !errors.Is(err, errBadDate) {
		t.Fatalf("bad date: got %v, want errBadDate", err)
	}
}
