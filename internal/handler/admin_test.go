package handler

import (
	"testing"
	"time"

	"github.com/internhub/desk-reservation/internal/repository"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildUsageRowsFullGrid(t *testing.T) {
	counts := []repository.SlotCount{
		{Date: "2026-03-10", TimeSlot: "MORNING", Reserved: 3},
		{Date: "2026-03-11", TimeSlot: "EVENING", Reserved: 1},
	}
	rows := buildUsageRows(day("2026-03-10"), day("2026-03-11"), counts, 10)

	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6 (2 days x 3 slots)", len(rows))
	}

	// Rows come out date-major, slots in chronological order.
	wantOrder := []struct {
		date string
		slot string
	}{
		{"2026-03-10", "MORNING"},
		{"2026-03-10", "AFTERNOON"},
		{"2026-03-10", "EVENING"},
		{"2026-03-11", "MORNING"},
		{"2026-03-11", "AFTERNOON"},
		{"2026-03-11", "EVENING"},
	}
	for i, w := range wantOrder {
		if rows[i].Date != w.date || rows[i].TimeSlot != w.slot {
			t.Fatalf("row %d = %s/%s, want %s/%s", i, rows[i].Date, rows[i].TimeSlot, w.date, w.slot)
		}
		if rows[i].Total != 10 {
			t.Fatalf("row %d total = %d, want 10", i, rows[i].Total)
		}
	}

	if rows[0].Reserved != 3 {
		t.Errorf("first cell reserved = %d, want 3", rows[0].Reserved)
	}
	if rows[0].OccupancyPct == nil || *rows[0].OccupancyPct != 30 {
		t.Errorf("first cell occupancy = %v, want 30", rows[0].OccupancyPct)
	}
	if rows[5].Reserved != 1 || rows[5].OccupancyPct == nil || *rows[5].OccupancyPct != 10 {
		t.Errorf("last cell = %+v, want reserved 1 at 10%%", rows[5])
	}
}

func TestBuildUsageRowsEmptyCellsHaveNilOccupancy(t *testing.T) {
	rows := buildUsageRows(day("2026-03-10"), day("2026-03-10"), nil, 10)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if r.Reserved != 0 {
			t.Errorf("%s/%s reserved = %d, want 0", r.Date, r.TimeSlot, r.Reserved)
		}
		if r.OccupancyPct != nil {
			t.Errorf("%s/%s occupancy = %v, want nil for empty cell", r.Date, r.TimeSlot, *r.OccupancyPct)
		}
	}
}

func TestBuildUsageRowsRounding(t *testing.T) {
	counts := []repository.SlotCount{
		{Date: "2026-03-10", TimeSlot: "MORNING", Reserved: 1},
	}
	rows := buildUsageRows(day("2026-03-10"), day("2026-03-10"), counts, 3)
	if rows[0].OccupancyPct == nil {
		t.Fatal("occupancy missing")
	}
	if got := *rows[0].OccupancyPct; got != 33.33 {
		t.Fatalf("occupancy = %v, want 33.33", got)
	}
}

func TestBuildUsageRowsZeroTotalSeats(t *testing.T) {
	counts := []repository.SlotCount{
		{Date: "2026-03-10", TimeSlot: "MORNING", Reserved: 2},
	}
	// Stale counts against an emptied seat inventory must not divide by zero.
	rows := buildUsageRows(day("2026-03-10"), day("2026-03-10"), counts, 0)
	if rows[0].OccupancyPct != nil {
		t.Fatalf("occupancy = %v, want nil when total is 0", *rows[0].OccupancyPct)
	}
}

func TestBuildUsageRowsInvertedRange(t *testing.T) {
	rows := buildUsageRows(day("2026-03-11"), day("2026-03-10"), nil, 5)
	if len(rows) != 0 {
		t.Fatalf("got %d rows for inverted range, want 0", len(rows))
	}
}
