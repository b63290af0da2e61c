package queue

import (
	"strings"
	"testing"
)

func TestFormatEventSelfService(t *testing.T) {
	ev := ReservationBookedEvent{
		ReservationID: 12,
		InternID:      7,
		SeatID:        3,
		SeatNumber:    "A-03",
		Date:          "2026-03-10",
		TimeSlot:      "MORNING",
		BookedAt:      "2026-03-09T08:00:00Z",
	}
	line := formatEvent(ev)
	for _, want := range []string{"reservation_id=12", "intern_id=7", `seat="A-03"`, "date=2026-03-10", "slot=MORNING"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "assigned_by") {
		t.Errorf("self-service line should omit assigned_by: %q", line)
	}
	if strings.Contains(line, "\n") {
		t.Error("line must be single-line")
	}
}

func TestFormatEventAdminAssign(t *testing.T) {
	ev := ReservationBookedEvent{
		ReservationID: 13,
		InternID:      7,
		SeatNumber:    "B-01",
		Date:          "2026-03-11",
		TimeSlot:      "EVENING",
		AssignedBy:    1,
		BookedAt:      "2026-03-10T08:00:00Z",
	}
	if line := formatEvent(ev); !strings.Contains(line, "assigned_by=1") {
		t.Errorf("assigned line missing assigned_by: %q", line)
	}
}
