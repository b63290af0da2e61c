// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation is successfully
// created, whether self-service or assigned by an admin.  It carries enough
// information for downstream consumers to log or notify without querying the
// primary database.
type ReservationBookedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	InternID      uint64 `json:"intern_id"`
	SeatID        uint64 `json:"seat_id"`
	SeatNumber    string `json:"seat_number"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	AssignedBy    uint64 `json:"assigned_by,omitempty"` // admin id for manual assigns, zero otherwise
	BookedAt      string `json:"booked_at"`
}
