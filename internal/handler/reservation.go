package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/queue"
	"github.com/internhub/desk-reservation/internal/repository"
	queue_publisher "github.com/internhub/desk-reservation/internal/service"
)

// ReservationHandler serves the intern self-service reservation endpoints.
type ReservationHandler struct {
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(seats *repository.SeatRepo, reservations *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Seats: seats, Reservations: reservations}
}

type reservationReq struct {
	SeatID   uint64 `json:"seat_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// reservationResp is the trimmed row returned to the owner after create and
// update; the intern and seat foreign keys stay server-side.
type reservationResp struct {
	ID       uint64 `json:"id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Status   string `json:"status"`
}

func toReservationResp(rec repository.Reservation) reservationResp {
	return reservationResp{ID: rec.ID, Date: rec.Date, TimeSlot: rec.TimeSlot, Status: rec.Status}
}

// Create handles POST /v1/reservations.  Validation order matters: timing
// rules run before any database access so an out-of-window request never
// touches the seat table.
func (h *ReservationHandler) Create(c echo.Context) error {
	internID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatID == 0 || req.Date == "" || req.TimeSlot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields"})
	}

	switch err := checkBookingWindow(req.Date, req.TimeSlot, time.Now()); {
	case errors.Is(err, errBadDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date"})
	case errors.Is(err, errPastDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Past dates cannot be booked"})
	case errors.Is(err, errLeadTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Reservations must be made at least 1 hour in advance"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seat, err := h.Seats.GetByID(ctx, req.SeatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if seat.Status != "available" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Seat is not available"})
	}

	rec, err := h.Reservations.Create(ctx, internID, req.SeatID, req.Date, req.TimeSlot)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already booked or you already reserved a seat that day"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	publishBooked(rec, seat.SeatNumber, 0)
	return c.JSON(http.StatusOK, toReservationResp(rec))
}

// ListMine handles GET /v1/reservations/me, splitting into current (today or
// later, soonest first) and past (most recent first).
func (h *ReservationHandler) ListMine(c echo.Context) error {
	internID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	today := time.Now().Format(dateLayout)
	current, past, err := h.Reservations.ListForIntern(ctx, internID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"current": current, "past": past})
}

// Update handles PUT /v1/reservations/:id.  Only the owner may modify, and
// both the old lookup and the new target go through the same timing checks as
// a fresh booking.
func (h *ReservationHandler) Update(c echo.Context) error {
	internID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatID == 0 || req.Date == "" || req.TimeSlot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Ownership resolves before the timing rules: a foreign or unknown id is
	// a 404 no matter what dates the body carries.
	if _, err := h.Reservations.GetOwned(ctx, id, internID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	switch err := checkBookingWindow(req.Date, req.TimeSlot, time.Now()); {
	case errors.Is(err, errBadDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date"})
	case errors.Is(err, errPastDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot modify past reservations"})
	case errors.Is(err, errLeadTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Reservations must be updated at least 1 hour in advance"})
	}

	seat, err := h.Seats.GetByID(ctx, req.SeatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if seat.Status != "available" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Seat is not available"})
	}

	rec, err := h.Reservations.UpdateOwned(ctx, id, internID, req.SeatID, req.Date, req.TimeSlot)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already booked or you already reserved a seat that day"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
	}
	return c.JSON(http.StatusOK, toReservationResp(rec))
}

// Delete handles DELETE /v1/reservations/:id.  Unlike seat deletion this one
// 404s on a miss, since "not yours" and "does not exist" look identical.
func (h *ReservationHandler) Delete(c echo.Context) error {
	internID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.DeleteOwned(ctx, id, internID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// publishBooked emits the reservation.booked event in the background.  The
// booking already committed; a broker outage only costs the notification.
func publishBooked(rec repository.Reservation, seatNumber string, assignedBy uint64) {
	ev := queue.ReservationBookedEvent{
		ReservationID: rec.ID,
		InternID:      rec.InternID,
		SeatID:        rec.SeatID,
		SeatNumber:    seatNumber,
		Date:          rec.Date,
		TimeSlot:      rec.TimeSlot,
		AssignedBy:    assignedBy,
		BookedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishReservationBooked(ctx, ev); err != nil {
			log.Printf("reservation event publish skipped: %v", err)
		}
	}()
}
