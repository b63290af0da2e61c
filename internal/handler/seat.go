package handler // handler package contains seat inventory handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/repository"
)

// SeatHandler serves the seat inventory endpoints.  Listing is open to any
// authenticated user; mutations are admin-only (enforced by the router).
type SeatHandler struct {
	Seats *repository.SeatRepo
}

func NewSeatHandler(seats *repository.SeatRepo) *SeatHandler {
	if seats == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats}
}

// List handles GET /v1/seats.  With both date and time_slot query params it
// returns available-status seats annotated with is_available for that exact
// slot; without them it returns every seat, unannotated.
func (h *SeatHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	date := c.QueryParam("date")
	timeSlot := c.QueryParam("time_slot")
	if date != "" && timeSlot != "" {
		seats, err := h.Seats.ListAvailability(ctx, date, timeSlot)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, seats)
	}

	seats, err := h.Seats.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, seats)
}

// Create handles POST /v1/seats (admin).
func (h *SeatHandler) Create(c echo.Context) error {
	var body struct {
		SeatNumber string  `json:"seat_number"`
		Location   *string `json:"location"`
		Status     string  `json:"status"`
		Branch     string  `json:"branch"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.SeatNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_number required"})
	}
	if body.Status == "" {
		body.Status = "available"
	}
	if body.Branch == "" {
		body.Branch = "HQ"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seat := repository.Seat{
		SeatNumber: body.SeatNumber,
		Location:   body.Location,
		Status:     body.Status,
		Branch:     body.Branch,
	}
	if err := h.Seats.Create(ctx, &seat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat number must be unique"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seat failed"})
	}
	return c.JSON(http.StatusCreated, seat)
}

// Update handles PUT /v1/seats/:id (admin).  Each field is independently
// optional; unset fields retain their previous value.
func (h *SeatHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var body struct {
		SeatNumber *string `json:"seat_number"`
		Location   *string `json:"location"`
		Status     *string `json:"status"`
		Branch     *string `json:"branch"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seat, err := h.Seats.UpdatePartial(ctx, id, repository.SeatPatch{
		SeatNumber: body.SeatNumber,
		Location:   body.Location,
		Status:     body.Status,
		Branch:     body.Branch,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat number must be unique"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
	}
	return c.JSON(http.StatusOK, seat)
}

// Delete handles DELETE /v1/seats/:id (admin).  Deleting an unknown id still
// reports ok; clients treat seat deletion as idempotent.
func (h *SeatHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Seats.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete seat failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
