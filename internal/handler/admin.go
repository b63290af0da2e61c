package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/repository"
)

// AdminHandler serves the admin-only endpoints: the reservation overview,
// manual seat assignment, the usage report and the intern directory.
type AdminHandler struct {
	Users        *repository.UserRepo
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
	Reports      *repository.ReportRepo
}

func NewAdminHandler(users *repository.UserRepo, seats *repository.SeatRepo,
	reservations *repository.ReservationRepo, reports *repository.ReportRepo) *AdminHandler {
	return &AdminHandler{Users: users, Seats: seats, Reservations: reservations, Reports: reports}
}

// ListReservations handles GET /v1/admin/reservations with optional date and
// intern_id query filters.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	date := c.QueryParam("date")
	var internID uint64
	if raw := c.QueryParam("intern_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid intern_id"})
		}
		internID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Reservations.AdminList(ctx, date, internID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

type assignReq struct {
	InternID uint64 `json:"intern_id"`
	SeatID   uint64 `json:"seat_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// assignResp echoes the intern the booking was made for, but not the seat
// foreign key; the admin listing carries the joined seat details.
type assignResp struct {
	ID       uint64 `json:"id"`
	InternID uint64 `json:"intern_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Status   string `json:"status"`
}

// Assign handles POST /v1/admin/reservations/assign.  Admins book on behalf
// of an intern; only the 1-hour lead rule applies, so backfilling past dates
// for record-keeping is allowed.
func (h *AdminHandler) Assign(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.InternID == 0 || req.SeatID == 0 || req.Date == "" || req.TimeSlot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields"})
	}

	switch err := checkLeadTime(req.Date, req.TimeSlot, time.Now()); {
	case errors.Is(err, errBadDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date"})
	case errors.Is(err, errLeadTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Must assign at least 1 hour in advance"})
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

	rec, err := h.Reservations.Create(ctx, req.InternID, req.SeatID, req.Date, req.TimeSlot)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Conflicts with existing reservation"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	publishBooked(rec, seat.SeatNumber, adminID)
	return c.JSON(http.StatusOK, assignResp{
		ID:       rec.ID,
		InternID: rec.InternID,
		Date:     rec.Date,
		TimeSlot: rec.TimeSlot,
		Status:   rec.Status,
	})
}

// UsageRow is one date+slot cell of the usage report.  OccupancyPct is nil
// when no seats were reserved in the cell, so clients can distinguish "empty"
// from "0.00%".
type UsageRow struct {
	Date         string   `json:"date"`
	TimeSlot     string   `json:"time_slot"`
	Reserved     int      `json:"reserved"`
	Total        int      `json:"total"`
	OccupancyPct *float64 `json:"occupancy_pct"`
}

// UsageReport handles GET /v1/admin/reports/usage?from=...&to=... and returns
// a dense date x slot grid, including cells with zero reservations.
func (h *AdminHandler) UsageReport(c echo.Context) error {
	fromRaw := c.QueryParam("from")
	toRaw := c.QueryParam("to")
	if fromRaw == "" || toRaw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to required"})
	}
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date"})
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, err := h.Seats.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	counts, err := h.Reports.ActiveCounts(ctx, fromRaw, toRaw)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buildUsageRows(from, to, counts, total))
}

// ListInterns handles GET /v1/admin/users.
func (h *AdminHandler) ListInterns(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	interns, err := h.Users.ListInterns(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, interns)
}

// reportSlots fixes the column order of the usage grid.
var reportSlots = []string{"MORNING", "AFTERNOON", "EVENING"}

// buildUsageRows expands sparse per-slot counts into the full date x slot
// grid between from and to inclusive.  An inverted range yields an empty
// grid, not an error.
func buildUsageRows(from, to time.Time, counts []repository.SlotCount, total int) []UsageRow {
	reserved := make(map[string]int, len(counts))
	for _, sc := range counts {
		reserved[sc.Date+"|"+sc.TimeSlot] = sc.Reserved
	}

	rows := make([]UsageRow, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		for _, slot := range reportSlots {
			row := UsageRow{Date: date, TimeSlot: slot, Reserved: reserved[date+"|"+slot], Total: total}
			if row.Reserved > 0 && total > 0 {
				pct := math.Round(float64(row.Reserved)/float64(total)*10000) / 100
				row.OccupancyPct = &pct
			}
			rows = append(rows, row)
		}
	}
	return rows
}
