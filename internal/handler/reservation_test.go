package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/repository"
)

// unreachableDB opens a pool against a closed port.  sql.Open does not dial,
// so construction succeeds; the first query fails with a connection error.
// Handlers built over it reveal which step touches the database first.
func unreachableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("mysql", "test:test@tcp(127.0.0.1:1)/none?timeout=100ms")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpdateChecksOwnershipBeforeTimingRules(t *testing.T) {
	db := unreachableDB(t)
	h := NewReservationHandler(repository.NewSeatRepo(db), repository.NewReservationRepo(db))

	// A past-dated body aimed at an id the caller may not own: the ownership
	// lookup must run first, so the request reaches the database (500 here)
	// instead of short-circuiting on the past-date rule.
	body := `{"seat_id":1,"date":"2020-01-01","time_slot":"MORNING"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/reservations/999", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reservations/:id")
	c.SetParamNames("id")
	c.SetParamValues("999")
	c.Set("user_id", uint64(7))

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (ownership lookup before timing rules)", rec.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "past") {
		t.Fatalf("timing rule ran before ownership lookup: %s", got)
	}
}

func TestReservationResponseHidesForeignKeys(t *testing.T) {
	resp := toReservationResp(repository.Reservation{
		ID: 12, InternID: 7, SeatID: 3,
		Date: "2026-03-10", TimeSlot: "MORNING", Status: "active",
	})
	bs, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]interface{}
	if err := json.Unmarshal(bs, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, hidden := range []string{"intern_id", "seat_id"} {
		if _, ok := keys[hidden]; ok {
			t.Errorf("response leaks %s: %s", hidden, bs)
		}
	}
	for _, want := range []string{"id", "date", "time_slot", "status"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("response missing %s: %s", want, bs)
		}
	}
}
