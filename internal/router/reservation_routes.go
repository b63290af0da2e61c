package router

import (
	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/handler"
	"github.com/internhub/desk-reservation/internal/middleware"
)

// RegisterSeats wires the seat inventory endpoints under /v1.  Listing is
// open to any authenticated user; mutations require the admin role.  The
// optional cache middleware (nil-safe slice) fronts the read endpoint only.
func RegisterSeats(e *echo.Echo, s *handler.SeatHandler, jwtSecret string, cache ...echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.SessionAuth(jwtSecret))

	g.GET("/seats", s.List, cache...)

	admin := e.Group("/v1",
		middleware.SessionAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)
	admin.POST("/seats", s.Create)
	admin.PUT("/seats/:id", s.Update)
	admin.PATCH("/seats/:id", s.Update)
	admin.DELETE("/seats/:id", s.Delete)
}

// RegisterReservations wires the intern self-service reservation endpoints
// under /v1.  Any authenticated role may use them; ownership is enforced in
// the repository layer.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.SessionAuth(jwtSecret))

	g.POST("/reservations", r.Create)
	g.GET("/reservations/me", r.ListMine)
	g.PUT("/reservations/:id", r.Update)
	g.PATCH("/reservations/:id", r.Update)
	g.DELETE("/reservations/:id", r.Delete)
}
