package router

import (
	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/handler"
	"github.com/internhub/desk-reservation/internal/middleware"
)

// RegisterAdmin wires the admin-only endpoints under /v1/admin.  All routes
// require a valid session carrying the admin role.  The optional cache
// middleware fronts the usage report, which is the only expensive read here.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, cache ...echo.MiddlewareFunc) {
	g := e.Group("/v1/admin",
		middleware.SessionAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)

	g.GET("/reservations", a.ListReservations)
	g.POST("/reservations/assign", a.Assign)
	g.GET("/reports/usage", a.UsageReport, cache...)
	g.GET("/users", a.ListInterns)
}
