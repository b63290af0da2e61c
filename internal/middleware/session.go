package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/internhub/desk-reservation/internal/utils" // session token parsing
)

// Cookie names carrying the session token.  The name encodes the role the
// session was issued for; verification tries the admin cookie first so an
// admin who also holds a stale intern cookie keeps admin identity.
const (
	AdminCookie  = "admin_token"
	InternCookie = "intern_token"
)

// SessionAuth returns an Echo middleware that validates the session cookie
// and injects the token's identity into the request context.  The provided
// secret must match the one used at issuance.  Handlers behind this
// middleware read the identity via c.Get("user_id"), c.Get("email") and
// c.Get("role").  Requests without a valid cookie are rejected with 401.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var raw string
			for _, name := range []string{AdminCookie, InternCookie} {
				if ck, err := c.Cookie(name); err == nil && ck.Value != "" {
					raw = ck.Value
					break
				}
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			userID, email, role, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			c.Set("user_id", userID)
			c.Set("email", email)
			c.Set("role", role)
			return next(c)
		}
	}
}
