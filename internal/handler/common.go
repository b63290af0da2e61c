package handler // handler defines HTTP handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's id from the echo context.
// SessionAuth stores it as uint64; anything else means the middleware did
// not run or the context was tampered with.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("missing user_id in context")
}
