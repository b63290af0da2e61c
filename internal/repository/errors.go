// Package repository defines the data access layer.  Sentinel errors declared
// here let handlers map failure scenarios to HTTP statuses without inspecting
// driver-specific error text themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup, ownership-scoped update or delete
// matches no row.  Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint (seat number, or the one-active-reservation keys).  Handlers
// translate this into HTTP 409.
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "duplicate entry")
}
