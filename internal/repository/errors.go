// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios; for
// example, ErrConflict signals that an operation cannot proceed due
// to existing dependent state (e.g. deleting a field that still has
// active bookings, or deciding a payment twice).
package repository

import "errors"

// ErrConflict is returned when an update or delete cannot be
// performed because of conflicting state, such as deleting a field
// that still has active bookings or deciding an already-decided
// payment. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrFieldNotFound indicates that a field lookup failed.
var ErrFieldNotFound = errors.New("field not found")

// ErrBookingNotFound indicates that a booking lookup failed.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPaymentNotFound indicates that a payment lookup failed.
var ErrPaymentNotFound = errors.New("payment not found")
