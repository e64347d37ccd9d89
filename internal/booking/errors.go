// Package booking implements the reservation validator: the single
// authoritative gate every booking request passes through before it is
// committed.  All rejections are typed so that handlers can map them to
// stable HTTP responses without string matching.
package booking

import (
	"errors"
	"fmt"

	"github.com/iliyamo/field-reservation/internal/schedule"
)

// ErrFieldUnavailable is returned when the requested field does not
// exist or is flagged inactive.  Handlers should translate this into an
// HTTP 404 response.
var ErrFieldUnavailable = errors.New("field unavailable")

// ErrInvalidRequest is returned when a booking request is structurally
// broken (bad date, bad time string, non-positive duration) before any
// business gate runs.  Caller error, never retried.
var ErrInvalidRequest = errors.New("invalid booking request")

// HoursError rejects an interval that falls outside the field's
// operating window, including intervals that would wrap past midnight.
// The window is carried so the user-facing message can show it.
type HoursError struct {
	Open  string
	Close string
}

func (e *HoursError) Error() string {
	return fmt.Sprintf("booking must be within operating hours (%s - %s)", e.Open, e.Close)
}

// ConflictError rejects an interval that overlaps an existing active
// booking.  Conflict carries the occupying interval so the caller can
// suggest alternatives.  Concurrent marks conflicts discovered by the
// serialized re-check at commit time rather than the optimistic check;
// callers must treat both identically.
type ConflictError struct {
	Conflict   schedule.Interval
	Concurrent bool
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflicts with an existing booking (%s - %s)", e.Conflict.Start, e.Conflict.End)
}
