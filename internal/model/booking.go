package model

import "time"

// Booking occupies exactly one field for one date across a contiguous
// [StartTime, EndTime) interval.  EndTime is derived from StartTime plus
// DurationHours at creation; both are "HH:MM" wall-clock strings.  For a
// given field and date no two bookings whose status is active (PENDING or
// CONFIRMED) may overlap — that is the invariant the whole scheduling
// core exists to protect.
//
// Fields:
//
//	ID            – primary key identifier.
//	FieldID       – field being booked.
//	CustomerID    – user who placed the booking.
//	BookingDate   – play date ("YYYY-MM-DD", day granularity).
//	StartTime     – first occupied wall-clock time ("HH:MM").
//	EndTime       – end of the occupied interval, exclusive ("HH:MM").
//	DurationHours – whole hours booked; EndTime = StartTime + DurationHours.
//	TotalPrice    – PricePerHour × DurationHours, in whole rupiah.
//	Status        – lifecycle state; see BookingStatus.
//	Notes         – optional free text from the customer.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64        `json:"id"`             // bookings.id
	FieldID       uint64        `json:"field_id"`       // bookings.field_id
	CustomerID    uint64        `json:"customer_id"`    // bookings.customer_id
	BookingDate   string        `json:"booking_date"`   // bookings.booking_date ("YYYY-MM-DD")
	StartTime     string        `json:"start_time"`     // bookings.start_time ("HH:MM")
	EndTime       string        `json:"end_time"`       // bookings.end_time   ("HH:MM")
	DurationHours int           `json:"duration_hours"` // bookings.duration_hours
	TotalPrice    int64         `json:"total_price"`    // bookings.total_price
	Status        BookingStatus `json:"status"`         // bookings.status
	Notes         *string       `json:"notes"`          // bookings.notes (nullable)
	CreatedAt     time.Time     `json:"created_at"`     // bookings.created_at
	UpdatedAt     time.Time     `json:"updated_at"`     // bookings.updated_at
}
