// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the publisher and the consumer.
const (
	BookingCreatedQueue = "booking.created"
	PaymentDecidedQueue = "payment.decided"
)

// BookingCreatedEvent is published when a customer's booking clears
// validation and is committed with status PENDING.  It carries enough
// information for downstream consumers to log or notify without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	CustomerID    uint64 `json:"customer_id"`
	FieldID       uint64 `json:"field_id"`
	FieldName     string `json:"field_name"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DurationHours int    `json:"duration_hours"`
	TotalPrice    int64  `json:"total_price"`
	CreatedAt     string `json:"created_at"`
}

// PaymentDecidedEvent is published when staff verify or reject a
// payment.  Decision is VERIFIED or REJECTED; BookingStatus is the
// state the booking moved to in the same transaction.
type PaymentDecidedEvent struct {
	PaymentID     uint64 `json:"payment_id"`
	BookingID     uint64 `json:"booking_id"`
	CustomerID    uint64 `json:"customer_id"`
	Decision      string `json:"decision"`
	BookingStatus string `json:"booking_status"`
	VerifiedByID  uint64 `json:"verified_by_id"`
	DecidedAt     string `json:"decided_at"`
}
