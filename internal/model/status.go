package model

// BookingStatus enumerates the lifecycle states of a booking.  The
// values are stored verbatim in the bookings.status column.  Only
// PENDING and CONFIRMED bookings occupy time on a field's schedule;
// CANCELLED and COMPLETED bookings are ignored by conflict checks.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"   // created by a customer, payment not yet verified
	BookingConfirmed BookingStatus = "CONFIRMED" // payment verified by staff
	BookingCancelled BookingStatus = "CANCELLED" // rejected payment, customer cancel or admin action
	BookingCompleted BookingStatus = "COMPLETED" // closed administratively after the play date
)

// IsValid reports whether s is one of the four known booking states.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// IsActive reports whether a booking in state s counts toward schedule
// occupancy and conflict detection.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingPending, BookingConfirmed:
		return true
	case BookingCancelled, BookingCompleted:
		return false
	}
	return false
}

// PaymentStatus enumerates the states of a payment record.  A payment
// starts PENDING when its booking is created and is moved to VERIFIED
// or REJECTED by staff; that transition drives the linked booking to
// CONFIRMED or CANCELLED respectively.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentVerified PaymentStatus = "VERIFIED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// IsValid reports whether s is a known payment state.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentVerified, PaymentRejected:
		return true
	}
	return false
}

// BookingStatusFor maps a payment decision to the booking state it
// implies.  VERIFIED confirms the booking and REJECTED cancels it; a
// PENDING payment leaves the booking untouched and ok is false.
func (s PaymentStatus) BookingStatusFor() (BookingStatus, bool) {
	switch s {
	case PaymentVerified:
		return BookingConfirmed, true
	case PaymentRejected:
		return BookingCancelled, true
	case PaymentPending:
		return "", false
	}
	return "", false
}
