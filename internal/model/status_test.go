package model

import "testing"

func TestBookingStatusIsActive(t *testing.T) {
	cases := map[BookingStatus]bool{
		BookingPending:   true,
		BookingConfirmed: true,
		BookingCancelled: false,
		BookingCompleted: false,
		"UNKNOWN":        false,
	}
	for s, want := range cases {
		if got := s.IsActive(); got != want {
			t.Errorf("%s.IsActive() = %v, want %v", s, got, want)
		}
	}
}

func TestPaymentDecisionDrivesBookingStatus(t *testing.T) {
	if next, ok := PaymentVerified.BookingStatusFor(); !ok || next != BookingConfirmed {
		t.Errorf("VERIFIED -> %s (%v), want CONFIRMED", next, ok)
	}
	if next, ok := PaymentRejected.BookingStatusFor(); !ok || next != BookingCancelled {
		t.Errorf("REJECTED -> %s (%v), want CANCELLED", next, ok)
	}
	if _, ok := PaymentPending.BookingStatusFor(); ok {
		t.Error("PENDING payment must not imply a booking transition")
	}
}
