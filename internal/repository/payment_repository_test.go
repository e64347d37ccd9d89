package repository

import (
	"testing"

	"github.com/iliyamo/field-reservation/internal/model"
)

func TestDecideApplies(t *testing.T) {
	cases := []struct {
		name    string
		payment model.PaymentStatus
		booking model.BookingStatus
		want    bool
	}{
		{"pending payment, pending booking", model.PaymentPending, model.BookingPending, true},
		{"booking cancelled before verification", model.PaymentPending, model.BookingCancelled, false},
		{"booking already confirmed", model.PaymentPending, model.BookingConfirmed, false},
		{"booking completed", model.PaymentPending, model.BookingCompleted, false},
		{"payment already verified", model.PaymentVerified, model.BookingPending, false},
		{"payment already rejected", model.PaymentRejected, model.BookingPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decideApplies(tc.payment, tc.booking); got != tc.want {
				t.Errorf("decideApplies(%s, %s) = %v, want %v", tc.payment, tc.booking, got, tc.want)
			}
		})
	}
}
