package model

import "time"

// Payment is the one-to-one companion of a Booking.  The row is created
// together with its booking (status PENDING) and later moved to VERIFIED
// or REJECTED by a staff member after inspecting the uploaded transfer
// proof.  That decision is what flips the booking to CONFIRMED or
// CANCELLED — the two rows must never disagree.
//
// Fields:
//
//	ID            – primary key identifier.
//	BookingID     – booking this payment belongs to (unique).
//	ProofImageURL – URL of the uploaded transfer proof, if any.
//	Status        – PENDING, VERIFIED or REJECTED.
//	VerifiedByID  – staff/admin user who decided, when decided.
//	Notes         – optional staff remarks.
//	CreatedAt     – creation timestamp.
//	VerifiedAt    – decision timestamp, when decided.
type Payment struct {
	ID            uint64        `json:"id"`              // payments.id
	BookingID     uint64        `json:"booking_id"`      // payments.booking_id
	ProofImageURL *string       `json:"proof_image_url"` // payments.proof_image_url (nullable)
	Status        PaymentStatus `json:"status"`          // payments.status
	VerifiedByID  *uint64       `json:"verified_by_id"`  // payments.verified_by_id (nullable)
	Notes         *string       `json:"notes"`           // payments.notes (nullable)
	CreatedAt     time.Time     `json:"created_at"`      // payments.created_at
	VerifiedAt    *time.Time    `json:"verified_at"`     // payments.verified_at (nullable)
}
