package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/field-reservation/internal/model"
)

// PaymentRepo provides data access to the payments table.  Every
// payment belongs to exactly one booking; the staff decision on a
// payment (VERIFIED or REJECTED) must move the booking to CONFIRMED or
// CANCELLED in the same transaction, which Decide enforces.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// PaymentDetail couples a payment with the owning booking's customer
// and status, which handlers need for authorization and messaging.
type PaymentDetail struct {
	model.Payment
	BookingCustomerID uint64              `json:"booking_customer_id"`
	BookingStatus     model.BookingStatus `json:"booking_status"`
}

const paymentColumns = `p.id, p.booking_id, p.proof_image_url, p.status, p.verified_by_id, p.notes, p.created_at, p.verified_at`

// scanPayment reads one payments row (joined with its booking) into a
// PaymentDetail.
func scanPayment(row interface{ Scan(...any) error }) (*PaymentDetail, error) {
	var d PaymentDetail
	var proof, notes sql.NullString
	var verifier sql.NullInt64
	var verifiedAt sql.NullTime
	err := row.Scan(&d.ID, &d.BookingID, &proof, &d.Status, &verifier, &notes,
		&d.CreatedAt, &verifiedAt, &d.BookingCustomerID, &d.BookingStatus)
	if err != nil {
		return nil, err
	}
	if proof.Valid {
		u := proof.String
		d.ProofImageURL = &u
	}
	if verifier.Valid {
		v := uint64(verifier.Int64)
		d.VerifiedByID = &v
	}
	if notes.Valid {
		n := notes.String
		d.Notes = &n
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		d.VerifiedAt = &t
	}
	return &d, nil
}

// GetByID loads a payment with its booking's customer and status.
// Returns ErrPaymentNotFound when no row exists.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (*PaymentDetail, error) {
	const q = `SELECT ` + paymentColumns + `, b.customer_id, b.status
               FROM payments p
               JOIN bookings b ON b.id = p.booking_id
               WHERE p.id = ?`
	d, err := scanPayment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetByBookingID loads the payment attached to a booking.
func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID uint64) (*PaymentDetail, error) {
	const q = `SELECT ` + paymentColumns + `, b.customer_id, b.status
               FROM payments p
               JOIN bookings b ON b.id = p.booking_id
               WHERE p.booking_id = ?`
	d, err := scanPayment(r.db.QueryRowContext(ctx, q, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns payments in a given state, newest first.  Staff use this
// as their verification queue; pass an empty status for all payments.
func (r *PaymentRepo) List(ctx context.Context, status model.PaymentStatus) ([]*PaymentDetail, error) {
	q := `SELECT ` + paymentColumns + `, b.customer_id, b.status
          FROM payments p
          JOIN bookings b ON b.id = p.booking_id`
	args := make([]any, 0, 1)
	if status != "" {
		q += ` WHERE p.status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*PaymentDetail, 0)
	for rows.Next() {
		d, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetProof records the customer's transfer proof URL on a still-pending
// payment.  Once the payment has been decided the proof is frozen;
// ErrConflict is returned in that case.
func (r *PaymentRepo) SetProof(ctx context.Context, id uint64, proofURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET proof_image_url = ? WHERE id = ? AND status = 'PENDING'`,
		proofURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Missing row and already-decided payment are distinguished by a
		// follow-up read so the handler can answer 404 vs 409.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// decideApplies reports whether a staff decision may be applied: the
// payment must still be undecided and the booking must still be
// PENDING.  A cancelled or completed booking freezes its payment.
func decideApplies(payment model.PaymentStatus, booking model.BookingStatus) bool {
	return payment == model.PaymentPending && booking == model.BookingPending
}

// Decide moves a pending payment to VERIFIED or REJECTED and, in the
// same transaction, transitions the owning booking to CONFIRMED or
// CANCELLED.  Both rows are locked first so a payment can only be
// decided once and only while its booking is still PENDING; in any
// other state ErrConflict is returned.  No partial state is possible:
// both rows change or neither does.
func (r *PaymentRepo) Decide(ctx context.Context, bookings *BookingRepo, id uint64, decision model.PaymentStatus, verifierID uint64, notes *string) (*PaymentDetail, error) {
	next, ok := decision.BookingStatusFor()
	if !ok {
		return nil, ErrConflict
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var bookingID uint64
	var current model.PaymentStatus
	err = tx.QueryRowContext(ctx,
		`SELECT booking_id, status FROM payments WHERE id = ? FOR UPDATE`, id).
		Scan(&bookingID, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	// The booking row is locked too: a booking the customer cancelled
	// (or an admin closed) after creating the payment must not be
	// revived by a late verification.
	var bookingStatus model.BookingStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM bookings WHERE id = ? FOR UPDATE`, bookingID).
		Scan(&bookingStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if !decideApplies(current, bookingStatus) {
		return nil, ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = ?, verified_by_id = ?, notes = ?, verified_at = NOW() WHERE id = ?`,
		string(decision), verifierID, notes, id); err != nil {
		return nil, err
	}
	if err := bookings.UpdateStatusTx(ctx, tx, bookingID, next); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, id)
}
