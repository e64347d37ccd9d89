package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/field-reservation/internal/booking"
	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/schedule"
)

// BookingRepo provides persistence for bookings and implements
// booking.Store, the surface the reservation validator commits
// through.  The commit path re-checks the non-overlap invariant inside
// a transaction with the candidate rows locked, so two concurrent
// requests for the same field, date and overlapping interval cannot
// both succeed: the loser observes the winner's row and receives a
// ConflictError with Concurrent set.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB for cross-repository transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// FieldByID implements booking.Store.  Missing fields surface as
// booking.ErrFieldUnavailable so the validator needs no sentinel
// translation of its own.
func (r *BookingRepo) FieldByID(ctx context.Context, id uint64) (*model.Field, error) {
	const q = `SELECT ` + fieldColumns + ` FROM fields WHERE id = ?`
	f, err := scanField(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrFieldUnavailable
		}
		return nil, err
	}
	return f, nil
}

// ActiveIntervals implements booking.Store.  It returns the occupied
// [start,end) intervals of every PENDING and CONFIRMED booking for the
// field and date, skipping excludeID when non-zero.
func (r *BookingRepo) ActiveIntervals(ctx context.Context, fieldID uint64, date string, excludeID uint64) ([]schedule.Interval, error) {
	q := `SELECT start_time, end_time FROM bookings
          WHERE field_id = ? AND booking_date = ? AND status IN ('PENDING','CONFIRMED')`
	args := []any{fieldID, date}
	if excludeID != 0 {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.Interval, 0)
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveSlots returns the active bookings of a field and date in the
// shape the availability calculator consumes.  Read side of the
// advisory schedule view; never used for the commit-time check.
func (r *BookingRepo) ActiveSlots(ctx context.Context, fieldID uint64, date string) ([]schedule.BookedSlot, error) {
	const q = `SELECT id, status, start_time, end_time FROM bookings
               WHERE field_id = ? AND booking_date = ? AND status IN ('PENDING','CONFIRMED')
               ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, fieldID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.BookedSlot, 0)
	for rows.Next() {
		var s schedule.BookedSlot
		if err := rows.Scan(&s.ID, &s.Status, &s.Start, &s.End); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// lockConflictTx probes for an active booking overlapping [start,end)
// on the same field and date, locking any candidate row it finds.
// Lexicographic comparison is sound because times are zero-padded
// "HH:MM" strings.  Run inside the commit transaction, this is the
// authoritative serialization point for the non-overlap invariant.
func lockConflictTx(ctx context.Context, tx *sql.Tx, fieldID uint64, date, start, end string, excludeID uint64) (*schedule.Interval, error) {
	q := `SELECT start_time, end_time FROM bookings
          WHERE field_id = ? AND booking_date = ? AND status IN ('PENDING','CONFIRMED')
            AND start_time < ? AND end_time > ?`
	args := []any{fieldID, date, end, start}
	if excludeID != 0 {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` LIMIT 1 FOR UPDATE`

	var iv schedule.Interval
	err := tx.QueryRowContext(ctx, q, args...).Scan(&iv.Start, &iv.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// MySQL error numbers for lock contention inside the commit
// transaction.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// mapLockContention converts a MySQL deadlock or lock wait timeout into
// a concurrent ConflictError carrying the requested interval.  Under
// REPEATABLE READ the empty-range FOR UPDATE probe takes gap locks, so
// two simultaneous creates for the same free interval can deadlock on
// insert; the rolled-back loser lost the race to a conflicting booking
// and must be answered like any other conflict.
func mapLockContention(err error, start, end string) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && (me.Number == mysqlErrDeadlock || me.Number == mysqlErrLockWaitTimeout) {
		return &booking.ConflictError{
			Conflict:   schedule.Interval{Start: start, End: end},
			Concurrent: true,
		}
	}
	return err
}

// CreatePending implements booking.Store.  It inserts the booking with
// status PENDING and its payment placeholder in one transaction, after
// the locked re-check of the overlap invariant.  Either both rows are
// created or neither.
func (r *BookingRepo) CreatePending(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if iv, err := lockConflictTx(ctx, tx, b.FieldID, b.BookingDate, b.StartTime, b.EndTime, 0); err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	} else if iv != nil {
		return &booking.ConflictError{Conflict: *iv, Concurrent: true}
	}

	const qInsert = `INSERT INTO bookings
        (field_id, customer_id, booking_date, start_time, end_time, duration_hours, total_price, status, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, 'PENDING', ?)`
	res, err := tx.ExecContext(ctx, qInsert, b.FieldID, b.CustomerID, b.BookingDate,
		b.StartTime, b.EndTime, b.DurationHours, b.TotalPrice, b.Notes)
	if err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	// Query back the row to populate timestamps and defaults.
	const qSelect = `SELECT status, created_at, updated_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, qSelect, b.ID).Scan(&b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}

	// Payment placeholder rides in the same transaction.
	if _, err := tx.ExecContext(ctx, `INSERT INTO payments (booking_id) VALUES (?)`, b.ID); err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	}

	if err := tx.Commit(); err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	}
	committed = true
	return nil
}

// Reschedule implements booking.Store.  It moves an existing booking to
// the interval carried by b under the same locked re-check used by
// CreatePending, resetting the status to PENDING.
func (r *BookingRepo) Reschedule(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if iv, err := lockConflictTx(ctx, tx, b.FieldID, b.BookingDate, b.StartTime, b.EndTime, b.ID); err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	} else if iv != nil {
		return &booking.ConflictError{Conflict: *iv, Concurrent: true}
	}

	const q = `UPDATE bookings
               SET booking_date = ?, start_time = ?, end_time = ?, duration_hours = ?,
                   total_price = ?, status = 'PENDING', notes = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, b.BookingDate, b.StartTime, b.EndTime,
		b.DurationHours, b.TotalPrice, b.Notes, b.ID)
	if err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}

	if err := tx.Commit(); err != nil {
		return mapLockContention(err, b.StartTime, b.EndTime)
	}
	committed = true
	return nil
}

// BookingDetail is a booking joined with its customer, field and
// payment for display.  Returned by GetDetail and List.
type BookingDetail struct {
	model.Booking
	Customer struct {
		ID    uint64  `json:"id"`
		Name  string  `json:"name"`
		Email string  `json:"email"`
		Phone *string `json:"phone"`
	} `json:"customer"`
	Field struct {
		ID           uint64 `json:"id"`
		Name         string `json:"name"`
		Sport        string `json:"sport"`
		PricePerHour int64  `json:"price_per_hour"`
	} `json:"field"`
	Payment *model.Payment `json:"payment,omitempty"`
}

const bookingDetailQuery = `
    SELECT b.id, b.field_id, b.customer_id, b.booking_date, b.start_time, b.end_time,
           b.duration_hours, b.total_price, b.status, b.notes, b.created_at, b.updated_at,
           u.id, u.name, u.email, u.phone,
           f.id, f.name, f.sport, f.price_per_hour,
           p.id, p.proof_image_url, p.status, p.verified_by_id, p.notes, p.created_at, p.verified_at
    FROM bookings b
    JOIN users u ON u.id = b.customer_id
    JOIN fields f ON f.id = b.field_id
    LEFT JOIN payments p ON p.booking_id = b.id`

// scanBookingDetail reads one joined row produced by bookingDetailQuery.
func scanBookingDetail(row interface{ Scan(...any) error }) (*BookingDetail, error) {
	var d BookingDetail
	var notes, phone sql.NullString
	var payID sql.NullInt64
	var payProof, payNotes sql.NullString
	var payStatus sql.NullString
	var payVerifier sql.NullInt64
	var payCreated, payVerified sql.NullTime
	err := row.Scan(
		&d.ID, &d.FieldID, &d.CustomerID, &d.BookingDate, &d.StartTime, &d.EndTime,
		&d.DurationHours, &d.TotalPrice, &d.Status, &notes, &d.CreatedAt, &d.UpdatedAt,
		&d.Customer.ID, &d.Customer.Name, &d.Customer.Email, &phone,
		&d.Field.ID, &d.Field.Name, &d.Field.Sport, &d.Field.PricePerHour,
		&payID, &payProof, &payStatus, &payVerifier, &payNotes, &payCreated, &payVerified,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		d.Notes = &n
	}
	if phone.Valid {
		ph := phone.String
		d.Customer.Phone = &ph
	}
	if payID.Valid {
		p := &model.Payment{ID: uint64(payID.Int64), BookingID: d.ID}
		if payStatus.Valid {
			p.Status = model.PaymentStatus(payStatus.String)
		}
		if payProof.Valid {
			u := payProof.String
			p.ProofImageURL = &u
		}
		if payVerifier.Valid {
			v := uint64(payVerifier.Int64)
			p.VerifiedByID = &v
		}
		if payNotes.Valid {
			n := payNotes.String
			p.Notes = &n
		}
		if payCreated.Valid {
			p.CreatedAt = payCreated.Time
		}
		if payVerified.Valid {
			t := payVerified.Time
			p.VerifiedAt = &t
		}
		d.Payment = p
	}
	return &d, nil
}

// GetDetail loads one booking with its customer, field and payment.
// Returns ErrBookingNotFound when the row does not exist; ownership is
// checked by the caller against CustomerID.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	// MySQL DATE columns come back as "YYYY-MM-DD 00:00:00" through some
	// drivers; normalize to day granularity.
	d.BookingDate = normalizeDate(d.BookingDate)
	return d, nil
}

// ListFilter narrows List results.  Zero values mean "no filter".
type ListFilter struct {
	CustomerID uint64
	FieldID    uint64
	Date       string
	Status     model.BookingStatus
}

// List returns booking details matching the filter, ordered by date
// descending then start time ascending (newest day first, morning
// before evening within a day).
func (r *BookingRepo) List(ctx context.Context, f ListFilter) ([]*BookingDetail, error) {
	q := bookingDetailQuery + ` WHERE 1=1`
	args := make([]any, 0, 4)
	if f.CustomerID != 0 {
		q += ` AND b.customer_id = ?`
		args = append(args, f.CustomerID)
	}
	if f.FieldID != 0 {
		q += ` AND b.field_id = ?`
		args = append(args, f.FieldID)
	}
	if f.Date != "" {
		q += ` AND b.booking_date = ?`
		args = append(args, f.Date)
	}
	if f.Status != "" {
		q += ` AND b.status = ?`
		args = append(args, string(f.Status))
	}
	q += ` ORDER BY b.booking_date DESC, b.start_time ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		d.BookingDate = normalizeDate(d.BookingDate)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus transitions a booking to the given state.  The caller is
// responsible for having checked the transition is legal for its role.
// Returns ErrBookingNotFound when the row does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// UpdateStatusTx is UpdateStatus inside an existing transaction; used
// by the payment decision flow so payment and booking change together.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// normalizeDate trims a DATE value scanned as "YYYY-MM-DD HH:MM:SS" (or
// a time.Time string) down to "YYYY-MM-DD".
func normalizeDate(s string) string {
	if len(s) >= 10 {
		if _, err := time.Parse(schedule.DateLayout, s[:10]); err == nil {
			return s[:10]
		}
	}
	return s
}
