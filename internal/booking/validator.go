package booking

import (
	"context"
	"time"

	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/schedule"
)

// Store is the persistence surface the validator needs.  The SQL
// implementation lives in the repository package; tests substitute an
// in-memory store.  CreatePending and Reschedule must re-run the
// overlap check against a consistent snapshot (row locks or equivalent)
// and return *ConflictError with Concurrent set when that authoritative
// re-check fires — the optimistic check in this package can always lose
// a race against a concurrent commit.
type Store interface {
	// FieldByID loads a field by ID, ErrFieldUnavailable when missing.
	FieldByID(ctx context.Context, id uint64) (*model.Field, error)
	// ActiveIntervals returns the [start,end) intervals of all PENDING
	// and CONFIRMED bookings for the field and date.  excludeID skips
	// one booking (used when rescheduling); pass 0 to exclude nothing.
	ActiveIntervals(ctx context.Context, fieldID uint64, date string, excludeID uint64) ([]schedule.Interval, error)
	// CreatePending atomically inserts the booking with status PENDING
	// together with its payment placeholder.
	CreatePending(ctx context.Context, b *model.Booking) error
	// Reschedule atomically moves an existing booking to the interval
	// carried by b, resetting its status to PENDING.
	Reschedule(ctx context.Context, b *model.Booking) error
}

// Request is a booking attempt as received from the HTTP layer.
type Request struct {
	FieldID       uint64
	CustomerID    uint64
	Date          string // "YYYY-MM-DD"
	StartTime     string // "HH:MM"
	DurationHours int
	Notes         *string
}

// Validator runs every gate a booking request must clear, in order:
// field lookup, end-time computation, operating-hours check, conflict
// check, then the atomic commit.  Gates 1-4 are pure reads; only the
// commit mutates state.
type Validator struct {
	store Store
}

// NewValidator constructs a Validator over the given store.
func NewValidator(store Store) *Validator {
	if store == nil {
		panic("nil store passed to NewValidator")
	}
	return &Validator{store: store}
}

// Create validates req and, if every gate passes, commits a new PENDING
// booking with its payment placeholder.  On success the returned
// booking carries the computed end time and total price.  Failures are
// ErrInvalidRequest, ErrFieldUnavailable, *HoursError or *ConflictError.
func (v *Validator) Create(ctx context.Context, req Request) (*model.Booking, error) {
	field, start, end, err := v.gates(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	b := &model.Booking{
		FieldID:       field.ID,
		CustomerID:    req.CustomerID,
		BookingDate:   req.Date,
		StartTime:     start,
		EndTime:       end,
		DurationHours: req.DurationHours,
		TotalPrice:    field.PricePerHour * int64(req.DurationHours),
		Status:        model.BookingPending,
		Notes:         req.Notes,
	}
	if err := v.store.CreatePending(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reschedule re-validates an edited booking against the same gates,
// excluding the booking's own interval from the conflict set, and
// commits the new interval with status reset to PENDING.  Ownership and
// editability (PENDING with unverified payment) are the caller's
// responsibility; this method only enforces scheduling invariants.
func (v *Validator) Reschedule(ctx context.Context, existing *model.Booking, req Request) (*model.Booking, error) {
	field, start, end, err := v.gates(ctx, req, existing.ID)
	if err != nil {
		return nil, err
	}
	b := *existing
	b.FieldID = field.ID
	b.BookingDate = req.Date
	b.StartTime = start
	b.EndTime = end
	b.DurationHours = req.DurationHours
	b.TotalPrice = field.PricePerHour * int64(req.DurationHours)
	b.Status = model.BookingPending
	if req.Notes != nil {
		b.Notes = req.Notes
	}
	if err := v.store.Reschedule(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// gates runs the read-only gates shared by Create and Reschedule and
// returns the field plus the normalized start and computed end time.
func (v *Validator) gates(ctx context.Context, req Request, excludeID uint64) (*model.Field, string, string, error) {
	if req.FieldID == 0 || req.CustomerID == 0 || req.DurationHours <= 0 {
		return nil, "", "", ErrInvalidRequest
	}
	if _, err := time.Parse(schedule.DateLayout, req.Date); err != nil {
		return nil, "", "", ErrInvalidRequest
	}
	startMin, err := schedule.ToMinutes(req.StartTime)
	if err != nil {
		return nil, "", "", ErrInvalidRequest
	}
	start := schedule.FormatMinutes(startMin)

	field, err := v.store.FieldByID(ctx, req.FieldID)
	if err != nil {
		return nil, "", "", err
	}
	if !field.IsActive {
		return nil, "", "", ErrFieldUnavailable
	}

	end, err := schedule.AddHours(start, req.DurationHours)
	if err != nil {
		return nil, "", "", ErrInvalidRequest
	}
	endMin := schedule.MustMinutes(end)
	// AddHours wraps modulo 24h; an end at or before the start means the
	// interval crossed midnight, which no field's window can contain.
	if endMin <= startMin {
		return nil, "", "", &HoursError{Open: field.OpenTime, Close: field.CloseTime}
	}
	openMin := schedule.MustMinutes(field.OpenTime)
	closeMin := schedule.MustMinutes(field.CloseTime)
	// Inclusive at both boundaries: a booking may start exactly at open
	// and end exactly at close.
	if startMin < openMin || endMin > closeMin {
		return nil, "", "", &HoursError{Open: field.OpenTime, Close: field.CloseTime}
	}

	existing, err := v.store.ActiveIntervals(ctx, field.ID, req.Date, excludeID)
	if err != nil {
		return nil, "", "", err
	}
	if iv, found := schedule.DetectConflict(start, end, existing); found {
		return nil, "", "", &ConflictError{Conflict: iv}
	}
	return field, start, end, nil
}
