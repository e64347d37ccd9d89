package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/schedule"
)

// memStore is an in-memory Store used to exercise the validator without
// a database.  CreatePending and Reschedule re-run the overlap check
// under a mutex, mirroring the locked re-check the SQL implementation
// performs inside its transaction.
type memStore struct {
	mu     sync.Mutex
	fields map[uint64]*model.Field
	nextID uint64
	rows   []*model.Booking
}

func newMemStore(fields ...*model.Field) *memStore {
	s := &memStore{fields: make(map[uint64]*model.Field), nextID: 1}
	for _, f := range fields {
		s.fields[f.ID] = f
	}
	return s
}

func (s *memStore) FieldByID(_ context.Context, id uint64) (*model.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[id]
	if !ok {
		return nil, ErrFieldUnavailable
	}
	cp := *f
	return &cp, nil
}

func (s *memStore) ActiveIntervals(_ context.Context, fieldID uint64, date string, excludeID uint64) ([]schedule.Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeIntervalsLocked(fieldID, date, excludeID), nil
}

func (s *memStore) activeIntervalsLocked(fieldID uint64, date string, excludeID uint64) []schedule.Interval {
	out := make([]schedule.Interval, 0)
	for _, b := range s.rows {
		if b.FieldID != fieldID || b.BookingDate != date || b.ID == excludeID {
			continue
		}
		if !b.Status.IsActive() {
			continue
		}
		out = append(out, schedule.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return out
}

func (s *memStore) CreatePending(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.activeIntervalsLocked(b.FieldID, b.BookingDate, 0)
	if iv, found := schedule.DetectConflict(b.StartTime, b.EndTime, existing); found {
		return &ConflictError{Conflict: iv, Concurrent: true}
	}
	b.ID = s.nextID
	s.nextID++
	b.Status = model.BookingPending
	cp := *b
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *memStore) Reschedule(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.activeIntervalsLocked(b.FieldID, b.BookingDate, b.ID)
	if iv, found := schedule.DetectConflict(b.StartTime, b.EndTime, existing); found {
		return &ConflictError{Conflict: iv, Concurrent: true}
	}
	for i, row := range s.rows {
		if row.ID == b.ID {
			cp := *b
			s.rows[i] = &cp
			return nil
		}
	}
	return errors.New("booking not found")
}

func testField() *model.Field {
	return &model.Field{
		ID:           1,
		Name:         "Field A",
		Sport:        "futsal",
		PricePerHour: 150000,
		OpenTime:     "08:00",
		CloseTime:    "22:00",
		IsActive:     true,
	}
}

func TestCreateComputesEndAndPrice(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	b, err := v.Create(context.Background(), Request{
		FieldID:       1,
		CustomerID:    10,
		Date:          "2026-09-05",
		StartTime:     "10:00",
		DurationHours: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.EndTime != "12:00" {
		t.Errorf("end time = %s, want 12:00", b.EndTime)
	}
	if b.TotalPrice != 300000 {
		t.Errorf("total price = %d, want 300000", b.TotalPrice)
	}
	if b.Status != model.BookingPending {
		t.Errorf("status = %s, want PENDING", b.Status)
	}
}

func TestCreateBoundaryInclusive(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	// Start exactly at open.
	if _, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "08:00", DurationHours: 1,
	}); err != nil {
		t.Errorf("booking at open boundary rejected: %v", err)
	}
	// End exactly at close.
	if _, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "21:00", DurationHours: 1,
	}); err != nil {
		t.Errorf("booking ending at close boundary rejected: %v", err)
	}
}

func TestCreateOutsideOperatingHours(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	cases := []struct {
		name  string
		start string
		hours int
	}{
		{"before open", "07:00", 1},
		{"ends after close", "21:00", 2},
		{"starts after close", "22:00", 1},
		{"wraps past midnight", "23:00", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Create(context.Background(), Request{
				FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: tc.start, DurationHours: tc.hours,
			})
			var hoursErr *HoursError
			if !errors.As(err, &hoursErr) {
				t.Fatalf("expected HoursError, got %v", err)
			}
			if hoursErr.Open != "08:00" || hoursErr.Close != "22:00" {
				t.Errorf("HoursError carries window %s-%s", hoursErr.Open, hoursErr.Close)
			}
		})
	}
}

func TestCreateInvalidRequest(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	cases := []struct {
		name string
		req  Request
	}{
		{"zero field", Request{CustomerID: 10, Date: "2026-09-05", StartTime: "10:00", DurationHours: 1}},
		{"zero customer", Request{FieldID: 1, Date: "2026-09-05", StartTime: "10:00", DurationHours: 1}},
		{"zero duration", Request{FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "10:00"}},
		{"negative duration", Request{FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "10:00", DurationHours: -1}},
		{"bad date", Request{FieldID: 1, CustomerID: 10, Date: "05/09/2026", StartTime: "10:00", DurationHours: 1}},
		{"bad time", Request{FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "10am", DurationHours: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Create(context.Background(), tc.req); !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestCreateFieldMissingOrInactive(t *testing.T) {
	inactive := testField()
	inactive.ID = 2
	inactive.IsActive = false
	store := newMemStore(testField(), inactive)
	v := NewValidator(store)

	if _, err := v.Create(context.Background(), Request{
		FieldID: 99, CustomerID: 10, Date: "2026-09-05", StartTime: "10:00", DurationHours: 1,
	}); !errors.Is(err, ErrFieldUnavailable) {
		t.Errorf("missing field: expected ErrFieldUnavailable, got %v", err)
	}
	if _, err := v.Create(context.Background(), Request{
		FieldID: 2, CustomerID: 10, Date: "2026-09-05", StartTime: "10:00", DurationHours: 1,
	}); !errors.Is(err, ErrFieldUnavailable) {
		t.Errorf("inactive field: expected ErrFieldUnavailable, got %v", err)
	}
}

func TestCreateConflict(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	if _, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "10:00", DurationHours: 2,
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	_, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 11, Date: "2026-09-05", StartTime: "11:00", DurationHours: 1,
	})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflictErr.Conflict.Start != "10:00" || conflictErr.Conflict.End != "12:00" {
		t.Errorf("conflict interval = %+v", conflictErr.Conflict)
	}

	// Same interval on another date is free.
	if _, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 11, Date: "2026-09-06", StartTime: "11:00", DurationHours: 1,
	}); err != nil {
		t.Errorf("same time on another date rejected: %v", err)
	}

	// Back-to-back with the existing booking is allowed.
	if _, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 11, Date: "2026-09-05", StartTime: "12:00", DurationHours: 1,
	}); err != nil {
		t.Errorf("touching booking rejected: %v", err)
	}
}

func TestRescheduleExcludesOwnInterval(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	b, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "10:00", DurationHours: 2,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// Shifting one hour overlaps the booking's own current interval,
	// which must not count as a conflict.
	moved, err := v.Reschedule(context.Background(), b, Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "11:00", DurationHours: 2,
	})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if moved.StartTime != "11:00" || moved.EndTime != "13:00" {
		t.Errorf("moved to %s-%s", moved.StartTime, moved.EndTime)
	}
	if moved.Status != model.BookingPending {
		t.Errorf("status after reschedule = %s, want PENDING", moved.Status)
	}
}

func TestRescheduleConflictsWithOthers(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	b, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "08:00", DurationHours: 1,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	if _, err := v.Create(context.Background(), Request{
		FieldID: 1, CustomerID: 11, Date: "2026-09-05", StartTime: "10:00", DurationHours: 2,
	}); err != nil {
		t.Fatalf("seed other booking: %v", err)
	}

	_, err = v.Reschedule(context.Background(), b, Request{
		FieldID: 1, CustomerID: 10, Date: "2026-09-05", StartTime: "11:00", DurationHours: 1,
	})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestConcurrentCreatesOneWinner(t *testing.T) {
	store := newMemStore(testField())
	v := NewValidator(store)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	// Everyone races for the same field, date and interval.  Exactly
	// one create may win; every loser must see a ConflictError.
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := v.Create(context.Background(), Request{
				FieldID:       1,
				CustomerID:    uint64(100 + i),
				Date:          "2026-09-05",
				StartTime:     "14:00",
				DurationHours: 2,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	wins := 0
	for i, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Errorf("attempt %d: expected ConflictError, got %v", i, err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning create, got %d", wins)
	}
}
