package schedule

import (
	"testing"
	"time"
)

func TestBuildScheduleMarksOccupied(t *testing.T) {
	slots := GenerateSlots("08:00", "12:00", 60)
	bookings := []BookedSlot{
		{ID: 7, Status: "CONFIRMED", Start: "09:00", End: "11:00"},
	}
	// Future date: nothing is in the past.
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	view := BuildSchedule(slots, bookings, "2026-09-02", now)

	if len(view) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(view))
	}
	wantAvailable := map[string]bool{
		"08:00": true,
		"09:00": false,
		"10:00": false,
		"11:00": true,
	}
	for _, s := range view {
		if s.Available != wantAvailable[s.Time] {
			t.Errorf("slot %s: available=%v, want %v", s.Time, s.Available, wantAvailable[s.Time])
		}
		if s.IsPast {
			t.Errorf("slot %s on a future date marked past", s.Time)
		}
		if !s.Available {
			if s.Booking == nil {
				t.Errorf("occupied slot %s carries no booking", s.Time)
			} else if s.Booking.ID != 7 {
				t.Errorf("occupied slot %s points at booking %d", s.Time, s.Booking.ID)
			}
		} else if s.Booking != nil {
			t.Errorf("available slot %s carries a booking", s.Time)
		}
	}
}

func TestBuildScheduleBookingEndIsFree(t *testing.T) {
	slots := GenerateSlots("08:00", "12:00", 60)
	bookings := []BookedSlot{{ID: 1, Status: "PENDING", Start: "08:00", End: "10:00"}}
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	view := BuildSchedule(slots, bookings, "2026-09-02", now)

	// [08:00,10:00) occupies the 08:00 and 09:00 slots only.
	for _, s := range view {
		wantFree := s.Time == "10:00" || s.Time == "11:00"
		if s.Available != wantFree {
			t.Errorf("slot %s: available=%v, want %v", s.Time, s.Available, wantFree)
		}
	}
}

func TestBuildSchedulePastSlotsToday(t *testing.T) {
	slots := GenerateSlots("08:00", "12:00", 60)
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	view := BuildSchedule(slots, nil, now.Format(DateLayout), now)

	wantPast := map[string]bool{
		"08:00": true,
		"09:00": true,
		"10:00": true, // started before 10:30
		"11:00": false,
	}
	for _, s := range view {
		if s.IsPast != wantPast[s.Time] {
			t.Errorf("slot %s: is_past=%v, want %v", s.Time, s.IsPast, wantPast[s.Time])
		}
		// Past slots stay available: the view is advisory and the
		// commit path decides what is bookable.
		if !s.Available {
			t.Errorf("slot %s unexpectedly unavailable", s.Time)
		}
	}
}

func TestBuildScheduleEmptySlots(t *testing.T) {
	view := BuildSchedule(nil, nil, "2026-09-02", time.Now())
	if len(view) != 0 {
		t.Fatalf("expected empty view, got %d entries", len(view))
	}
}
