package schedule

import "testing"

func TestDetectConflictOverlap(t *testing.T) {
	existing := []Interval{{Start: "10:00", End: "12:00"}}

	// 11:00 + 1h lands inside the existing booking.
	iv, found := DetectConflict("11:00", "12:00", existing)
	if !found {
		t.Fatal("expected conflict for 11:00-12:00 against 10:00-12:00")
	}
	if iv.Start != "10:00" || iv.End != "12:00" {
		t.Fatalf("conflict reported wrong interval: %+v", iv)
	}
}

func TestDetectConflictTouching(t *testing.T) {
	existing := []Interval{{Start: "10:00", End: "12:00"}}

	// Back-to-back bookings share a boundary and do not conflict.
	if _, found := DetectConflict("08:00", "10:00", existing); found {
		t.Error("interval ending at existing start must not conflict")
	}
	if _, found := DetectConflict("12:00", "14:00", existing); found {
		t.Error("interval starting at existing end must not conflict")
	}
}

func TestDetectConflictFirstMatch(t *testing.T) {
	existing := []Interval{
		{Start: "08:00", End: "09:00"},
		{Start: "10:00", End: "11:00"},
		{Start: "12:00", End: "13:00"},
	}
	iv, found := DetectConflict("10:30", "12:30", existing)
	if !found {
		t.Fatal("expected conflict")
	}
	// The first overlapping interval in slice order is reported.
	if iv.Start != "10:00" {
		t.Fatalf("expected first conflicting interval 10:00-11:00, got %+v", iv)
	}
}

func TestDetectConflictEmpty(t *testing.T) {
	if _, found := DetectConflict("08:00", "09:00", nil); found {
		t.Error("no existing bookings means no conflict")
	}
}

func TestDetectConflictInvalidTimes(t *testing.T) {
	existing := []Interval{{Start: "10:00", End: "12:00"}}
	if _, found := DetectConflict("bogus", "12:00", existing); found {
		t.Error("unparseable proposal must not report a conflict")
	}
}
