package schedule

import (
	"math/rand"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		hours   int
		minutes int
		ok      bool
	}{
		{"00:00", 0, 0, true},
		{"08:30", 8, 30, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"9:00", 0, 0, false},
		{"09:0", 0, 0, false},
		{"0900", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
				continue
			}
			if c.Hours != tc.hours || c.Minutes != tc.minutes {
				t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tc.in, c.Hours, c.Minutes, tc.hours, tc.minutes)
			}
		} else if err == nil {
			t.Errorf("ParseClock(%q): expected error, got %v", tc.in, c)
		}
	}
}

func TestToMinutesOrdering(t *testing.T) {
	// Minutes since midnight must order the same way the day does.
	times := []string{"00:00", "06:15", "08:00", "12:30", "18:45", "23:59"}
	prev := -1
	for _, s := range times {
		m, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(%q): %v", s, err)
		}
		if m <= prev {
			t.Fatalf("ToMinutes(%q) = %d, not greater than previous %d", s, m, prev)
		}
		prev = m
	}
}

func TestFormatMinutesWraps(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{510, "08:30"},
		{1439, "23:59"},
		{1440, "00:00"},
		{1500, "01:00"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.in); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		s := FormatMinutes(m)
		back, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(FormatMinutes(%d)): %v", m, err)
		}
		if back != m {
			t.Fatalf("round trip %d -> %q -> %d", m, s, back)
		}
	}
}

func TestAddHours(t *testing.T) {
	cases := []struct {
		start string
		hours int
		want  string
	}{
		{"08:00", 1, "09:00"},
		{"08:30", 2, "10:30"},
		{"22:00", 2, "00:00"}, // wraps past midnight
		{"23:00", 3, "02:00"},
	}
	for _, tc := range cases {
		got, err := AddHours(tc.start, tc.hours)
		if err != nil {
			t.Errorf("AddHours(%q, %d): %v", tc.start, tc.hours, err)
			continue
		}
		if got != tc.want {
			t.Errorf("AddHours(%q, %d) = %q, want %q", tc.start, tc.hours, got, tc.want)
		}
	}

	if _, err := AddHours("25:00", 1); err == nil {
		t.Error("AddHours with invalid start: expected error")
	}
}

func TestOverlapsTouchingIntervals(t *testing.T) {
	a0, a1 := MustMinutes("08:00"), MustMinutes("10:00")
	b0, b1 := MustMinutes("10:00"), MustMinutes("12:00")
	if Overlaps(a0, a1, b0, b1) {
		t.Error("intervals touching at 10:00 must not overlap")
	}
	if Overlaps(b0, b1, a0, a1) {
		t.Error("touching check must be symmetric")
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	// Overlap is symmetric and two intervals overlap exactly when each
	// starts before the other ends.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a0 := rng.Intn(24 * 60)
		a1 := a0 + 1 + rng.Intn(180)
		b0 := rng.Intn(24 * 60)
		b1 := b0 + 1 + rng.Intn(180)

		got := Overlaps(a0, a1, b0, b1)
		if got != Overlaps(b0, b1, a0, a1) {
			t.Fatalf("Overlaps not symmetric for [%d,%d) [%d,%d)", a0, a1, b0, b1)
		}
		want := a0 < b1 && a1 > b0
		if got != want {
			t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v", a0, a1, b0, b1, got, want)
		}
	}
}

func TestOverlapsContainment(t *testing.T) {
	// An interval fully inside another overlaps it.
	if !Overlaps(MustMinutes("09:00"), MustMinutes("10:00"), MustMinutes("08:00"), MustMinutes("12:00")) {
		t.Error("contained interval must overlap its container")
	}
	if !Overlaps(MustMinutes("08:00"), MustMinutes("12:00"), MustMinutes("09:00"), MustMinutes("10:00")) {
		t.Error("container must overlap a contained interval")
	}
}
