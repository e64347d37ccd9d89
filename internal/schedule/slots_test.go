package schedule

import (
	"reflect"
	"testing"
)

func TestGenerateSlotsHourly(t *testing.T) {
	got := GenerateSlots("08:00", "12:00", 60)
	want := []string{"08:00", "09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateSlots(08:00, 12:00, 60) = %v, want %v", got, want)
	}
}

func TestGenerateSlotsUneven(t *testing.T) {
	// The last step lands past close and is dropped; no slot may start
	// at or after close.
	got := GenerateSlots("08:00", "11:30", 60)
	want := []string{"08:00", "09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateSlots(08:00, 11:30, 60) = %v, want %v", got, want)
	}
}

func TestGenerateSlotsNinetyMinutes(t *testing.T) {
	got := GenerateSlots("08:00", "12:00", 90)
	want := []string{"08:00", "09:30", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateSlots(08:00, 12:00, 90) = %v, want %v", got, want)
	}
}

func TestGenerateSlotsFullDay(t *testing.T) {
	got := GenerateSlots("06:00", "23:00", 60)
	if len(got) != 17 {
		t.Fatalf("expected 17 hourly slots from 06:00 to 23:00, got %d", len(got))
	}
	if got[0] != "06:00" || got[len(got)-1] != "22:00" {
		t.Fatalf("unexpected boundary slots: first=%s last=%s", got[0], got[len(got)-1])
	}
}

func TestGenerateSlotsDegenerate(t *testing.T) {
	cases := []struct {
		name     string
		open     string
		close    string
		interval int
	}{
		{"open equals close", "10:00", "10:00", 60},
		{"open after close", "12:00", "08:00", 60},
		{"zero interval", "08:00", "12:00", 0},
		{"negative interval", "08:00", "12:00", -30},
		{"bad open", "8am", "12:00", 60},
		{"bad close", "08:00", "noon", 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GenerateSlots(tc.open, tc.close, tc.interval)
			if len(got) != 0 {
				t.Errorf("expected no slots, got %v", got)
			}
		})
	}
}
