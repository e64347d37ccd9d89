package schedule

import "time"

// BookedSlot identifies the booking occupying a slot in the schedule
// view.  Only the fields a caller needs to render or link the booking
// are exposed; the full record stays behind the bookings endpoint.
type BookedSlot struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"`
	Start  string `json:"start_time"`
	End    string `json:"end_time"`
}

// Slot is one entry of the advisory schedule view.  Exactly one of
// Available == true or Booking != nil holds.  IsPast marks slots whose
// start has already passed on the current day; past slots are a display
// hint, not a booking block — staleness and re-checks are handled at
// commit time.
type Slot struct {
	Time      string      `json:"time"`
	Available bool        `json:"available"`
	IsPast    bool        `json:"is_past"`
	Booking   *BookedSlot `json:"booking,omitempty"`
}

// DateLayout is the day-granularity format used for booking dates
// throughout the system.
const DateLayout = "2006-01-02"

// BuildSchedule projects the generated slot sequence against the active
// bookings of one field and date.  A slot is occupied when its start
// minute falls inside a booking's [start, end) interval.  When date is
// today relative to now, slots whose start precedes now's wall-clock
// time are flagged IsPast.
//
// The computation reads its inputs and nothing else, so it is safe to
// call repeatedly for UI polling; any caching belongs to the caller.
func BuildSchedule(slots []string, bookings []BookedSlot, date string, now time.Time) []Slot {
	isToday := now.Format(DateLayout) == date
	nowMin := now.Hour()*60 + now.Minute()

	out := make([]Slot, 0, len(slots))
	for _, t := range slots {
		slotMin, err := ToMinutes(t)
		if err != nil {
			continue
		}
		entry := Slot{Time: t, Available: true}
		if isToday && slotMin < nowMin {
			entry.IsPast = true
		}
		for i := range bookings {
			start, err := ToMinutes(bookings[i].Start)
			if err != nil {
				continue
			}
			end, err := ToMinutes(bookings[i].End)
			if err != nil {
				continue
			}
			if slotMin >= start && slotMin < end {
				b := bookings[i]
				entry.Available = false
				entry.Booking = &b
				break
			}
		}
		out = append(out, entry)
	}
	return out
}
