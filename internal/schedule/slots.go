package schedule

// DefaultSlotMinutes is the canonical slot width.  Operating hours in
// practice are whole hours, so 60-minute slots tile the window exactly.
const DefaultSlotMinutes = 60

// GenerateSlots produces the ordered sequence of bookable slot start
// times for one operating window: the first slot starts at open, each
// subsequent slot is intervalMinutes later, and generation stops at the
// first time not strictly before close.  Note the close check applies
// to the slot START, so a window that does not tile evenly (e.g. close
// 22:00 with a slot starting 21:30) still emits that final partial
// slot; with the default 60-minute interval and whole-hour windows the
// case does not arise.
//
// The function is pure: same inputs, same output, no hidden state.  An
// invalid time string or a non-positive interval yields an empty slice.
func GenerateSlots(openTime, closeTime string, intervalMinutes int) []string {
	if intervalMinutes <= 0 {
		return []string{}
	}
	open, err := ToMinutes(openTime)
	if err != nil {
		return []string{}
	}
	close, err := ToMinutes(closeTime)
	if err != nil {
		return []string{}
	}
	if close <= open {
		return []string{}
	}
	slots := make([]string, 0, (close-open+intervalMinutes-1)/intervalMinutes)
	for cur := open; cur < close; cur += intervalMinutes {
		slots = append(slots, FormatMinutes(cur))
	}
	return slots
}
