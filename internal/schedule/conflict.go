package schedule

// Interval is a half-open [Start, End) wall-clock interval on a single
// date.  Both bounds are "HH:MM" strings.
type Interval struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// DetectConflict checks a proposed [proposedStart, proposedEnd)
// interval against the active bookings already occupying the same field
// and date and returns the first overlapping interval found, if any.
// Existing intervals may arrive in any order; the first match wins and
// is surfaced to the caller so it can suggest alternatives.
//
// This check is advisory when run against a fetched snapshot: the
// authoritative re-check happens inside the commit transaction, where
// the candidate rows are locked (see repository.BookingRepo).
func DetectConflict(proposedStart, proposedEnd string, existing []Interval) (Interval, bool) {
	ps, err := ToMinutes(proposedStart)
	if err != nil {
		return Interval{}, false
	}
	pe, err := ToMinutes(proposedEnd)
	if err != nil {
		return Interval{}, false
	}
	for _, iv := range existing {
		es, err := ToMinutes(iv.Start)
		if err != nil {
			continue
		}
		ee, err := ToMinutes(iv.End)
		if err != nil {
			continue
		}
		if Overlaps(ps, pe, es, ee) {
			return iv, true
		}
	}
	return Interval{}, false
}
