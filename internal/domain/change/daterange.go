package change

import "time"

// DateRange is an inclusive time interval. Callers may construct an inverted
// range (From after To); consumers treat such ranges as empty rather than
// rejecting them.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewDateRange builds a range from two instants
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: from, To: to}
}

// LastNDays returns the range covering the n days up to now
func LastNDays(now time.Time, n int) DateRange {
	return DateRange{From: now.AddDate(0, 0, -n), To: now}
}

// IsValid reports whether the range is well-ordered
func (r DateRange) IsValid() bool {
	return !r.From.After(r.To)
}

// Contains reports whether t falls inside the range, inclusive on both ends
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// DayStart truncates t to the start of its UTC calendar day
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same UTC calendar day
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// Days enumerates every calendar day start from floor(From) to floor(To)
// inclusive. An inverted range yields no days.
func (r DateRange) Days() []time.Time {
	if !r.IsValid() {
		return nil
	}
	start := DayStart(r.From)
	end := DayStart(r.To)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
