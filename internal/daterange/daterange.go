package daterange

import "time"

type Value string

const (
	ValueToday  Value = "today"
	ValueWeek   Value = "week"
	ValueMonth  Value = "month"
	ValueYear   Value = "year"
	ValueCustom Value = "custom"
)

// Range is the process-wide selected interval. Start and End are only
// meaningful for ValueCustom; symbolic values resolve against the clock
// at read time.
type Range struct {
	Label string    `json:"label"`
	Value Value     `json:"value"`
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

func Default() Range {
	return Range{Label: "Today", Value: ValueToday}
}

func (v Value) Valid() bool {
	switch v {
	case ValueToday, ValueWeek, ValueMonth, ValueYear, ValueCustom:
		return true
	}
	return false
}

// Window resolves the range into a half-open [from, to) interval
// relative to now. For ValueCustom the end date is inclusive, so the
// window extends to the start of the day after End. ok is false when
// the range cannot produce a window (unknown value, or custom without
// both endpoints), meaning no filtering applies.
func (r Range) Window(now time.Time) (from, to time.Time, ok bool) {
	loc := now.Location()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch r.Value {
	case ValueToday:
		return day, day.AddDate(0, 0, 1), true
	case ValueWeek:
		// Most recent Sunday through the start of tomorrow.
		sunday := day.AddDate(0, 0, -int(now.Weekday()))
		return sunday, day.AddDate(0, 0, 1), true
	case ValueMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 1, 0), true
	case ValueYear:
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(1, 0, 0), true
	case ValueCustom:
		if r.Start.IsZero() || r.End.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, loc)
		end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// Contains reports whether ts falls inside [from, to). Zero timestamps
// never match: records without a usable timestamp end up filtered out,
// not treated as an error.
func Contains(from, to, ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.Before(from) && ts.Before(to)
}
