package availability

import "time"

// Interval is one externally reported busy period on the host's calendar.
// Intervals are treated as half-open [Start, End); they may overlap each other
// and arrive in any order. No validation is applied to inverted intervals.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Window is a user's configured open hours for one calendar day. FromTime and
// TillTime are wall-clock "HH:mm" strings on Date ("yyyy-MM-dd"); they carry no
// zone of their own and are interpreted in whatever location the caller parses
// them with.
type Window struct {
	Date     string
	FromTime string
	TillTime string
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// ParseWindow resolves a Window's wall-clock bounds against its date in loc.
// Malformed input fails here, at the caller's side of the contract; Slots
// itself never returns an error.
func ParseWindow(w Window, loc *time.Location) (from, till time.Time, err error) {
	from, err = time.ParseInLocation(dateTimeLayout, w.Date+" "+w.FromTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	till, err = time.ParseInLocation(dateTimeLayout, w.Date+" "+w.TillTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, till, nil
}

// Slots returns the bookable start times between windowStart and windowEnd as
// zero-padded "HH:mm" strings in ascending order. Candidates are generated at
// fixed duration steps from windowStart while the candidate start is strictly
// before windowEnd; the last candidate's end may therefore overrun the window.
// A candidate survives if it starts strictly after now and its [start,
// start+duration) span does not intersect any busy interval.
//
// windowStart >= windowEnd yields no candidates and an empty result.
func Slots(windowStart, windowEnd time.Time, busy []Interval, duration time.Duration, now time.Time) []string {
	slots := []string{}
	if duration <= 0 {
		return slots
	}
	for t := windowStart; t.Before(windowEnd); t = t.Add(duration) {
		if !t.After(now) {
			continue
		}
		if overlapsAny(t, t.Add(duration), busy) {
			continue
		}
		slots = append(slots, t.Format(timeLayout))
	}
	return slots
}

// ComputeAvailableSlots is the full contract: parse the window's wall-clock
// bounds in loc, then compute the surviving slot start times. durationMinutes
// is the booking length in minutes.
func ComputeAvailableSlots(w Window, busy []Interval, durationMinutes int, now time.Time, loc *time.Location) ([]string, error) {
	from, till, err := ParseWindow(w, loc)
	if err != nil {
		return nil, err
	}
	return Slots(from, till, busy, time.Duration(durationMinutes)*time.Minute, now), nil
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// Half-open intervals: [start,end) intersects [b.Start,b.End) iff
		// start < b.End && b.Start < end. Touching boundaries do not overlap.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
