package utils

import "time"

// WeekDays lists weekday names in the order availability rows are seeded and
// listed. Names match time.Weekday.String() so calendar dates map directly.
var WeekDays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func IsValidDay(name string) bool {
	for _, d := range WeekDays {
		if d == name {
			return true
		}
	}
	return false
}

// IsWeekend reports whether a day name is Saturday or Sunday; weekend rows are
// seeded inactive by default.
func IsWeekend(name string) bool {
	return name == time.Saturday.String() || name == time.Sunday.String()
}

// IsValidTimeOfDay reports whether s is a zero-padded 24-hour "HH:mm" string.
func IsValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
