package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateKeyLayout = "2006-01-02"

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Sunday",
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
	time.Saturday:  "Saturday",
}

// minutesOfDay converts a timestamp to minutes since midnight in its own
// location, so comparisons stay in the caller's timezone basis.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return hours*60 + minutes, nil
}

// dateKey renders the calendar date (YYYY-MM-DD) of a timestamp in its own
// location.
func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// validDateKey reports whether a string is a well-formed YYYY-MM-DD date.
func validDateKey(raw string) bool {
	_, err := time.Parse(dateKeyLayout, raw)
	return err == nil
}
