package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// ClockIn returns a clock that reports time.Now in the given location.
func ClockIn(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateOf formats t as a calendar date in t's own location.
func DateOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Yesterday returns the calendar date before now.
func Yesterday(now time.Time) string {
	return DateOf(now.AddDate(0, 0, -1))
}

// DaysAgo returns the calendar date n days before now.
func DaysAgo(now time.Time, n int) string {
	return DateOf(now.AddDate(0, 0, -n))
}

// WeekStart returns the Monday of the week containing now.
func WeekStart(now time.Time) string {
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started six days earlier
	}
	return DateOf(now.AddDate(0, 0, -offset))
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date format: %w", err)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
