package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day in minutes since midnight, always
// interpreted in the business's own timezone.
type Clock int

const minutesPerDay = 24 * 60

// ParseClock accepts "15:04", "3:04 PM", "3:04pm" and "3 PM".
func ParseClock(s string) (Clock, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("calendar: empty time")
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(raw, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(raw, "PM"):
		meridiem = "PM"
	}
	raw = strings.TrimSpace(strings.TrimSuffix(raw, meridiem))

	hourPart, minutePart, hasMinutes := strings.Cut(raw, ":")
	if !hasMinutes {
		if meridiem == "" {
			return 0, fmt.Errorf("calendar: invalid time %q", s)
		}
		minutePart = "00"
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("calendar: invalid time %q", s)
	}
	if len(minutePart) != 2 {
		return 0, fmt.Errorf("calendar: invalid time %q", s)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("calendar: invalid time %q", s)
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("calendar: invalid time %q", s)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("calendar: invalid time %q", s)
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
	}

	return Clock(hour*60 + minute), nil
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// On places the clock on the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		int(c)/60, int(c)%60, 0, 0,
		date.Location(),
	)
}

// ClockOf returns the time of day of t in its own location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) valid() bool {
	return c >= 0 && c <= minutesPerDay
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
