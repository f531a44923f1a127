package appointment

import (
	"time"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
)

const DateLayout = "2006-01-02"

// WithinHours checks that [start, start+duration) lies inside the opening
// hours of date's weekday.
func WithinHours(
	cal *calendar.Calendar,
	date time.Time,
	start calendar.Clock,
	durationMin int,
) error {

	hours, open := cal.HoursOn(date)
	if !open {
		return &OutOfHoursError{
			Date:    date.Format(DateLayout),
			Weekday: date.Weekday().String(),
			Closed:  true,
		}
	}

	end := start.Add(durationMin)
	if start < hours.Open || end > hours.Close {
		return &OutOfHoursError{
			Date:    date.Format(DateLayout),
			Weekday: date.Weekday().String(),
			Open:    hours.Open.String(),
			Close:   hours.Close.String(),
		}
	}

	return nil
}

// ParseDate reads YYYY-MM-DD as a calendar day in the business timezone.
func ParseDate(cal *calendar.Calendar, s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, cal.Location)
	if err != nil {
		return time.Time{}, Invalid("invalid_date", "date %q must be YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseTime reads a booking time of day.
func ParseTime(s string) (calendar.Clock, error) {
	c, err := calendar.ParseClock(s)
	if err != nil {
		return 0, Invalid("invalid_time", "time %q must look like 15:00 or 3:00 PM", s)
	}
	return c, nil
}
