package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/models"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

// Interval is a half-open span [Start, End) of one day.
type Interval struct {
	Start calendar.Clock
	End   calendar.Clock
}

// Overlaps reports whether two intervals share an instant. Touching
// endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func NewInterval(start calendar.Clock, durationMin int) Interval {
	return Interval{Start: start, End: start.Add(durationMin)}
}

// IntervalOf reads the stored interval of an appointment.
func IntervalOf(ap models.Appointment) (Interval, bool) {
	start, err := calendar.ParseClock(ap.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := calendar.ParseClock(ap.EndTime)
	if err != nil {
		end = start.Add(ap.DurationMin)
	}
	return Interval{Start: start, End: end}, true
}

// GenerateSlots yields the candidate start times for svc on date: every
// SlotStep minutes from opening up to the last start that still ends by
// closing. Existing appointments are not considered.
func GenerateSlots(cal *calendar.Calendar, date time.Time, svc calendar.Service) []calendar.Clock {
	hours, open := cal.HoursOn(date)
	if !open || svc.DurationMinutes <= 0 || cal.SlotStep <= 0 {
		return nil
	}
	if svc.DurationMinutes > hours.Minutes() {
		return nil
	}

	last := hours.Close.Add(-svc.DurationMinutes)
	slots := make([]calendar.Clock, 0, (int(last-hours.Open)/cal.SlotStep)+1)
	for t := hours.Open; t <= last; t = t.Add(cal.SlotStep) {
		slots = append(slots, t)
	}
	return slots
}

// Checker filters candidate slots against existing appointments as of a
// fixed "now" in the business timezone.
type Checker struct {
	cal *calendar.Calendar
	now time.Time
}

func NewChecker(cal *calendar.Calendar, now time.Time) Checker {
	return Checker{cal: cal, now: now.In(cal.Location)}
}

// ValidateDate rejects days before today in the business timezone.
func (c Checker) ValidateDate(date time.Time) error {
	today := timezone.StartOfDay(c.now, c.cal.Location)
	if timezone.StartOfDay(date, c.cal.Location).Before(today) {
		return Invalid("date_in_past", "%s is in the past", date.Format(DateLayout))
	}
	return nil
}

// CheckBookable validates a direct request for start on date without
// looking at other appointments: not in the past, inside business hours,
// and finishing by closing time.
func (c Checker) CheckBookable(date time.Time, start calendar.Clock, svc calendar.Service) error {
	if err := c.ValidateDate(date); err != nil {
		return err
	}
	if err := WithinHours(c.cal, date, start, svc.DurationMinutes); err != nil {
		return err
	}
	if start.On(date).Before(c.now) {
		return Invalid("time_in_past", "%s %s has already passed", date.Format(DateLayout), start)
	}
	return nil
}

// AvailableSlots returns the generated slots for date that do not overlap
// any active appointment in existing. Slots that already started today are
// dropped.
func (c Checker) AvailableSlots(
	date time.Time,
	svc calendar.Service,
	existing []models.Appointment,
) ([]calendar.Clock, error) {

	if err := c.ValidateDate(date); err != nil {
		return nil, err
	}

	busy := busyIntervals(date, existing)
	candidates := GenerateSlots(c.cal, date, svc)

	out := make([]calendar.Clock, 0, len(candidates))
	for _, slot := range candidates {
		if slot.On(date).Before(c.now) {
			continue
		}
		if overlapsAny(NewInterval(slot, svc.DurationMinutes), busy) {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

// IsAvailable is the single-slot form of AvailableSlots, used to validate a
// direct booking rather than enumerate.
func (c Checker) IsAvailable(
	date time.Time,
	start calendar.Clock,
	svc calendar.Service,
	existing []models.Appointment,
) bool {

	if c.CheckBookable(date, start, svc) != nil {
		return false
	}
	return !overlapsAny(NewInterval(start, svc.DurationMinutes), busyIntervals(date, existing))
}

// NearestAlternatives picks up to n slots closest to requested, earlier
// slot first on ties, and returns them in chronological order.
func NearestAlternatives(slots []calendar.Clock, requested calendar.Clock, n int) []calendar.Clock {
	if n <= 0 || len(slots) == 0 {
		return nil
	}

	ranked := make([]calendar.Clock, 0, len(slots))
	for _, s := range slots {
		if s != requested {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := distance(ranked[i], requested), distance(ranked[j], requested)
		if di != dj {
			return di < dj
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i] < ranked[j] })
	return ranked
}

// HasConflict reports whether candidate overlaps any active appointment in
// existing.
func HasConflict(candidate Interval, existing []models.Appointment) bool {
	for _, ap := range existing {
		if !Status(ap.Status).IsActive() {
			continue
		}
		if iv, ok := IntervalOf(ap); ok && candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

func busyIntervals(date time.Time, existing []models.Appointment) []Interval {
	day := date.Format(DateLayout)
	busy := make([]Interval, 0, len(existing))
	for _, ap := range existing {
		if ap.Date != day || !Status(ap.Status).IsActive() {
			continue
		}
		if iv, ok := IntervalOf(ap); ok {
			busy = append(busy, iv)
		}
	}
	return busy
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

func distance(a, b calendar.Clock) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// FormatClocks renders slots as HH:MM strings.
func FormatClocks(slots []calendar.Clock) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
