package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/models"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

func testCalendar() *calendar.Calendar {
	weekday := &calendar.DayHours{Open: calendar.MustClock("09:00"), Close: calendar.MustClock("18:00")}
	cal := &calendar.Calendar{
		BusinessName: "Glow Clinic",
		Timezone:     "Asia/Karachi",
		Location:     timezone.Location("Asia/Karachi"),
		SlotStep:     30,
		Services: []calendar.Service{
			{Name: "Consultation", DurationMinutes: 30, Price: decimal.NewFromInt(50)},
			{Name: "Facial", DurationMinutes: 60, Price: decimal.RequireFromString("75.50")},
			{Name: "Marathon", DurationMinutes: 600, Price: decimal.NewFromInt(900)},
		},
	}
	for d := time.Monday; d <= time.Friday; d++ {
		cal.Hours[d] = weekday
	}
	cal.Hours[time.Saturday] = &calendar.DayHours{Open: calendar.MustClock("10:00"), Close: calendar.MustClock("16:00")}
	return cal
}

func service(t *testing.T, cal *calendar.Calendar, name string) calendar.Service {
	t.Helper()
	svc, ok := cal.FindService(name)
	require.True(t, ok, name)
	return svc
}

func day(t *testing.T, cal *calendar.Calendar, s string) time.Time {
	t.Helper()
	d, err := ParseDate(cal, s)
	require.NoError(t, err)
	return d
}

// Thursday 2026-10-15 10:00 in the business timezone.
func testNow(cal *calendar.Calendar) time.Time {
	return time.Date(2026, 10, 15, 10, 0, 0, 0, cal.Location)
}

func booked(date, start, end, status string) models.Appointment {
	return models.Appointment{Date: date, StartTime: start, EndTime: end, Status: status}
}

func TestGenerateSlots(t *testing.T) {
	cal := testCalendar()
	monday := day(t, cal, "2026-10-19")

	t.Run("thirty minute service", func(t *testing.T) {
		slots := GenerateSlots(cal, monday, service(t, cal, "Consultation"))
		require.Len(t, slots, 18)
		assert.Equal(t, "09:00", slots[0].String())
		assert.Equal(t, "17:30", slots[len(slots)-1].String())
	})

	t.Run("hour long service stops an hour before close", func(t *testing.T) {
		slots := GenerateSlots(cal, monday, service(t, cal, "Facial"))
		require.Len(t, slots, 17)
		assert.Equal(t, "17:00", slots[len(slots)-1].String())
	})

	t.Run("finer step", func(t *testing.T) {
		fine := *cal
		fine.SlotStep = 15
		slots := GenerateSlots(&fine, monday, service(t, cal, "Facial"))
		assert.Equal(t, "09:15", slots[1].String())
		assert.Equal(t, "17:00", slots[len(slots)-1].String())
	})

	t.Run("closed day", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(cal, day(t, cal, "2026-10-18"), service(t, cal, "Consultation")))
	})

	t.Run("service longer than the day", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(cal, monday, service(t, cal, "Marathon")))
	})
}

func TestAvailableSlots(t *testing.T) {
	cal := testCalendar()
	checker := NewChecker(cal, testNow(cal))
	monday := day(t, cal, "2026-10-19")

	existing := []models.Appointment{
		booked("2026-10-19", "15:00", "15:30", "confirmed"),
		booked("2026-10-19", "16:00", "17:00", "pending"),
		booked("2026-10-19", "10:00", "10:30", "cancelled"),
		booked("2026-10-20", "09:00", "09:30", "confirmed"),
	}

	slots, err := checker.AvailableSlots(monday, service(t, cal, "Consultation"), existing)
	require.NoError(t, err)

	got := FormatClocks(slots)
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "10:00")
	assert.Contains(t, got, "15:30")
	assert.NotContains(t, got, "15:00")
	assert.NotContains(t, got, "16:00")
	assert.NotContains(t, got, "16:30")
	assert.Len(t, got, 15)

	slots, err = checker.AvailableSlots(monday, service(t, cal, "Facial"), existing)
	require.NoError(t, err)
	got = FormatClocks(slots)
	assert.NotContains(t, got, "14:30")
	assert.NotContains(t, got, "15:00")
	assert.NotContains(t, got, "15:30")
	assert.Contains(t, got, "14:00")
	assert.Contains(t, got, "17:00")
}

func TestAvailableSlotsToday(t *testing.T) {
	cal := testCalendar()
	checker := NewChecker(cal, testNow(cal).Add(5*time.Minute))

	slots, err := checker.AvailableSlots(day(t, cal, "2026-10-15"), service(t, cal, "Consultation"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:30", slots[0].String())
}

func TestAvailableSlotsPastDate(t *testing.T) {
	cal := testCalendar()
	checker := NewChecker(cal, testNow(cal))

	_, err := checker.AvailableSlots(day(t, cal, "2026-10-14"), service(t, cal, "Consultation"), nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date_in_past", verr.Code)
}

func TestCheckBookable(t *testing.T) {
	cal := testCalendar()
	checker := NewChecker(cal, testNow(cal))
	consult := service(t, cal, "Consultation")

	tests := []struct {
		name    string
		date    string
		time    string
		wantErr any
	}{
		{"inside hours", "2026-10-19", "15:00", nil},
		{"last slot", "2026-10-19", "17:30", nil},
		{"off grid is fine", "2026-10-19", "15:10", nil},
		{"runs past close", "2026-10-19", "17:45", &OutOfHoursError{}},
		{"before open", "2026-10-19", "08:30", &OutOfHoursError{}},
		{"closed sunday", "2026-10-18", "11:00", &OutOfHoursError{}},
		{"earlier today", "2026-10-15", "09:30", &ValidationError{}},
		{"past date", "2026-10-01", "11:00", &ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.CheckBookable(day(t, cal, tt.date), calendar.MustClock(tt.time), consult)
			switch want := tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *OutOfHoursError:
				assert.ErrorAs(t, err, &want)
			case *ValidationError:
				assert.ErrorAs(t, err, &want)
			}
		})
	}
}

func TestOutOfHoursCarriesRange(t *testing.T) {
	cal := testCalendar()
	err := WithinHours(cal, day(t, cal, "2026-10-24"), calendar.MustClock("15:30"), 60)

	var oh *OutOfHoursError
	require.True(t, errors.As(err, &oh))
	assert.False(t, oh.Closed)
	assert.Equal(t, "10:00", oh.Open)
	assert.Equal(t, "16:00", oh.Close)

	err = WithinHours(cal, day(t, cal, "2026-10-18"), calendar.MustClock("11:00"), 30)
	require.True(t, errors.As(err, &oh))
	assert.True(t, oh.Closed)
	assert.Equal(t, "Sunday", oh.Weekday)
}

func TestIsAvailableBackToBack(t *testing.T) {
	cal := testCalendar()
	checker := NewChecker(cal, testNow(cal))
	monday := day(t, cal, "2026-10-19")
	existing := []models.Appointment{booked("2026-10-19", "14:00", "15:00", "confirmed")}
	facial := service(t, cal, "Facial")

	assert.True(t, checker.IsAvailable(monday, calendar.MustClock("15:00"), facial, existing))
	assert.True(t, checker.IsAvailable(monday, calendar.MustClock("13:00"), facial, existing))
	assert.False(t, checker.IsAvailable(monday, calendar.MustClock("14:30"), facial, existing))
	assert.False(t, checker.IsAvailable(monday, calendar.MustClock("13:30"), facial, existing))
	assert.False(t, checker.IsAvailable(monday, calendar.MustClock("17:30"), facial, existing))
}

func TestIntervalOverlaps(t *testing.T) {
	a := NewInterval(calendar.MustClock("10:00"), 60)

	assert.True(t, a.Overlaps(NewInterval(calendar.MustClock("10:30"), 60)))
	assert.True(t, a.Overlaps(NewInterval(calendar.MustClock("10:15"), 15)))
	assert.False(t, a.Overlaps(NewInterval(calendar.MustClock("11:00"), 30)))
	assert.False(t, a.Overlaps(NewInterval(calendar.MustClock("09:00"), 60)))
}

func TestHasConflictIgnoresFreedSlots(t *testing.T) {
	existing := []models.Appointment{
		booked("2026-10-19", "10:00", "11:00", "cancelled"),
		booked("2026-10-19", "10:00", "11:00", "no_show"),
		booked("2026-10-19", "10:00", "11:00", "completed"),
	}
	iv := NewInterval(calendar.MustClock("10:00"), 30)
	assert.False(t, HasConflict(iv, existing))

	existing = append(existing, booked("2026-10-19", "10:30", "11:00", "pending"))
	assert.True(t, HasConflict(NewInterval(calendar.MustClock("10:00"), 60), existing))
}

func TestNearestAlternatives(t *testing.T) {
	cal := testCalendar()
	checker := NewChecker(cal, testNow(cal))
	monday := day(t, cal, "2026-10-19")
	existing := []models.Appointment{booked("2026-10-19", "15:00", "15:30", "confirmed")}

	slots, err := checker.AvailableSlots(monday, service(t, cal, "Consultation"), existing)
	require.NoError(t, err)

	alts := NearestAlternatives(slots, calendar.MustClock("15:00"), 3)
	assert.Equal(t, []string{"14:00", "14:30", "15:30"}, FormatClocks(alts))

	alts = NearestAlternatives(slots, calendar.MustClock("17:30"), 2)
	assert.Equal(t, []string{"16:30", "17:00"}, FormatClocks(alts))

	assert.Empty(t, NearestAlternatives(nil, calendar.MustClock("15:00"), 3))
	assert.Empty(t, NearestAlternatives(slots, calendar.MustClock("15:00"), 0))
}
